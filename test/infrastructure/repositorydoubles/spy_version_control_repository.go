//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/subcopy/internal/domain/repositories"
)

// SpyVersionControlRepository implements repositories.VersionControlRepository as a configurable spy.
type SpyVersionControlRepository struct {
	// --- ResolveRoot ---
	Root            string
	ResolveRootErr  error
	ResolvedFromDir []string

	// --- AddSubmodule ---
	AddSubmoduleErr   error
	AddSubmoduleCalls []AddSubmoduleCall
}

// AddSubmoduleCall records a single invocation of AddSubmodule.
type AddSubmoduleCall struct {
	Root    string
	URL     string
	RelPath string
}

var _ repositories.VersionControlRepository = (*SpyVersionControlRepository)(nil)

func (s *SpyVersionControlRepository) ResolveRoot(_ context.Context, dir string) (string, error) {
	s.ResolvedFromDir = append(s.ResolvedFromDir, dir)
	if s.ResolveRootErr != nil {
		return "", s.ResolveRootErr
	}
	return s.Root, nil
}

func (s *SpyVersionControlRepository) AddSubmodule(_ context.Context, root, url, relPath string) error {
	s.AddSubmoduleCalls = append(s.AddSubmoduleCalls, AddSubmoduleCall{Root: root, URL: url, RelPath: relPath})
	return s.AddSubmoduleErr
}
