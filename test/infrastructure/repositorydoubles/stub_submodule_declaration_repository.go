//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
	"github.com/rios0rios0/subcopy/internal/domain/repositories"
)

// StubSubmoduleDeclarationRepository returns a fixed set of declarations.
type StubSubmoduleDeclarationRepository struct {
	Submodules []entities.Submodule
	LoadErr    error
	LoadedRoot string
}

var _ repositories.SubmoduleDeclarationRepository = (*StubSubmoduleDeclarationRepository)(nil)

func (s *StubSubmoduleDeclarationRepository) Load(
	_ context.Context,
	root string,
) (*entities.SubmoduleRegistry, error) {
	s.LoadedRoot = root
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return entities.NewSubmoduleRegistry(s.Submodules...), nil
}
