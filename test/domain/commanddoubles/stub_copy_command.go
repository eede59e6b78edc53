//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/subcopy/internal/domain/commands"
	"github.com/rios0rios0/subcopy/internal/domain/entities"
)

// StubCopyCommand is a stub implementation of commands.Copy.
type StubCopyCommand struct {
	ExecuteCallCount int
	ExecuteResult    *entities.CopyResult
	ExecuteErr       error
	LastOpts         entities.CopyOptions
}

var _ commands.Copy = (*StubCopyCommand)(nil)

func (s *StubCopyCommand) Execute(
	_ context.Context,
	opts entities.CopyOptions,
) (*entities.CopyResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.ExecuteResult != nil {
		return s.ExecuteResult, nil
	}
	return &entities.CopyResult{}, nil
}
