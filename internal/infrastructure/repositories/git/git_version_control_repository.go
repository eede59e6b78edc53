package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
)

// VersionControlRepository runs the git executable. Every command is started
// in an explicit directory, never in the process working directory.
type VersionControlRepository struct {
	settings *entities.Settings
}

// NewVersionControlRepository creates a repository using the configured git binary.
// The binary is read on every run so a later settings override applies.
func NewVersionControlRepository(settings *entities.Settings) *VersionControlRepository {
	return &VersionControlRepository{settings: settings}
}

// ResolveRoot runs `git rev-parse --show-toplevel` in dir.
func (it *VersionControlRepository) ResolveRoot(ctx context.Context, dir string) (string, error) {
	output, err := it.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to find git root (are you in a git repo?): %w", err)
	}

	root := strings.TrimSpace(output)
	if root == "" {
		return "", fmt.Errorf("git returned an empty repository root for %s", dir)
	}
	return filepath.FromSlash(root), nil
}

// AddSubmodule runs `git submodule add <url> <relPath>` from the repository root.
func (it *VersionControlRepository) AddSubmodule(ctx context.Context, root, url, relPath string) error {
	if _, err := it.run(ctx, root, "submodule", "add", "--", url, relPath); err != nil {
		return err
	}
	return nil
}

func (it *VersionControlRepository) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, it.settings.Git.Binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("Running %s %s in %s", it.settings.Git.Binary, strings.Join(args, " "), dir)
	if err := cmd.Run(); err != nil {
		cmdErr := &entities.CommandError{
			Args:     append([]string{it.settings.Git.Binary}, args...),
			ExitCode: -1,
			Stderr:   stderr.String(),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return "", cmdErr
	}

	if extra := strings.TrimSpace(stderr.String()); extra != "" {
		logger.Debug(extra)
	}
	return stdout.String(), nil
}
