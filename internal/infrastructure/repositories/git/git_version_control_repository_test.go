//go:build integration

package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
	"github.com/rios0rios0/subcopy/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/subcopy/internal/infrastructure/repositories/gitmodules"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
}

// runGit runs git in dir with a throwaway identity.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{"-c", "user.name=subcopy", "-c", "user.email=subcopy@example.com"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

// newRepository creates an initialised repository with one commit.
func newRepository(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "commit", "-q", "--allow-empty", "-m", "init")
	return dir
}

//nolint:tparallel // t.Setenv is incompatible with t.Parallel
func TestVersionControlRepository(t *testing.T) {
	requireGit(t)
	// local clones are refused for submodules unless the file protocol is allowed
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")

	repository := git.NewVersionControlRepository(entities.DefaultSettings())

	t.Run("should resolve the root from a nested directory", func(t *testing.T) {
		// given
		root := newRepository(t)
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		// when
		resolved, err := repository.ResolveRoot(context.Background(), nested)

		// then
		require.NoError(t, err)
		assert.Equal(t, root, resolved)
	})

	t.Run("should fail with the git exit code outside a repository", func(t *testing.T) {
		// given
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

		// when
		_, resolveErr := repository.ResolveRoot(context.Background(), dir)

		// then
		require.Error(t, resolveErr)
		var cmdErr *entities.CommandError
		require.ErrorAs(t, resolveErr, &cmdErr)
		assert.Positive(t, cmdErr.ExitCode)
		assert.Contains(t, resolveErr.Error(), "are you in a git repo?")
	})

	t.Run("should add a submodule that the declaration reader finds", func(t *testing.T) {
		// given
		root := newRepository(t)
		upstream := newRepository(t)

		// when
		err := repository.AddSubmodule(context.Background(), root, upstream, "libs/upstream")

		// then
		require.NoError(t, err)
		registry, loadErr := gitmodules.NewSubmoduleDeclarationRepository(afero.NewOsFs()).
			Load(context.Background(), root)
		require.NoError(t, loadErr)
		submodule, ok := registry.Lookup("libs/upstream")
		require.True(t, ok)
		assert.Equal(t, upstream, submodule.URL)
	})

	t.Run("should fail when the path is already registered", func(t *testing.T) {
		// given
		root := newRepository(t)
		upstream := newRepository(t)
		require.NoError(t, repository.AddSubmodule(context.Background(), root, upstream, "dup"))

		// when
		err := repository.AddSubmodule(context.Background(), root, upstream, "dup")

		// then
		var cmdErr *entities.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Positive(t, cmdErr.ExitCode)
	})

	t.Run("should report a missing binary as a command that could not run", func(t *testing.T) {
		// given
		settings := entities.DefaultSettings()
		settings.Git.Binary = "git-binary-that-does-not-exist"
		missing := git.NewVersionControlRepository(settings)

		// when
		_, err := missing.ResolveRoot(context.Background(), t.TempDir())

		// then
		var cmdErr *entities.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, -1, cmdErr.ExitCode)
		assert.Contains(t, err.Error(), "could not be run")
	})

	t.Run("should use a binary set after construction", func(t *testing.T) {
		// given
		settings := entities.DefaultSettings()
		repository := git.NewVersionControlRepository(settings)
		settings.Git.Binary = "git-binary-replaced-by-config"

		// when
		_, err := repository.ResolveRoot(context.Background(), t.TempDir())

		// then
		var cmdErr *entities.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "git-binary-replaced-by-config", cmdErr.Args[0])
	})
}
