//go:build integration

package internal_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/subcopy/internal"
	"github.com/rios0rios0/subcopy/internal/domain/commands"
	"github.com/rios0rios0/subcopy/internal/domain/entities"
	"github.com/rios0rios0/subcopy/internal/infrastructure/repositories/gitmodules"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{"-c", "user.name=subcopy", "-c", "user.email=subcopy@example.com"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

func newRepository(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "commit", "-q", "--allow-empty", "-m", "init")
	return dir
}

func TestCopyEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")

	configPath := filepath.Join(t.TempDir(), "subcopy.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("git:\n  binary: git\n"), 0o600))
	t.Setenv(entities.ConfigEnvVar, configPath)

	t.Run("should copy files and re-register the submodule at the destination", func(t *testing.T) {
		// given
		root := newRepository(t)
		upstream := newRepository(t)
		runGit(t, root, "submodule", "add", "-q", upstream, "A/sub")
		require.NoError(t, os.WriteFile(filepath.Join(root, "A", "x.txt"), []byte("original"), 0o644))

		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		var command commands.Copy
		require.NoError(t, container.Invoke(func(c commands.Copy) { command = c }))

		// when
		result, err := command.Execute(context.Background(), entities.CopyOptions{
			Source:      filepath.Join(root, "A"),
			Destination: filepath.Join(root, "B"),
			WorkDir:     root,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.PendingSubmodule{{Path: "B/sub", URL: upstream}}, result.Pending)

		data, readErr := os.ReadFile(filepath.Join(root, "B", "x.txt"))
		require.NoError(t, readErr)
		assert.Equal(t, "original", string(data))

		registry, loadErr := gitmodules.NewSubmoduleDeclarationRepository(afero.NewOsFs()).
			Load(context.Background(), root)
		require.NoError(t, loadErr)
		moved, ok := registry.Lookup("B/sub")
		require.True(t, ok)
		assert.Equal(t, upstream, moved.URL)
		_, ok = registry.Lookup("A/sub")
		assert.True(t, ok)
	})
}
