package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/subcopy/internal/domain/commands"
	"github.com/rios0rios0/subcopy/internal/domain/entities"
)

const copyArgs = 2

// CopyController handles the root command: `subcopy <src> <dst>`.
type CopyController struct {
	command  commands.Copy
	settings *entities.Settings
}

var _ entities.Controller = (*CopyController)(nil)

// NewCopyController creates a new CopyController.
// settings is the instance shared with the command and its repositories,
// so a file given with --config replaces it in place.
func NewCopyController(command commands.Copy, settings *entities.Settings) *CopyController {
	return &CopyController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the copy controller.
func (it *CopyController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "subcopy <src> <dst>",
		Short: "Copy a directory tree and re-register its git submodules",
		Long: `Copy a directory tree from one place to another inside a git repository.

Directories declared as submodules in the repository's .gitmodules are not
copied. Once every other file has been copied, each of them is registered
again with 'git submodule add' at its new path, pointing at the same URL.

Examples:
  subcopy services/api services/api-v2
  subcopy --dry-run templates/base templates/edge`,
	}
}

// AddFlags adds the copy-specific flags to the given Cobra command.
func (it *CopyController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.Flags().Bool("dry-run", false,
		"Show what would be copied and registered without making changes")
	cmd.Flags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

// Execute runs the copy with the two positional arguments.
func (it *CopyController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != copyArgs {
		return fmt.Errorf("expected %d arguments (<src> <dst>), got %d", copyArgs, len(args))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		settings, err := entities.NewSettings(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		logger.Debugf("Using config file: %s", configPath)
		*it.settings = *settings
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	src, err := resolvePath(args[0])
	if err != nil {
		return fmt.Errorf("invalid source path: %w", err)
	}
	dst, err := resolvePath(args[1])
	if err != nil {
		return fmt.Errorf("invalid destination path: %w", err)
	}

	if dryRun {
		logger.Info("Dry run: nothing will be written")
	}

	result, err := it.command.Execute(ctx, entities.CopyOptions{
		Source:      src,
		Destination: dst,
		WorkDir:     workDir,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	logger.Infof(
		"Done. %d file(s) and %d symlink(s) copied, %d entries skipped, %d submodule(s) re-registered.",
		result.FilesCopied, result.SymlinksCopied, result.Skipped, len(result.Pending),
	)
	return nil
}

// resolvePath makes p absolute and resolves symlinks in its longest existing
// prefix, so that it compares cleanly with the root git reports.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	resolvedParent, err := resolvePath(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}
