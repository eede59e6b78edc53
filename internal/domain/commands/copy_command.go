package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
	"github.com/rios0rios0/subcopy/internal/domain/repositories"
)

// Copy is the interface for the copy command.
type Copy interface {
	Execute(ctx context.Context, opts entities.CopyOptions) (*entities.CopyResult, error)
}

// CopyCommand copies a directory tree inside a repository and re-registers the
// submodules it contains at their new location.
type CopyCommand struct {
	vcs          repositories.VersionControlRepository
	declarations repositories.SubmoduleDeclarationRepository
	fs           afero.Fs
	settings     *entities.Settings
}

// NewCopyCommand creates a new CopyCommand.
func NewCopyCommand(
	vcs repositories.VersionControlRepository,
	declarations repositories.SubmoduleDeclarationRepository,
	fs afero.Fs,
	settings *entities.Settings,
) *CopyCommand {
	return &CopyCommand{
		vcs:          vcs,
		declarations: declarations,
		fs:           fs,
		settings:     settings,
	}
}

// Execute copies opts.Source into opts.Destination. Both must be absolute.
// Nothing is written before the source has been validated; submodule
// registration only starts once the whole tree has been copied.
func (it *CopyCommand) Execute(ctx context.Context, opts entities.CopyOptions) (*entities.CopyResult, error) {
	src := filepath.Clean(opts.Source)
	dst := filepath.Clean(opts.Destination)

	if err := it.validatePaths(src, dst); err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = src
	}

	root, err := it.vcs.ResolveRoot(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository root: %w", err)
	}
	logger.Debugf("Repository root: %s", root)

	registry, err := it.declarations.Load(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to load submodule declarations: %w", err)
	}
	logger.Debugf("Found %d submodule declaration(s)", registry.Len())

	if checkErr := checkRegistrable(root, src, dst, registry); checkErr != nil {
		return nil, checkErr
	}

	copier := &treeCopier{
		fs:               it.fs,
		root:             root,
		registry:         registry,
		preserveMetadata: it.settings.Copy.PreserveMetadata,
		dryRun:           opts.DryRun,
	}
	result, err := copier.copyTree(src, dst)
	if err != nil {
		return result, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	logger.Infof(
		"Copied %d file(s) and %d symlink(s), created %d directories under %s",
		result.FilesCopied, result.SymlinksCopied, result.DirectoriesCreated, dst,
	)

	if regErr := it.registerSubmodules(ctx, root, result.Pending, opts.DryRun); regErr != nil {
		return result, regErr
	}

	return result, nil
}

// validatePaths fails when the source is not an existing directory or when
// the destination would end up inside the walked tree.
func (it *CopyCommand) validatePaths(src, dst string) error {
	if !filepath.IsAbs(src) || !filepath.IsAbs(dst) {
		return fmt.Errorf("source and destination must be absolute paths, got %q and %q", src, dst)
	}

	info, err := it.fs.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", entities.ErrSourceNotDirectory, src)
		}
		return fmt.Errorf("failed to stat source %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", entities.ErrSourceNotDirectory, src)
	}

	if _, inside := relInside(src, dst); inside {
		return fmt.Errorf("%w: %s is inside %s", entities.ErrDestinationInsideSource, dst, src)
	}
	return nil
}

// checkRegistrable rejects a run whose submodules could not be registered
// because the destination lies outside the repository.
func checkRegistrable(root, src, dst string, registry *entities.SubmoduleRegistry) error {
	srcRel, srcInside := relInside(root, src)
	if !srcInside {
		return nil
	}
	if _, dstInside := relInside(root, dst); dstInside {
		return nil
	}
	if nested := registry.Within(srcRel); len(nested) > 0 {
		return fmt.Errorf(
			"%w: %s contains %d submodule(s) that cannot be registered at %s",
			entities.ErrOutsideRepository, src, len(nested), dst,
		)
	}
	return nil
}

func (it *CopyCommand) registerSubmodules(
	ctx context.Context,
	root string,
	pending []entities.PendingSubmodule,
	dryRun bool,
) error {
	for _, submodule := range pending {
		if dryRun {
			logger.Infof("[dry-run] Would add submodule: %s -> %s", submodule.URL, submodule.Path)
			continue
		}

		logger.Infof("Adding submodule: %s -> %s", submodule.URL, submodule.Path)
		if err := it.vcs.AddSubmodule(ctx, root, submodule.URL, submodule.Path); err != nil {
			logger.Errorf("Files were copied but submodule %s is not linked", submodule.Path)
			return fmt.Errorf("failed to add submodule %s at %s: %w", submodule.URL, submodule.Path, err)
		}
	}
	return nil
}
