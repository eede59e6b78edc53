package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
)

const (
	dirPerm       = 0o755
	preservedBits = os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky
)

// treeCopier copies a directory tree, leaving out declared submodules.
type treeCopier struct {
	fs               afero.Fs
	root             string
	registry         *entities.SubmoduleRegistry
	preserveMetadata bool
	dryRun           bool
}

// copyTree walks src in lexical order and mirrors it under dst.
// Directories registered as submodules are neither created nor descended
// into; they are returned as pending registrations instead.
func (c *treeCopier) copyTree(src, dst string) (*entities.CopyResult, error) {
	result := &entities.CopyResult{}

	walkErr := afero.Walk(c.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		mode := info.Mode()

		switch {
		case mode.IsDir():
			if path != src {
				if submodule, ok := c.submoduleAt(path); ok {
					return c.deferSubmodule(submodule, target, result)
				}
			}
			return c.copyDir(target, result)
		case mode&os.ModeSymlink != 0:
			return c.copySymlink(path, target, result)
		case mode.IsRegular():
			return c.copyFile(path, target, info, result)
		default:
			logger.Warnf("Skipping special file %s (%s)", path, mode.Type())
			result.Skipped++
			return nil
		}
	})

	return result, walkErr
}

// submoduleAt reports whether the directory at path is a declared submodule.
func (c *treeCopier) submoduleAt(path string) (entities.Submodule, bool) {
	rel, ok := relInside(c.root, path)
	if !ok {
		return entities.Submodule{}, false
	}
	return c.registry.Lookup(rel)
}

func (c *treeCopier) deferSubmodule(
	submodule entities.Submodule,
	target string,
	result *entities.CopyResult,
) error {
	rel, ok := relInside(c.root, target)
	if !ok {
		return fmt.Errorf("%w: cannot register submodule %q at %s", entities.ErrOutsideRepository, submodule.Path, target)
	}

	logger.Infof("Skipping submodule %s, will register it at %s", submodule.Path, rel)
	result.Pending = append(result.Pending, entities.PendingSubmodule{Path: rel, URL: submodule.URL})
	return filepath.SkipDir
}

func (c *treeCopier) copyDir(target string, result *entities.CopyResult) error {
	existing, err := c.fs.Stat(target)
	switch {
	case err == nil && existing.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s exists and is not a directory", entities.ErrDestinationConflict, target)
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	result.DirectoriesCreated++
	if c.dryRun {
		logger.Debugf("Would create directory %s", target)
		return nil
	}
	logger.Debugf("Creating directory %s", target)
	return c.fs.MkdirAll(target, dirPerm)
}

func (c *treeCopier) copyFile(
	srcPath, target string,
	info os.FileInfo,
	result *entities.CopyResult,
) error {
	// Stat follows links, so a target pointing back at srcPath is caught here
	// before O_TRUNC would empty the source.
	if existing, err := c.fs.Stat(target); err == nil {
		if existing.IsDir() {
			return fmt.Errorf("%w: %s is a directory, cannot overwrite it with a file", entities.ErrDestinationConflict, target)
		}
		if os.SameFile(info, existing) {
			return fmt.Errorf("%w: %s resolves to %s", entities.ErrSameFile, target, srcPath)
		}
	}

	result.FilesCopied++
	if c.dryRun {
		logger.Debugf("Would copy %s -> %s", srcPath, target)
		return nil
	}
	logger.Debugf("Copying %s -> %s", srcPath, target)

	if err := c.writeFile(srcPath, target, info.Mode()&preservedBits); err != nil {
		return err
	}

	if !c.preserveMetadata {
		return nil
	}
	if err := c.fs.Chmod(target, info.Mode()&preservedBits); err != nil {
		return fmt.Errorf("failed to preserve mode of %s: %w", target, err)
	}
	if err := c.fs.Chtimes(target, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to preserve times of %s: %w", target, err)
	}
	return nil
}

func (c *treeCopier) writeFile(srcPath, target string, perm os.FileMode) error {
	in, err := c.fs.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := c.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, copyErr := io.Copy(out, in); copyErr != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", srcPath, copyErr)
	}
	return out.Close()
}

func (c *treeCopier) copySymlink(srcPath, target string, result *entities.CopyResult) error {
	reader, canRead := c.fs.(afero.LinkReader)
	linker, canLink := c.fs.(afero.Linker)
	if !canRead || !canLink {
		logger.Warnf("Skipping symlink %s, filesystem does not support links", srcPath)
		result.Skipped++
		return nil
	}

	linkDest, err := reader.ReadlinkIfPossible(srcPath)
	if err != nil {
		return err
	}

	if existing, statErr := c.lstat(target); statErr == nil {
		if existing.IsDir() {
			return fmt.Errorf("%w: %s is a directory, cannot overwrite it with a symlink", entities.ErrDestinationConflict, target)
		}
		if !c.dryRun {
			if removeErr := c.fs.Remove(target); removeErr != nil {
				return removeErr
			}
		}
	}

	result.SymlinksCopied++
	if c.dryRun {
		logger.Debugf("Would link %s -> %s", target, linkDest)
		return nil
	}
	logger.Debugf("Linking %s -> %s", target, linkDest)
	return linker.SymlinkIfPossible(linkDest, target)
}

func (c *treeCopier) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := c.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return c.fs.Stat(path)
}

// relInside returns path relative to base in slash form, and false when path
// does not lie inside base.
func relInside(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
