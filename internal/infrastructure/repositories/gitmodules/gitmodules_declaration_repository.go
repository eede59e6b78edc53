package gitmodules

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5/config"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
)

// FileName is the declaration file git keeps at the repository root.
const FileName = ".gitmodules"

// SubmoduleDeclarationRepository reads .gitmodules with go-git's config parser.
type SubmoduleDeclarationRepository struct {
	fs afero.Fs
}

// NewSubmoduleDeclarationRepository creates a repository reading from fs.
func NewSubmoduleDeclarationRepository(fs afero.Fs) *SubmoduleDeclarationRepository {
	return &SubmoduleDeclarationRepository{fs: fs}
}

// Load parses <root>/.gitmodules. A missing file yields an empty registry.
// Declarations lacking a path or URL are skipped, as are paths escaping the
// repository, which go-git drops while parsing.
func (it *SubmoduleDeclarationRepository) Load(_ context.Context, root string) (*entities.SubmoduleRegistry, error) {
	path := filepath.Join(root, FileName)

	data, err := afero.ReadFile(it.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("No %s in %s", FileName, root)
			return entities.NewSubmoduleRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	modules := config.NewModules()
	if unmarshalErr := modules.Unmarshal(data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, unmarshalErr)
	}

	declared := make([]*config.Submodule, 0, len(modules.Submodules))
	for _, submodule := range modules.Submodules {
		declared = append(declared, submodule)
	}
	sort.Slice(declared, func(i, j int) bool { return declared[i].Name < declared[j].Name })

	registry := entities.NewSubmoduleRegistry()
	for _, submodule := range declared {
		accepted := registry.Add(entities.Submodule{
			Name: submodule.Name,
			Path: submodule.Path,
			URL:  submodule.URL,
		})
		if !accepted {
			logger.Debugf("Ignoring submodule %q: path and url are both required", submodule.Name)
		}
	}
	return registry, nil
}
