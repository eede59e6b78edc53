package entities

import (
	"path"
	"sort"
	"strings"
)

// Submodule is a single declaration from a .gitmodules file.
type Submodule struct {
	Name string // Section name, e.g. `[submodule "libs/foo"]`
	Path string // Repository-relative, slash separated
	URL  string
}

// PendingSubmodule is a submodule found during the walk that still has to be
// registered at its new location.
type PendingSubmodule struct {
	Path string // Destination path, relative to the repository root
	URL  string
}

// SubmoduleRegistry maps repository-relative paths to their submodule declaration.
type SubmoduleRegistry struct {
	byPath map[string]Submodule
}

// NewSubmoduleRegistry creates a registry holding the given submodules.
// Entries without a path or URL are ignored.
func NewSubmoduleRegistry(submodules ...Submodule) *SubmoduleRegistry {
	registry := &SubmoduleRegistry{byPath: make(map[string]Submodule, len(submodules))}
	for _, submodule := range submodules {
		registry.Add(submodule)
	}
	return registry
}

// Add records the submodule and reports whether it was accepted.
func (r *SubmoduleRegistry) Add(submodule Submodule) bool {
	if submodule.Path == "" || submodule.URL == "" {
		return false
	}
	submodule.Path = NormalizeRelPath(submodule.Path)
	if submodule.Path == "." {
		return false
	}
	r.byPath[submodule.Path] = submodule
	return true
}

// Lookup returns the submodule declared at relPath.
func (r *SubmoduleRegistry) Lookup(relPath string) (Submodule, bool) {
	if r == nil {
		return Submodule{}, false
	}
	submodule, ok := r.byPath[NormalizeRelPath(relPath)]
	return submodule, ok
}

// Len returns the number of declared submodules.
func (r *SubmoduleRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byPath)
}

// Within returns the submodules strictly below dir, sorted by path.
// A dir of "." matches every submodule.
func (r *SubmoduleRegistry) Within(dir string) []Submodule {
	if r == nil {
		return nil
	}
	dir = NormalizeRelPath(dir)
	prefix := dir + "/"

	var result []Submodule
	for p, submodule := range r.byPath {
		if dir == "." || strings.HasPrefix(p, prefix) {
			result = append(result, submodule)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// NormalizeRelPath cleans a repository-relative path and strips leading "./"
// and trailing slashes, so that declarations and walk paths compare equal.
func NormalizeRelPath(relPath string) string {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	return path.Clean(strings.TrimPrefix(relPath, "/"))
}
