//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/subcopy/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SubmoduleBuilder helps create test submodule declarations with a fluent interface.
type SubmoduleBuilder struct {
	*testkit.BaseBuilder
	name string
	path string
	url  string
}

// NewSubmoduleBuilder creates a new submodule builder with sensible defaults.
func NewSubmoduleBuilder() *SubmoduleBuilder {
	return &SubmoduleBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "libs/shared",
		path:        "libs/shared",
		url:         "https://github.com/test/shared.git",
	}
}

// WithName sets the section name.
func (b *SubmoduleBuilder) WithName(name string) *SubmoduleBuilder {
	b.name = name
	return b
}

// WithPath sets the repository-relative path. The name follows it.
func (b *SubmoduleBuilder) WithPath(path string) *SubmoduleBuilder {
	b.path = path
	b.name = path
	return b
}

// WithURL sets the remote URL.
func (b *SubmoduleBuilder) WithURL(url string) *SubmoduleBuilder {
	b.url = url
	return b
}

// Build creates the submodule (satisfies testkit.Builder interface).
func (b *SubmoduleBuilder) Build() interface{} {
	return b.BuildSubmodule()
}

// BuildSubmodule creates the submodule with a concrete return type.
func (b *SubmoduleBuilder) BuildSubmodule() entities.Submodule {
	return entities.Submodule{
		Name: b.name,
		Path: b.path,
		URL:  b.url,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SubmoduleBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "libs/shared"
	b.path = "libs/shared"
	b.url = "https://github.com/test/shared.git"
	return b
}

// Clone creates a deep copy of the SubmoduleBuilder.
func (b *SubmoduleBuilder) Clone() testkit.Builder {
	return &SubmoduleBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		path:        b.path,
		url:         b.url,
	}
}
