//go:build unit

package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/subcopy/internal/domain/commands"
)

func TestRelInside(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		path     string
		rel      string
		expected bool
	}{
		{name: "same directory", base: "/repo", path: "/repo", rel: ".", expected: true},
		{name: "nested path", base: "/repo", path: "/repo/a/b", rel: "a/b", expected: true},
		{name: "name starting with dots", base: "/repo", path: "/repo/..hidden", rel: "..hidden", expected: true},
		{name: "parent directory", base: "/repo/a", path: "/repo", expected: false},
		{name: "sibling directory", base: "/repo/a", path: "/repo/ab", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			rel, inside := commands.RelInside(tt.base, tt.path)

			// then
			assert.Equal(t, tt.expected, inside)
			assert.Equal(t, tt.rel, rel)
		})
	}
}
