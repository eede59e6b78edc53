package repositories

import "context"

// VersionControlRepository abstracts the version-control system the tree lives in.
// Implementations must not depend on the process working directory: every call
// names the directory it operates on.
type VersionControlRepository interface {
	// ResolveRoot returns the absolute top-level directory of the repository
	// enclosing dir.
	ResolveRoot(ctx context.Context, dir string) (string, error)

	// AddSubmodule registers url as a submodule at relPath, relative to root.
	AddSubmodule(ctx context.Context, root, url, relPath string) error
}
