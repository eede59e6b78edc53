package repositories

import (
	"context"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
)

// SubmoduleDeclarationRepository reads the submodules a repository declares.
type SubmoduleDeclarationRepository interface {
	// Load returns the submodules declared at root. A repository without a
	// declaration file yields an empty registry and no error.
	Load(ctx context.Context, root string) (*entities.SubmoduleRegistry, error)
}
