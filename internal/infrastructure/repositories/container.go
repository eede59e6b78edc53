package repositories

import (
	"github.com/spf13/afero"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/subcopy/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/subcopy/internal/infrastructure/repositories/git"
	gitmodulesRepo "github.com/rios0rios0/subcopy/internal/infrastructure/repositories/gitmodules"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// The real filesystem backs both the declaration reader and the tree copier
	if err := container.Provide(func() afero.Fs {
		return afero.NewOsFs()
	}); err != nil {
		return err
	}

	if err := container.Provide(gitRepo.NewVersionControlRepository); err != nil {
		return err
	}
	if err := container.Provide(gitmodulesRepo.NewSubmoduleDeclarationRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *gitRepo.VersionControlRepository) domainRepos.VersionControlRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(
		func(impl *gitmodulesRepo.SubmoduleDeclarationRepository) domainRepos.SubmoduleDeclarationRepository {
			return impl
		},
	); err != nil {
		return err
	}

	return nil
}
