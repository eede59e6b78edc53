package main

import (
	"github.com/rios0rios0/subcopy/internal"
	"github.com/rios0rios0/subcopy/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectCopyController() (*controllers.CopyController, error) {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		return nil, err
	}

	var copyController *controllers.CopyController
	if err := container.Invoke(func(cc *controllers.CopyController) {
		copyController = cc
	}); err != nil {
		return nil, err
	}

	return copyController, nil
}
