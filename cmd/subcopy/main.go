package main

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/subcopy/internal/domain/entities"
	"github.com/rios0rios0/subcopy/internal/infrastructure/controllers"
)

const exitFailure = 1

func buildRootCommand(copyController *controllers.CopyController) *cobra.Command {
	bind := copyController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.ExactArgs(2), //nolint:mnd // <src> <dst>
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			// arguments are valid past this point, failures are not usage errors
			command.SilenceUsage = true
			return copyController.Execute(command, args)
		},
	}

	copyController.AddFlags(cmd)
	return cmd
}

// exitCode propagates the exit status of a failed git command.
func exitCode(err error) int {
	var cmdErr *entities.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return exitFailure
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	copyController, err := injectCopyController()
	if err != nil {
		logger.Fatalf("Error initializing 'subcopy': %s", err)
	}

	if execErr := buildRootCommand(copyController).Execute(); execErr != nil {
		logger.Errorf("Error executing 'subcopy': %s", execErr)
		os.Exit(exitCode(execErr))
	}
}
