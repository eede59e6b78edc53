package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceNotDirectory is returned when the copy source is missing or is not a directory.
	ErrSourceNotDirectory = errors.New("source is not a directory")

	// ErrDestinationInsideSource is returned when the destination would be walked as part of the source.
	ErrDestinationInsideSource = errors.New("destination lies inside the source")

	// ErrDestinationConflict is returned when the destination holds an entry of a different type.
	ErrDestinationConflict = errors.New("destination entry has a conflicting type")

	// ErrSameFile is returned when a destination file resolves to its own source file.
	ErrSameFile = errors.New("source and destination are the same file")

	// ErrOutsideRepository is returned when submodules would have to be registered outside the repository.
	ErrOutsideRepository = errors.New("path lies outside the repository")
)

// CommandError describes a failed external version-control command.
// ExitCode is negative when the command could not be started at all.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s could not be run: %v", strings.Join(e.Args, " "), e.Err)
	}
	msg := fmt.Sprintf("%s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
