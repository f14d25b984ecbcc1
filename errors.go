package fros

import (
	"errors"
	"fmt"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/engine"
)

var (
	// ErrNotFound is returned when a file or directory id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSpace is returned when allocation fails. Nothing is changed.
	ErrNoSpace = errors.New("allocation failed: no space")

	// ErrNotDirectory is returned when a parent id names a regular file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrIsDirectory is returned when a file-only operation targets a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrInvalidArgument is returned for sizes, strategies or severities
	// outside their domain.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrInvalidConfig indicates an option value the simulator cannot be built with.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Field string
	Value any
	cause error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s = %v", e.Field, e.Value)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, engine.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, engine.ErrNoSpace):
		return fmt.Errorf("%w: %w", ErrNoSpace, err)
	case errors.Is(err, engine.ErrNotDirectory):
		return fmt.Errorf("%w: %w", ErrNotDirectory, err)
	case errors.Is(err, engine.ErrIsDirectory):
		return fmt.Errorf("%w: %w", ErrIsDirectory, err)
	case errors.Is(err, engine.ErrInvalidSize),
		errors.Is(err, engine.ErrUnknownStrategy),
		errors.Is(err, engine.ErrInvalidArgument):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
