package engine

import (
	"errors"
	"fmt"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/alloc"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/fstable"
)

var (
	// ErrNotFound is returned when a file or directory id does not exist.
	ErrNotFound = fstable.ErrNotFound

	// ErrNotDirectory is returned when a parent id names a regular file.
	ErrNotDirectory = fstable.ErrNotDirectory

	// ErrIsDirectory is returned when a file-only operation targets a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNoSpace is returned when allocation cannot be satisfied. No state changes.
	ErrNoSpace = alloc.ErrNoSpace

	// ErrInvalidSize is returned when a file is requested with fewer than one block.
	ErrInvalidSize = alloc.ErrInvalidSize

	// ErrUnknownStrategy is returned for an unrecognized allocation strategy.
	ErrUnknownStrategy = alloc.ErrUnknownStrategy

	// ErrInvalidArgument is returned when the configuration is invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidSeverity is returned when a crash severity is outside (0, 1].
	ErrInvalidSeverity = fmt.Errorf("%w: crash severity", ErrInvalidArgument)
)
