package vfs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/memvfs/pkg/vpath"
)

// Sentinel errors for every failure the engine raises.
// These enable callers to distinguish error kinds using errors.Is().
//
// Example usage:
//
//	err := fs.DeleteDir(p)
//	if errors.Is(err, vfs.ErrNotEmpty) {
//	    // delete the children first
//	}
var (
	// ErrInvalidArgument indicates a malformed path or impossible path arithmetic.
	// It is the same value as vpath.ErrInvalidArgument.
	ErrInvalidArgument = vpath.ErrInvalidArgument

	// ErrDuplicate indicates a directory was created where one already exists.
	ErrDuplicate = errors.New("directory already exists")

	// ErrAlreadyExists indicates the other kind of entry occupies the path.
	// The concrete error is a *ConflictError carrying the kind found.
	ErrAlreadyExists = errors.New("path already exists")

	// ErrParentMissing indicates a file was created under a directory that does not exist.
	ErrParentMissing = errors.New("parent directory does not exist")

	// ErrNotFound indicates the file or directory does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrNotEmpty indicates a directory still has children.
	ErrNotEmpty = errors.New("directory not empty")

	// ErrNonWritable indicates a mutating operation on a read-only channel.
	ErrNonWritable = errors.New("channel not writable")

	// ErrUnsupported indicates the operation cannot be provided by this backend.
	ErrUnsupported = errors.New("operation not supported")

	// ErrOutOfBounds indicates indexed access past the end of a content buffer.
	// The concrete error is an *OutOfBoundsError.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrClosed indicates use of a stream or channel after Close.
	ErrClosed = errors.New("already closed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PathError records the operation and path that produced err.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }

// ConflictError is returned when a create or move finds the other kind of
// entry at the target path.
type ConflictError struct {
	Op    string
	Path  string
	Found Kind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %s (found %s)", e.Op, e.Path, ErrAlreadyExists, e.Found)
}

// Is matches ErrAlreadyExists.
func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

// OutOfBoundsError reports the requested index and the size it exceeded.
type OutOfBoundsError struct {
	Index int64
	Size  int64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds for size %d", e.Index, e.Size)
}

// Is matches ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// ExitCodeForError returns the CLI exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidPath
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrParentMissing):
		return ExitNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrDuplicate):
		return ExitConflict
	case errors.Is(err, ErrNotEmpty):
		return ExitNotEmpty
	case errors.Is(err, ErrUnsupported), errors.Is(err, ErrNonWritable):
		return ExitUnsupported
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{"missing required argument", "unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "requires at least", "requires at most", "invalid argument \""} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
