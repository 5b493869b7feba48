package vfs

import "errors"

// Sentinel errors. Every error returned by FileSystem wraps one of these, so
// callers can branch with errors.Is.
var (
	// ErrNotExist indicates a path has no corresponding node.
	ErrNotExist = errors.New("no such file or directory")

	// ErrNotDir indicates a directory was required but a file was found,
	// including when a file is used as an intermediate path segment.
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir indicates a file was required but a directory was found.
	ErrIsDir = errors.New("is a directory")

	// ErrExist indicates the destination of a copy or move is already taken.
	ErrExist = errors.New("file exists")

	// ErrRoot indicates an operation that is never allowed on the root.
	ErrRoot = errors.New("operation not permitted on root directory")

	// ErrInvalid indicates a malformed name or a structurally impossible move.
	ErrInvalid = errors.New("invalid argument")
)

// PathError records an operation, the path it acted on and the cause.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
