package apperr

import "fmt"

// WriteError represents a failed document write into the site content tree.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a WriteError for the given destination path.
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}
