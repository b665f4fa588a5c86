package apperr

import "fmt"

// CopyError represents a failed asset relocation.
type CopyError struct {
	Source string
	Dest   string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// NewCopyError creates a CopyError for the given source and destination.
func NewCopyError(source, dest string, err error) *CopyError {
	return &CopyError{Source: source, Dest: dest, Err: err}
}
