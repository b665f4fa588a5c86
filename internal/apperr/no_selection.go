package apperr

import "errors"

// NoSelectionError signals that an export batch contained no notes.
type NoSelectionError struct{}

func (e *NoSelectionError) Error() string {
	return "no notes selected"
}

// IsNoSelection reports whether err is a NoSelectionError (even when wrapped).
func IsNoSelection(err error) bool {
	var noSelErr *NoSelectionError
	return errors.As(err, &noSelErr)
}
