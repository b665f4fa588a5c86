// Package apperr defines the typed errors shared across the exporter.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError represents an image embed whose token matched no vault asset.
type NotFoundError struct {
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image not found in vault: %s", e.Token)
}

// NewNotFoundError creates a NotFoundError for the given embed token.
func NewNotFoundError(token string) *NotFoundError {
	return &NotFoundError{Token: token}
}

// IsNotFound reports whether err is a NotFoundError (even when wrapped).
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}
