package profile

import (
	"errors"
	"fmt"
)

var ErrProfileNotFound = errors.New("profile not found")

// FieldError reports an update key that could not be applied.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
