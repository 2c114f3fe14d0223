package applications

import (
	"errors"
	"fmt"
)

var (
	ErrSaveFailed  = errors.New("Failed to save application")
	ErrFetchFailed = errors.New("Failed to fetch applications")
)

// DuplicateError reports a uniqueness violation on a single field.
// Field is empty when the store did not say which index collided.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "phone or email already exists"
	}
	return fmt.Sprintf("%s already exists", e.Field)
}
