package booking

import (
	"errors"
	"fmt"
)

// ErrBookingNotFound is returned by Get and Delete for unknown ids.
var ErrBookingNotFound = errors.New("booking not found")

// ValidationError reports a create request that is missing a required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid booking: %s %s", e.Field, e.Reason)
}
