package sensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnavailableError is returned when a sensor has not reported a sample yet.
type UnavailableError struct {
	Kind Kind
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s data unavailable", e.Kind)
}

// NewUnavailableError returns an error for a sensor that has not reported yet.
func NewUnavailableError(kind Kind) error {
	return &UnavailableError{Kind: kind}
}

// IsUnavailable returns whether err, or anything it wraps, is an UnavailableError.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}
