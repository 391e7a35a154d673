package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups against ids that do not exist, as opposed to
	// business-rule failures on objects that do.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientSeats is returned when a reservation asks for more seats
	// than remain on the trip. No state is mutated.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrTripNotBookable is returned when the trip exists but is not in a
	// status that accepts reservations.
	ErrTripNotBookable = errors.New("trip is not open for booking")

	// ErrTripHasBookings blocks deleting a trip that bookings still reference.
	ErrTripHasBookings = errors.New("trip has active bookings")

	// ErrPlateExists is returned when a vehicle registration reuses a plate
	// number already on the fleet.
	ErrPlateExists = errors.New("a vehicle with this plate number already exists")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
