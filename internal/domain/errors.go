package domain

import "errors"

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("booking belongs to another user")
	// ErrSeatsUnavailable is an expected outcome, not a system failure: the
	// flight is sold out, or a concurrent booking took the last seat.
	ErrSeatsUnavailable = errors.New("no seats available")
	ErrInvalidInput     = errors.New("invalid input")
)
