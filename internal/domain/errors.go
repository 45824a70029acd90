package domain

import "errors"

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrSeatUnavailable  = errors.New("seat is already taken")
	ErrInvalidState     = errors.New("operation is not allowed in the current booking status")
	ErrForbidden        = errors.New("booking belongs to another user")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrFlightDeparted   = errors.New("flight has already departed")
	ErrNoSeatsLeft      = errors.New("no seats available on this flight")
)
