package domain

import "errors"

// Business-rule errors. Handlers map these to transport codes with
// errors.Is; everything else is treated as internal.
var (
	// ErrNotFound covers missing users, items, bookings and requests. It is
	// also returned when a stranger reads a booking, so an unauthorized
	// caller cannot tell whether the resource exists.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when someone other than the item
	// owner tries to change a booking status, or a non-owner edits an item.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation covers unavailable items, start >= end, mutations of an
	// already approved booking and comments without a finished booking.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownState is returned for a state filter token outside the
	// closed set. The wrapped message carries the original token.
	ErrUnknownState = errors.New("unknown state")

	// ErrDuplicateEmail is returned when a user email is already taken.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrConcurrentModification signals a lost compare-and-swap on a
	// booking status: another status change won the race.
	ErrConcurrentModification = errors.New("booking was modified concurrently")
)
