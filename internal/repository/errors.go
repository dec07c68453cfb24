// Package repository implements all database queries for the event platform.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrAlreadyRegistered is returned when the user holds any prior
// registration for the event, whatever its status.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrCapacityExceeded is returned when the approved-registration count has
// reached the event's capacity.
var ErrCapacityExceeded = errors.New("event is at capacity")

// ErrOwnEvent is returned when an organizer tries to register for their
// own event.
var ErrOwnEvent = errors.New("cannot register for your own event")

// ErrConfirmationExhausted is returned when confirmation-id generation
// keeps colliding past the retry bound.
var ErrConfirmationExhausted = errors.New("could not generate a unique confirmation id")

// ErrRegistrationClosed is returned when a decision targets a cancelled
// registration. Cancellation is terminal.
var ErrRegistrationClosed = errors.New("registration has been cancelled")
