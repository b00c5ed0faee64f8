// Package repository defines error values shared across the data
// access layer. Sentinel errors let handlers translate repository
// failures into distinct HTTP responses: ErrConflict becomes a 409
// when a stale settlement loses the optimistic version check, while
// the not-found values become 404s for their entity.
package repository

import "errors"

// ErrRoomNotFound indicates that no room type row matched the query.
var ErrRoomNotFound = errors.New("room type not found")

// ErrBookingNotFound indicates that no booking row matched the query.
var ErrBookingNotFound = errors.New("booking not found")

// ErrInvoiceNotFound indicates that no invoice row matched the query.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrConflict is returned when an update cannot proceed because the
// row changed underneath the caller, such as two staff settling the
// same booking concurrently. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering a user with an email
// address that is already taken.
var ErrEmailExists = errors.New("email already exists")
