// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrRoomUnavailable indicates that a booking lost the race
// for the last available unit of a room, while ErrSchemaMissing
// signals that the underlying tables have not been created yet so
// the caller can offer to run schema initialization instead of
// showing a generic failure.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced entity (hotel, room,
// user, booking) does not exist. Handlers should translate this
// into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrRoomUnavailable is returned when a booking is attempted
// against a room whose available-unit counter is zero. The guarded
// decrement affected no rows, so the booking must be rejected and
// the transaction rolled back. Handlers translate this into 409.
var ErrRoomUnavailable = errors.New("room unavailable")

// ErrEmailExists is returned when an insert violates the unique
// email constraint on the users table.
var ErrEmailExists = errors.New("email already exists")

// ErrSchemaMissing is returned when a query fails because one of
// the application tables does not exist. Handlers surface this
// with a dedicated code (TABLES_NOT_FOUND) so the client can
// prompt for database initialization.
var ErrSchemaMissing = errors.New("database schema not initialized")

// ErrConstraint is returned when a write violates a foreign key,
// typically a booking referencing a user or hotel row that was
// never seeded. Handlers attach a hint to initialize the schema.
var ErrConstraint = errors.New("foreign key constraint violated")

// isMySQLErr reports whether err carries the given MySQL server
// error number. The driver embeds the number in the error text
// (e.g. "Error 1062: Duplicate entry"), so a substring match is
// sufficient and avoids a hard dependency on driver error types.
func isMySQLErr(err error, number string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), number)
}

// translateErr maps raw driver errors onto the sentinel values
// above. Unrecognized errors pass through unchanged.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isMySQLErr(err, "1146"): // table doesn't exist
		return ErrSchemaMissing
	case isMySQLErr(err, "1062"): // duplicate entry
		return ErrEmailExists
	case isMySQLErr(err, "1452"): // cannot add or update a child row
		return ErrConstraint
	default:
		return err
	}
}
