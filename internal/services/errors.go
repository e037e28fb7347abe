package services

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Failures the API boundary translates into client-facing responses. Anything
// else bubbling out of a service is an infrastructure error and becomes a
// generic 500.
var (
	// ErrDuplicateEmail is returned when signing up with an email that is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateFavorite is returned when a user favorites the same movie
	// a second time.
	ErrDuplicateFavorite = errors.New("movie already in favorites")

	// ErrInvalidCredentials is returned for a failed login. It deliberately
	// does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// isUniqueViolation reports whether err is the SQLite unique-constraint error.
// Duplicate detection relies on this rather than a check-then-insert so two
// concurrent requests cannot both succeed.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
