package reminder

import "errors"

var (
	// ErrTooShort and ErrTooLong reject text outside the configured
	// length bounds (after trimming).
	ErrTooShort = errors.New("reminder text too short")
	ErrTooLong  = errors.New("reminder text too long")

	// ErrDuplicate rejects adding text that already exists verbatim in
	// the origin's list.
	ErrDuplicate = errors.New("reminder already exists")

	// ErrNotFound means no reminder with the given ID (or text) exists
	// for the origin.
	ErrNotFound = errors.New("reminder not found")

	// ErrNoOrigin short-circuits operations called without a usable
	// origin key.
	ErrNoOrigin = errors.New("no origin to operate on")
)

// IsValidation reports whether err is a rejection of the submitted text
// rather than a store or lookup failure. The UI shows these inline next
// to the input instead of failing the session.
func IsValidation(err error) bool {
	return errors.Is(err, ErrTooShort) ||
		errors.Is(err, ErrTooLong) ||
		errors.Is(err, ErrDuplicate)
}
