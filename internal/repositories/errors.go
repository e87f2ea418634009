package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Handlers map
// them to 404 and 409 envelopes with errors.Is.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("duplicate business key")
)
