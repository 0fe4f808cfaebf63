package service

import "fmt"

// ValidationError reports a user-correctable input problem. Handlers map it
// to HTTP 400 and commit nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CloneError reports a failed overview→detail promotion. The surrounding
// transaction is rolled back before it is returned, so no partial clone
// ever persists.
type CloneError struct {
	StyleID string
	Err     error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("promote style %s: %v", e.StyleID, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }
