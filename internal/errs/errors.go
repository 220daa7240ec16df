// Package errs carries the application error taxonomy.
package errs

import (
	"errors"
	"fmt"
)

// AppError is an application error with a stable code the UI can key
// notices off of.
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates an AppError.
func New(code, message string, details ...string) *AppError {
	err := &AppError{Code: code, Message: message}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// Error codes.
const (
	// ErrCodeStorage: a read or write against the local store failed
	// (locked file, quota, corrupted row). Surfaced to the user.
	ErrCodeStorage = "STORAGE_ERROR"
	// ErrCodeSnapshot: persisted timer/slot JSON failed to parse.
	// Treated as absence of saved state, never fatal.
	ErrCodeSnapshot = "SNAPSHOT_ERROR"
	// ErrCodeInvariant: a duplicate toggle row was detected for one
	// (date, category, subtype). Degrades to last-write-wins.
	ErrCodeInvariant = "INVARIANT_VIOLATION"
	ErrCodeConfig    = "CONFIG_ERROR"
)

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var app *AppError
	if errors.As(err, &app) {
		return app.Code == code
	}
	return false
}
