// Package common defines shared sentinel errors and small helpers used across
// the quizzer client packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Lookup errors; a 404 from the API matches this.
	ErrorNotFound = errors.New("not found")

	// Generic server-side failure; a 500 from the API matches this.
	ErrorInternal = errors.New("internal error")
)
