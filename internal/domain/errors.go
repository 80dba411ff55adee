package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgAlreadyResolved = "result already recorded"
	ErrMsgAlreadyScored   = "scores already recorded"
	ErrMsgNotFound        = "not found"
	ErrMsgStoreFailure    = "store failure"
	ErrMsgNoChange        = "wager unchanged"

	ErrMsgRegionNotFound = "region not found"
	ErrMsgRegionClosed   = "region is closed for betting"
	ErrMsgAmountRange    = "amount out of range"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidInput covers bad regions, out-of-range amounts and malformed dates
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrAlreadyResolved is returned when a result exists for the region and date
	ErrAlreadyResolved = errors.New(ErrMsgAlreadyResolved)

	// ErrAlreadyScored is returned when rescoring a result that already has scores
	ErrAlreadyScored = errors.New(ErrMsgAlreadyScored)

	// ErrNotFound is returned when a required record is missing
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrStoreFailure wraps any rejection from the record store
	ErrStoreFailure = errors.New(ErrMsgStoreFailure)

	// ErrNoChange is returned when a proposed wager equals the existing one
	ErrNoChange = errors.New(ErrMsgNoChange)
)
