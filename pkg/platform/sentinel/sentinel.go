package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and state machines return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: registration does not exist in the store
//   - ErrConflict: registration ID already taken
//   - ErrAlreadyUsed: one-shot operation (submission) already consumed
//   - ErrInvalidState: entity in wrong state for requested operation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
)
