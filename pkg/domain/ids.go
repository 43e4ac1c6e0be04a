// Package domain holds identifier primitives shared across modules.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "retreat/pkg/domain-errors"
)

// RegistrationID identifies one registration session.
type RegistrationID uuid.UUID

// NewRegistrationID returns a fresh random RegistrationID.
func NewRegistrationID() RegistrationID {
	return RegistrationID(uuid.New())
}

// ParseRegistrationID constructs a RegistrationID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, malformed, or the
// nil UUID.
func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseUUID(s, "registration_id")
	if err != nil {
		return RegistrationID{}, err
	}
	return RegistrationID(u), nil
}

func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id RegistrationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText encodes the ID as its canonical UUID string.
func (id RegistrationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}
