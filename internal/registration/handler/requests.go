package handler

import (
	"strings"

	"retreat/internal/registration/orchestrator"
	"retreat/internal/registration/service"
	"retreat/internal/registration/steps"
	dErrors "retreat/pkg/domain-errors"
)

// CreateRequest is the body of POST /registrations.
type CreateRequest struct {
	Event      EventRequest          `json:"event"`
	Registrant service.RawRegistrant `json:"registrant"`
}

// EventRequest describes the event being registered for.
type EventRequest struct {
	Name            string `json:"name"`
	RequiresPayment bool   `json:"requires_payment"`
}

// Validate implements httputil.Validatable.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Event.Name = strings.TrimSpace(r.Event.Name)
	if r.Event.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "event.name is required")
	}
	if len(r.Event.Name) > 200 {
		return dErrors.New(dErrors.CodeValidation, "event.name must be at most 200 characters")
	}
	return nil
}

// EventConfig returns the event settings for the orchestrator.
func (r *CreateRequest) EventConfig() steps.EventConfig {
	return steps.EventConfig{Name: r.Event.Name, RequiresPayment: r.Event.RequiresPayment}
}

// FieldChangeRequest is the body of POST .../sections/{section}/fields.
type FieldChangeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Validate implements httputil.Validatable.
func (r *FieldChangeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Field = strings.TrimSpace(r.Field)
	if r.Field == "" {
		return dErrors.New(dErrors.CodeValidation, "field is required")
	}
	if len(r.Value) > 4096 {
		return dErrors.New(dErrors.CodeValidation, "value must be at most 4096 characters")
	}
	return nil
}

// BirthDateRequest is the body of POST .../birth-date. A zero value clears
// the part.
type BirthDateRequest struct {
	Part  string `json:"part"`
	Value int    `json:"value"`

	parsedPart orchestrator.DatePart
}

// Validate implements httputil.Validatable.
func (r *BirthDateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	switch p := orchestrator.DatePart(strings.ToLower(strings.TrimSpace(r.Part))); p {
	case orchestrator.PartDay, orchestrator.PartMonth, orchestrator.PartYear:
		r.parsedPart = p
	default:
		return dErrors.New(dErrors.CodeValidation, "part must be one of day, month, year")
	}
	if r.Value < 0 {
		return dErrors.New(dErrors.CodeValidation, "value must not be negative")
	}
	return nil
}

// ParsedPart returns the validated date part.
func (r *BirthDateRequest) ParsedPart() orchestrator.DatePart {
	return r.parsedPart
}
