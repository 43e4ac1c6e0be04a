package orchestrator

import (
	"time"

	"retreat/internal/registration/record"
	"retreat/pkg/domain"
)

// Payload is the immutable result of a successful submission, handed to the
// persistence/notification collaborator.
type Payload struct {
	RegistrationID domain.RegistrationID `json:"registration_id"`
	EventName      string                `json:"event_name,omitempty"`
	PersonalInfo   record.Record         `json:"personal_info"`
	// PaymentInfo is empty for events without payment.
	PaymentInfo record.Record `json:"payment_info"`
	TravelInfo  record.Record `json:"travel_info"`
	SubmittedAt time.Time     `json:"submitted_at"`
}
