package handler

import (
	"time"

	"retreat/internal/registration/birthdate"
	"retreat/internal/registration/orchestrator"
	"retreat/internal/registration/record"
	"retreat/internal/registration/steps"
)

// SubmissionResponse is the body returned by a successful submit.
type SubmissionResponse struct {
	RegistrationID string        `json:"registration_id"`
	EventName      string        `json:"event_name,omitempty"`
	PersonalInfo   record.Record `json:"personal_info"`
	PaymentInfo    record.Record `json:"payment_info"`
	TravelInfo     record.Record `json:"travel_info"`
	SubmittedAt    string        `json:"submitted_at"`
}

// FromPayload converts a submission payload to its response.
func FromPayload(p *orchestrator.Payload) *SubmissionResponse {
	return &SubmissionResponse{
		RegistrationID: p.RegistrationID.String(),
		EventName:      p.EventName,
		PersonalInfo:   p.PersonalInfo,
		PaymentInfo:    p.PaymentInfo,
		TravelInfo:     p.TravelInfo,
		SubmittedAt:    p.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

// IncompleteResponse is the 422 body for a rejected submission. Step tells
// the client where to send the user back to.
type IncompleteResponse struct {
	Error       string   `json:"error"`
	Description string   `json:"error_description"`
	Step        steps.ID `json:"step"`
	Missing     []string `json:"missing,omitempty"`
}

// BirthDateOptionsResponse lists the picker choices.
type BirthDateOptionsResponse struct {
	Months   []birthdate.Month `json:"months"`
	Years    []int             `json:"years"`
	Oldest   int               `json:"oldest"`
	Youngest int               `json:"youngest"`
}

func fromOptions(months []birthdate.Month, years birthdate.YearRange) *BirthDateOptionsResponse {
	return &BirthDateOptionsResponse{
		Months:   months,
		Years:    years.Years(),
		Oldest:   years.Oldest,
		Youngest: years.Youngest,
	}
}
