package orchestrator

import (
	"retreat/internal/registration/birthdate"
	"retreat/internal/registration/classify"
	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
	"retreat/internal/registration/section"
	"retreat/internal/registration/steps"
	"retreat/pkg/domain"
)

// View is the view model handed to rendering collaborators after every
// mutation.
type View struct {
	RegistrationID domain.RegistrationID          `json:"registration_id"`
	Event          steps.EventConfig              `json:"event"`
	Epoch          classify.Epoch                 `json:"epoch"`
	Steps          []steps.Step                   `json:"steps"`
	Sections       map[fields.Section]SectionView `json:"sections"`
	BirthDate      BirthDateView                  `json:"birth_date"`
	Submitted      bool                           `json:"submitted"`
}

// SectionView is one section as rendered.
type SectionView struct {
	Mode section.Mode `json:"mode"`
	// Classification is nil until the section has been shown with data
	// outside entry mode.
	Classification *classify.Classification `json:"classification,omitempty"`
	Record         record.Record            `json:"record"`
	Fields         []FieldView              `json:"fields"`
}

// FieldView describes one currently relevant field.
type FieldView struct {
	Name     string      `json:"name"`
	Label    string      `json:"label"`
	Kind     fields.Kind `json:"kind"`
	Required bool        `json:"required"`
	Options  []string    `json:"options,omitempty"`
	Writable bool        `json:"writable"`
}

// BirthDateView is the picker state and its resolution.
type BirthDateView struct {
	Selection  birthdate.Selection `json:"selection"`
	Result     birthdate.Result    `json:"result"`
	MinimumAge int                 `json:"minimum_age"`
}
