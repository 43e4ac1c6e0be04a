// Package steps derives the registration stepper from section state.
//
// Steps are never stored: completion and the current step are recomputed
// from the committed section records, the edit modes and the submission flag
// on every call.
package steps

import (
	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
)

// ID identifies a step.
type ID string

const (
	IDPersonal ID = "personal"
	IDPayment  ID = "payment"
	IDTravel   ID = "travel"
	IDComplete ID = "complete"
)

var titles = map[ID]string{
	IDPersonal: "Personal Information",
	IDPayment:  "Payment",
	IDTravel:   "Travel",
	IDComplete: "Complete",
}

// Title returns the display title of id.
func (id ID) Title() string {
	return titles[id]
}

// Section returns the section backing the step; Complete has none.
func (id ID) Section() (fields.Section, bool) {
	switch id {
	case IDPersonal:
		return fields.SectionPersonal, true
	case IDPayment:
		return fields.SectionPayment, true
	case IDTravel:
		return fields.SectionTravel, true
	}
	return "", false
}

// ForSection returns the step backed by section.
func ForSection(section fields.Section) ID {
	return ID(section)
}

// EventConfig holds the per-event settings that shape the flow.
type EventConfig struct {
	Name            string `json:"name,omitempty"`
	RequiresPayment bool   `json:"requires_payment"`
}

// Step is one entry of the stepper.
type Step struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	IsCompleted bool   `json:"is_completed"`
	IsCurrent   bool   `json:"is_current"`
	// MissingRequired lists required fields that block completion.
	MissingRequired []string `json:"missing_required,omitempty"`
}

// SectionView is the read side of a section the gate needs.
type SectionView interface {
	Name() fields.Section
	Set() fields.Set
	Committed() record.Record
	IsEditing() bool
}

// Input collects everything Compute reads.
type Input struct {
	Event     EventConfig
	Sections  []SectionView
	Submitted bool
}

// Order returns the step IDs for event in flow order. Events without payment
// have no Payment step at all.
func Order(event EventConfig) []ID {
	if event.RequiresPayment {
		return []ID{IDPersonal, IDPayment, IDTravel, IDComplete}
	}
	return []ID{IDPersonal, IDTravel, IDComplete}
}

// Compute derives the ordered steps.
//
// A step is current when its section is being edited (and then no other step
// is), otherwise the first incomplete step is current. With every step
// complete, none is current.
func Compute(in Input) []Step {
	bySection := make(map[fields.Section]SectionView, len(in.Sections))
	for _, sv := range in.Sections {
		bySection[sv.Name()] = sv
	}

	order := Order(in.Event)
	out := make([]Step, 0, len(order))
	editing := -1
	for i, id := range order {
		st := Step{ID: id, Title: id.Title(), Position: i + 1}
		if id == IDComplete {
			st.IsCompleted = in.Submitted
		} else if sec, ok := id.Section(); ok {
			if sv, ok := bySection[sec]; ok {
				st.MissingRequired = missing(id, sv)
				st.IsCompleted = len(st.MissingRequired) == 0
				if sv.IsEditing() && editing < 0 {
					editing = i
				}
			}
		}
		out = append(out, st)
	}

	if editing >= 0 {
		out[editing].IsCurrent = true
		return out
	}
	for i := range out {
		if !out[i].IsCompleted {
			out[i].IsCurrent = true
			break
		}
	}
	return out
}

// missing lists what blocks completion of a section step. Personal also
// needs the terms accepted, not merely answered.
func missing(id ID, sv SectionView) []string {
	rec := sv.Committed()
	names := sv.Set().MissingRequired(rec)
	if id == IDPersonal && !rec.Get(fields.FieldTermsAccepted).IsTrue() && !contains(names, fields.FieldTermsAccepted) {
		names = append(names, fields.FieldTermsAccepted)
	}
	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Find returns the step with id.
func Find(steps []Step, id ID) (Step, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// Current returns the current step, if any.
func Current(steps []Step) (Step, bool) {
	for _, s := range steps {
		if s.IsCurrent {
			return s, true
		}
	}
	return Step{}, false
}

// FirstIncomplete returns the first step among ids, in flow order, that is
// present and not completed.
func FirstIncomplete(steps []Step, ids ...ID) (Step, bool) {
	for _, s := range steps {
		if !s.IsCompleted && contains(idsToStrings(ids), string(s.ID)) {
			return s, true
		}
	}
	return Step{}, false
}

func idsToStrings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
