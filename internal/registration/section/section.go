// Package section implements the per-section edit state machine.
//
//	entry ──save──▶ viewing ──begin──▶ editing ──save/cancel──▶ viewing
//	  └────────────begin─────────────────▲
//
// A section starts in viewing mode when its record already has relevant data
// and in entry mode (a plain data-entry form) otherwise. Edits made while
// editing go to a draft; Save commits the draft and Cancel restores the
// record captured when editing began.
package section

import (
	"fmt"

	"retreat/internal/registration/classify"
	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
	dErrors "retreat/pkg/domain-errors"
	"retreat/pkg/platform/sentinel"
)

// Mode is the edit mode of a section.
type Mode string

const (
	ModeEntry   Mode = "entry"
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

var (
	// ErrNotEditing is returned by Cancel outside editing mode and by Save in viewing mode.
	ErrNotEditing = dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeConflict, "section is not being edited")
	// ErrFieldLocked is returned when writing a pre-filled field without entering edit mode.
	ErrFieldLocked = dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeConflict, "field is read-only until the section is edited")
)

// State is one section's mode and data.
type State struct {
	set       fields.Set
	mode      Mode
	committed record.Record
	draft     record.Record
	snapshot  record.Record
}

// New returns the state for set over rec.
func New(set fields.Set, rec record.Record) *State {
	s := &State{set: set}
	s.Reset(rec)
	return s
}

// Reset replaces the committed record, dropping any edit in progress, and
// picks the initial mode again.
func (s *State) Reset(rec record.Record) {
	s.committed = rec
	s.draft = record.Record{}
	s.snapshot = record.Record{}
	if s.set.HasRelevantData(rec) {
		s.mode = ModeViewing
	} else {
		s.mode = ModeEntry
	}
}

func (s *State) Name() fields.Section { return s.set.Section() }
func (s *State) Set() fields.Set      { return s.set }
func (s *State) Mode() Mode           { return s.mode }
func (s *State) IsEditing() bool      { return s.mode == ModeEditing }

// Committed returns the record as last saved.
func (s *State) Committed() record.Record {
	return s.committed
}

// Displayed returns what the section shows: the draft while editing,
// otherwise the committed record.
func (s *State) Displayed() record.Record {
	if s.mode == ModeEditing {
		return s.draft
	}
	return s.committed
}

// BeginEdit enters editing mode, capturing the committed record so Cancel can
// restore it exactly. Calling it while already editing is a no-op.
func (s *State) BeginEdit() {
	if s.mode == ModeEditing {
		return
	}
	s.snapshot = s.committed
	s.draft = s.committed
	s.mode = ModeEditing
}

// Save commits the draft and returns to viewing. From entry mode it only
// switches to viewing, since entry writes are already committed.
func (s *State) Save() (record.Record, error) {
	switch s.mode {
	case ModeEditing:
		s.committed = s.draft
	case ModeEntry:
	default:
		return record.Record{}, ErrNotEditing
	}
	s.draft = record.Record{}
	s.snapshot = record.Record{}
	s.mode = ModeViewing
	return s.committed, nil
}

// Cancel discards the draft and restores the pre-edit record.
func (s *State) Cancel() error {
	if s.mode != ModeEditing {
		return ErrNotEditing
	}
	s.committed = s.snapshot
	s.draft = record.Record{}
	s.snapshot = record.Record{}
	s.mode = ModeViewing
	return nil
}

// Apply writes v to field.
//
// Editing writes the draft and entry writes the committed record directly.
// Viewing only accepts fields in missing (the missing-fields editor writes
// straight to the committed record); pre-filled fields need BeginEdit.
// Unknown fields and fields hidden by their gate are rejected.
func (s *State) Apply(field string, v record.Value, missing classify.NameSet) error {
	spec, ok := s.set.Lookup(field)
	if !ok {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown %s field %q", s.Name(), field))
	}
	if !fields.IsRelevant(spec, s.Displayed()) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s field %q is not currently shown", s.Name(), field))
	}

	switch s.mode {
	case ModeEditing:
		s.draft = s.draft.With(field, v)
	case ModeEntry:
		s.committed = s.committed.With(field, v)
	case ModeViewing:
		if !missing.Has(field) {
			return ErrFieldLocked
		}
		s.committed = s.committed.With(field, v)
	}
	return nil
}

// Writable reports whether Apply would accept field in the current mode,
// without checking the value.
func (s *State) Writable(field string, missing classify.NameSet) bool {
	spec, ok := s.set.Lookup(field)
	if !ok || !fields.IsRelevant(spec, s.Displayed()) {
		return false
	}
	return s.mode != ModeViewing || missing.Has(field)
}
