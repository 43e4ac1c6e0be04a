package fields

import (
	"retreat/internal/registration/record"
)

// Set is the validated, ordered list of field specs for one section.
type Set struct {
	section Section
	specs   []FieldSpec
	index   map[string]int
}

// NewSet validates specs and builds a Set.
func NewSet(section Section, specs ...FieldSpec) (Set, error) {
	if err := Validate(section, specs); err != nil {
		return Set{}, err
	}
	s := Set{
		section: section,
		specs:   append([]FieldSpec(nil), specs...),
		index:   make(map[string]int, len(specs)),
	}
	for i, spec := range s.specs {
		s.index[spec.Name] = i
	}
	return s, nil
}

// MustSet builds a Set, panicking on configuration errors.
// Use only for static declarations.
func MustSet(section Section, specs ...FieldSpec) Set {
	s, err := NewSet(section, specs...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Set) Section() Section { return s.section }

// Specs returns the specs in declaration order.
func (s Set) Specs() []FieldSpec {
	return append([]FieldSpec(nil), s.specs...)
}

// Lookup returns the spec named name.
func (s Set) Lookup(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.specs[i], true
}

// Relevant returns the specs relevant for rec, in declaration order.
func (s Set) Relevant(rec record.Record) []FieldSpec {
	out := make([]FieldSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		if IsRelevant(spec, rec) {
			out = append(out, spec)
		}
	}
	return out
}

// HasRelevantData reports whether any relevant field of rec is filled.
func (s Set) HasRelevantData(rec record.Record) bool {
	for _, spec := range s.Relevant(rec) {
		if rec.Get(spec.Name).IsFilled() {
			return true
		}
	}
	return false
}

// MissingRequired returns the names of relevant required fields that are not
// filled in rec.
func (s Set) MissingRequired(rec record.Record) []string {
	var missing []string
	for _, spec := range s.Relevant(rec) {
		if spec.Required && !rec.Get(spec.Name).IsFilled() {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}

// RequiredFilled reports whether every relevant required field is filled.
func (s Set) RequiredFilled(rec record.Record) bool {
	return len(s.MissingRequired(rec)) == 0
}

// Project returns a copy of rec restricted to fields that are declared in the
// set and relevant under rec. Values of hidden conditional fields stay in rec
// but are not projected.
func (s Set) Project(rec record.Record) record.Record {
	values := make(map[string]record.Value, len(s.specs))
	for _, spec := range s.specs {
		if !IsRelevant(spec, rec) {
			continue
		}
		if v := rec.Get(spec.Name); !v.IsUnset() {
			values[spec.Name] = v
		}
	}
	return record.New(values)
}
