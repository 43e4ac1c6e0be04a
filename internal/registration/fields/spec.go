// Package fields declares the static field descriptors for each registration
// section and the conditional-relevance graph between them.
//
// FieldSpecs are plain data. A spec may depend on exactly one other field of
// the same section having a given value; dependency chains are at most one
// level deep and are validated when a Set is built, before any record is
// classified.
package fields

import (
	"fmt"

	"retreat/internal/registration/record"
)

// Kind is the input control type of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindSelect   Kind = "select"
	KindDate     Kind = "date"
	KindBoolean  Kind = "boolean"
	KindTextarea Kind = "textarea"
)

var validKinds = map[Kind]bool{
	KindText:     true,
	KindEmail:    true,
	KindSelect:   true,
	KindDate:     true,
	KindBoolean:  true,
	KindTextarea: true,
}

// IsValid reports whether k is a supported kind.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// Section names a logical group of fields edited together.
type Section string

const (
	SectionPersonal Section = "personal"
	SectionPayment  Section = "payment"
	SectionTravel   Section = "travel"
)

// ParseSection validates a section name from external input.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionPersonal, SectionPayment, SectionTravel:
		return Section(s), nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

func (s Section) String() string {
	return string(s)
}

// Dependency makes a field relevant only while Field holds RequiredValue.
type Dependency struct {
	Field         string
	RequiredValue record.Value
}

// FieldSpec describes one field of a section.
type FieldSpec struct {
	Name      string
	Label     string
	Kind      Kind
	Required  bool
	Options   []string
	DependsOn *Dependency
}

// IsConditional reports whether the field has a relevance condition.
func (f FieldSpec) IsConditional() bool {
	return f.DependsOn != nil
}

// HasOption reports whether v is one of the field's select options.
func (f FieldSpec) HasOption(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// When returns a Dependency on field holding v.
func When(field string, v record.Value) *Dependency {
	return &Dependency{Field: field, RequiredValue: v}
}
