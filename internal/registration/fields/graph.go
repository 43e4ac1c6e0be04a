package fields

import (
	"errors"
	"fmt"

	"retreat/internal/registration/record"
)

// ErrConfiguration is matched by every ConfigError.
var ErrConfiguration = errors.New("invalid field configuration")

// ConfigError reports a malformed field declaration. It is a startup error
// and must never reach an end user.
type ConfigError struct {
	Section Section
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("field configuration: section %s field %q: %s", e.Section, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// IsRelevant reports whether spec is currently shown for rec: always when it
// has no dependency, otherwise only while the gating field equals the
// required value.
func IsRelevant(spec FieldSpec, rec record.Record) bool {
	if spec.DependsOn == nil {
		return true
	}
	return rec.Get(spec.DependsOn.Field).Equal(spec.DependsOn.RequiredValue)
}

// Validate checks a section's declarations:
//   - names are non-empty and unique, kinds are known, selects have options
//   - dependencies reference a declared field other than the field itself
//   - the gating field has no dependency of its own (depth 1, so no cycles)
//   - the required value is set and matches the gating field's kind
func Validate(section Section, specs []FieldSpec) error {
	byName := make(map[string]FieldSpec, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return &ConfigError{Section: section, Field: s.Name, Reason: "name is empty"}
		}
		if _, dup := byName[s.Name]; dup {
			return &ConfigError{Section: section, Field: s.Name, Reason: "duplicate field name"}
		}
		if !s.Kind.IsValid() {
			return &ConfigError{Section: section, Field: s.Name, Reason: fmt.Sprintf("unknown kind %q", s.Kind)}
		}
		if s.Kind == KindSelect && len(s.Options) == 0 {
			return &ConfigError{Section: section, Field: s.Name, Reason: "select field has no options"}
		}
		byName[s.Name] = s
	}

	for _, s := range specs {
		dep := s.DependsOn
		if dep == nil {
			continue
		}
		if dep.Field == s.Name {
			return &ConfigError{Section: section, Field: s.Name, Reason: "field depends on itself"}
		}
		gate, ok := byName[dep.Field]
		if !ok {
			return &ConfigError{Section: section, Field: s.Name, Reason: fmt.Sprintf("depends on undefined field %q", dep.Field)}
		}
		if gate.DependsOn != nil {
			return &ConfigError{Section: section, Field: s.Name, Reason: fmt.Sprintf("gating field %q is itself conditional", dep.Field)}
		}
		if dep.RequiredValue.IsUnset() {
			return &ConfigError{Section: section, Field: s.Name, Reason: "required value is unset"}
		}
		if !gateAccepts(gate, dep.RequiredValue) {
			return &ConfigError{Section: section, Field: s.Name, Reason: fmt.Sprintf("required value does not match kind of %q", dep.Field)}
		}
	}
	return nil
}

func gateAccepts(gate FieldSpec, v record.Value) bool {
	switch gate.Kind {
	case KindBoolean:
		return v.Kind() == record.KindBool
	case KindDate:
		return v.Kind() == record.KindDate
	case KindSelect:
		return v.Kind() == record.KindString && gate.HasOption(v.Str())
	default:
		return v.Kind() == record.KindString
	}
}
