package fields

import (
	"fmt"
	"strings"
	"time"

	"retreat/internal/registration/record"
	dErrors "retreat/pkg/domain-errors"
	"retreat/pkg/email"
)

// Coerce converts a raw form value into a typed Value for spec.
//
// Booleans accept true/false, on/off, yes/no and 1/0 (an empty string is
// false, as sent by an unchecked box). Dates use YYYY-MM-DD; empty clears
// the field. Select values must be one of the declared options. Emails are
// normalized.
func Coerce(spec FieldSpec, raw string) (record.Value, error) {
	switch spec.Kind {
	case KindBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "on", "yes", "1":
			return record.Bool(true), nil
		case "false", "off", "no", "0", "":
			return record.Bool(false), nil
		}
		return record.Value{}, invalid(spec, "expected a boolean")
	case KindDate:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return record.Unset(), nil
		}
		t, err := time.Parse(record.DateLayout, raw)
		if err != nil {
			return record.Value{}, invalid(spec, "expected a date as YYYY-MM-DD")
		}
		return record.Date(t), nil
	case KindSelect:
		if raw == "" {
			return record.String(""), nil
		}
		if !spec.HasOption(raw) {
			return record.Value{}, invalid(spec, fmt.Sprintf("%q is not an allowed option", raw))
		}
		return record.String(raw), nil
	case KindEmail:
		return record.String(email.Normalize(raw)), nil
	default:
		return record.String(raw), nil
	}
}

// Check verifies that every field stored in rec is declared in the set and
// holds a value of a kind the field accepts.
func (s Set) Check(rec record.Record) error {
	for _, name := range rec.Names() {
		spec, ok := s.Lookup(name)
		if !ok {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown %s field %q", s.section, name))
		}
		if !accepts(spec, rec.Get(name)) {
			return invalid(spec, "value has the wrong type")
		}
	}
	return nil
}

func accepts(spec FieldSpec, v record.Value) bool {
	if v.IsUnset() {
		return true
	}
	switch spec.Kind {
	case KindBoolean:
		return v.Kind() == record.KindBool
	case KindDate:
		return v.Kind() == record.KindDate
	case KindSelect:
		// Loaded records may carry numeric selections such as tdsPercent.
		return v.Kind() == record.KindString || v.Kind() == record.KindNumber
	default:
		return v.Kind() == record.KindString
	}
}

func invalid(spec FieldSpec, reason string) error {
	return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s: %s", spec.Name, reason))
}

// CoerceAll builds a Record from raw form values, coercing each by its spec.
func (s Set) CoerceAll(raw map[string]string) (record.Record, error) {
	values := make(map[string]record.Value, len(raw))
	for name, r := range raw {
		spec, ok := s.Lookup(name)
		if !ok {
			return record.Record{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown %s field %q", s.section, name))
		}
		v, err := Coerce(spec, r)
		if err != nil {
			return record.Record{}, err
		}
		values[name] = v
	}
	return record.New(values), nil
}
