// Package record holds the registrant data model: tagged field values and the
// immutable record that maps field names to them.
//
// Domain purity: no I/O, no clock access.
package record

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind tags the payload carried by a Value.
type Kind uint8

const (
	KindUnset Kind = iota
	KindString
	KindBool
	KindNumber
	KindDate
)

// DateLayout is the wire format for date values.
const DateLayout = "2006-01-02"

// Value is a single field value. The zero Value is unset, which is distinct
// from an empty string or false.
type Value struct {
	kind Kind
	s    string
	b    bool
	n    float64
	t    time.Time
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Date returns a date Value truncated to the calendar day in UTC.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Unset returns the unset Value.
func Unset() Value { return Value{} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsUnset() bool   { return v.kind == KindUnset }
func (v Value) Str() string     { return v.s }
func (v Value) Bool() bool      { return v.b }
func (v Value) Num() float64    { return v.n }
func (v Value) Time() time.Time { return v.t }

// IsTrue reports whether v is the boolean true.
func (v Value) IsTrue() bool {
	return v.kind == KindBool && v.b
}

// IsFilled reports whether v counts as provided: set, and for strings
// non-blank after trimming.
func (v Value) IsFilled() bool {
	switch v.kind {
	case KindUnset:
		return false
	case KindString:
		return strings.TrimSpace(v.s) != ""
	default:
		return true
	}
}

// Equal reports kind and payload equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// Display renders v for review screens.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindDate:
		return v.t.Format(DateLayout)
	default:
		return ""
	}
}

// MarshalJSON encodes unset as null, dates as YYYY-MM-DD, and the remaining
// kinds as their natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindDate:
		return json.Marshal(v.t.Format(DateLayout))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, strings, booleans and numbers. Strings that
// parse as YYYY-MM-DD stay strings; date typing is applied by field coercion.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Unset()
	case string:
		*v = String(x)
	case bool:
		*v = Bool(x)
	case float64:
		*v = Number(x)
	default:
		*v = String(string(data))
	}
	return nil
}
