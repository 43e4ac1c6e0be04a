package record

import (
	"encoding/json"
	"sort"
)

// Record maps field names to values. It is immutable: With returns a modified
// copy, so snapshots can share a Record.
type Record struct {
	values map[string]Value
}

// New builds a Record from the given values. The map is copied.
func New(values map[string]Value) Record {
	r := Record{values: make(map[string]Value, len(values))}
	for k, v := range values {
		r.values[k] = v
	}
	return r
}

// Get returns the value for field, or the unset Value.
func (r Record) Get(field string) Value {
	return r.values[field]
}

// With returns a copy of r with field set to v. Fields are never removed;
// clearing a field stores the unset Value.
func (r Record) With(field string, v Value) Record {
	next := Record{values: make(map[string]Value, len(r.values)+1)}
	for k, val := range r.values {
		next.values[k] = val
	}
	next.values[field] = v
	return next
}

// Merge returns a copy of r with every field from other applied on top.
func (r Record) Merge(other Record) Record {
	next := New(r.values)
	for k, v := range other.values {
		next.values[k] = v
	}
	return next
}

// Len returns the number of stored fields, including unset ones.
func (r Record) Len() int {
	return len(r.values)
}

// Names returns the stored field names in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.values))
	for k := range r.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the underlying values.
func (r Record) Map() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both records hold the same fields and values.
func (r Record) Equal(o Record) bool {
	if len(r.values) != len(o.values) {
		return false
	}
	for k, v := range r.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.values)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var values map[string]Value
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*r = New(values)
	return nil
}
