// Package classify splits a section's relevant fields into pre-filled and
// missing buckets, once per record epoch.
//
// The classification is a UX contract, not a cache: what was filled when the
// section was first shown stays "pre-filled" and what was missing stays
// "missing" for the whole epoch, whatever the user types afterwards. Only a
// new epoch (a different registrant) produces a new classification.
//
// Sections still in entry mode are not classified; their first save freezes
// the epoch's classification.
package classify

import (
	"encoding/json"
	"sort"

	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
)

// Epoch counts record loads. Each load of a different registrant starts a
// new epoch.
type Epoch uint64

// NameSet is a set of field names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) add(name string) {
	s[name] = struct{}{}
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s NameSet) clone() NameSet {
	c := make(NameSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

func (s NameSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// Classification is the pre-filled/missing split of a section's relevant
// fields.
//
// Invariants:
//   - PreFilled and Missing are disjoint
//   - their union is the set of fields relevant at snapshot time
type Classification struct {
	Epoch     Epoch   `json:"epoch"`
	PreFilled NameSet `json:"pre_filled"`
	Missing   NameSet `json:"missing"`
	// ConditionRegisteredAtSnapshot records whether any conditional field's
	// gate was satisfied when the snapshot was taken.
	ConditionRegisteredAtSnapshot bool `json:"condition_registered_at_snapshot"`
}

// Classify splits the relevant fields of set for rec. A field is pre-filled
// iff its value is set and, for strings, non-blank.
func Classify(rec record.Record, set fields.Set, epoch Epoch) Classification {
	c := Classification{
		Epoch:     epoch,
		PreFilled: NameSet{},
		Missing:   NameSet{},
	}
	for _, spec := range set.Relevant(rec) {
		if spec.IsConditional() {
			c.ConditionRegisteredAtSnapshot = true
		}
		if rec.Get(spec.Name).IsFilled() {
			c.PreFilled.add(spec.Name)
		} else {
			c.Missing.add(spec.Name)
		}
	}
	return c
}

// Clone returns a deep copy.
func (c Classification) Clone() Classification {
	c.PreFilled = c.PreFilled.clone()
	c.Missing = c.Missing.clone()
	return c
}
