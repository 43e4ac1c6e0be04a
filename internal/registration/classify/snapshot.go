package classify

import (
	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
)

// Snapshot is the frozen classification of one section for one epoch, plus
// the conditional fields that surfaced after it was frozen.
type Snapshot struct {
	frozen        Classification
	lateMissing   NameSet
	latePreFilled NameSet
}

// Frozen returns a copy of the classification taken at snapshot time.
func (s *Snapshot) Frozen() Classification {
	return s.frozen.Clone()
}

// Observe records fields that are relevant in rec but were not part of the
// frozen classification: empty ones join Missing, filled ones join
// PreFilled. Once surfaced, a field keeps its bucket for the rest of the
// epoch.
func (s *Snapshot) Observe(set fields.Set, rec record.Record) {
	for _, spec := range set.Relevant(rec) {
		if s.classified(spec.Name) {
			continue
		}
		if rec.Get(spec.Name).IsFilled() {
			s.latePreFilled.add(spec.Name)
		} else {
			s.lateMissing.add(spec.Name)
		}
	}
}

func (s *Snapshot) classified(name string) bool {
	return s.frozen.PreFilled.Has(name) || s.frozen.Missing.Has(name) ||
		s.lateMissing.Has(name) || s.latePreFilled.Has(name)
}

// Effective returns the classification to render for rec: the frozen
// buckets plus surfaced fields, restricted to fields relevant in rec. Hidden
// fields keep their bucket and reappear in it when their gate is set again.
// Call Observe first so newly relevant fields are bucketed.
func (s *Snapshot) Effective(set fields.Set, rec record.Record) Classification {
	out := Classification{
		Epoch:                         s.frozen.Epoch,
		PreFilled:                     NameSet{},
		Missing:                       NameSet{},
		ConditionRegisteredAtSnapshot: s.frozen.ConditionRegisteredAtSnapshot,
	}
	for _, spec := range set.Relevant(rec) {
		switch {
		case s.frozen.PreFilled.Has(spec.Name), s.latePreFilled.Has(spec.Name):
			out.PreFilled.add(spec.Name)
		case s.frozen.Missing.Has(spec.Name), s.lateMissing.Has(spec.Name):
			out.Missing.add(spec.Name)
		}
	}
	return out
}

// Snapshots keeps one frozen Snapshot per epoch.
type Snapshots struct {
	byEpoch map[Epoch]*Snapshot
}

// NewSnapshots returns an empty store.
func NewSnapshots() *Snapshots {
	return &Snapshots{byEpoch: make(map[Epoch]*Snapshot)}
}

// Get returns the snapshot for epoch, if one was frozen.
func (s *Snapshots) Get(epoch Epoch) (*Snapshot, bool) {
	snap, ok := s.byEpoch[epoch]
	return snap, ok
}

// Freeze classifies rec for epoch unless that epoch is already frozen, in
// which case the existing snapshot is returned untouched.
func (s *Snapshots) Freeze(epoch Epoch, set fields.Set, rec record.Record) *Snapshot {
	if snap, ok := s.byEpoch[epoch]; ok {
		return snap
	}
	snap := &Snapshot{
		frozen:        Classify(rec, set, epoch),
		lateMissing:   NameSet{},
		latePreFilled: NameSet{},
	}
	s.byEpoch[epoch] = snap
	return snap
}

// Prune drops snapshots of every epoch other than keep.
func (s *Snapshots) Prune(keep Epoch) {
	for e := range s.byEpoch {
		if e != keep {
			delete(s.byEpoch, e)
		}
	}
}

// Len returns the number of stored snapshots.
func (s *Snapshots) Len() int {
	return len(s.byEpoch)
}
