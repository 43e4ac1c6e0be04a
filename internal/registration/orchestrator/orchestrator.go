// Package orchestrator composes the birth-date resolver, field classifier,
// section edit states and step gate into the single source of truth for one
// registration.
//
// An Orchestrator is single-writer: every method runs to completion and
// recomputes derived state before returning. It is not safe for concurrent
// use; callers serialize access (see the registration store).
package orchestrator

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"retreat/internal/registration/birthdate"
	"retreat/internal/registration/classify"
	"retreat/internal/registration/fields"
	"retreat/internal/registration/record"
	"retreat/internal/registration/section"
	"retreat/internal/registration/steps"
	"retreat/pkg/domain"
	dErrors "retreat/pkg/domain-errors"
)

// Initial is the registrant data an orchestrator starts from.
type Initial struct {
	Personal record.Record
	Payment  record.Record
	Travel   record.Record
}

func (in Initial) forSection(sec fields.Section) record.Record {
	switch sec {
	case fields.SectionPersonal:
		return in.Personal
	case fields.SectionPayment:
		return in.Payment
	default:
		return in.Travel
	}
}

// DatePart names one part of the birth-date picker.
type DatePart string

const (
	PartDay   DatePart = "day"
	PartMonth DatePart = "month"
	PartYear  DatePart = "year"
)

// Orchestrator owns the registrant records and section states of one
// registration.
type Orchestrator struct {
	id       domain.RegistrationID
	event    steps.EventConfig
	catalog  fields.Catalog
	resolver birthdate.Resolver
	clock    func() time.Time
	logger   *slog.Logger
	strict   bool

	createdAt time.Time
	epoch     classify.Epoch
	sections  map[fields.Section]*section.State
	snapshots map[fields.Section]*classify.Snapshots
	// editing is the section the orchestrator put into editing mode, if any.
	editing fields.Section
	birth   birthdate.Selection
	payload *Payload
}

type Option func(*Orchestrator)

// WithID sets the registration ID. A random ID is used otherwise.
func WithID(id domain.RegistrationID) Option {
	return func(o *Orchestrator) {
		o.id = id
	}
}

// WithCatalog replaces the built-in field sets.
func WithCatalog(c fields.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = c
	}
}

// WithClock sets the source of "today" for age checks and submission time.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithMinimumAge sets the eligibility threshold.
func WithMinimumAge(age int) Option {
	return func(o *Orchestrator) {
		o.resolver = birthdate.NewResolver(age)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictInvariants makes invariant violations panic instead of being
// repaired. Meant for development and tests.
func WithStrictInvariants(strict bool) Option {
	return func(o *Orchestrator) {
		o.strict = strict
	}
}

// New validates the field configuration, checks the initial records against
// it and starts the first epoch.
//
// Errors: a *fields.ConfigError for malformed field declarations, or
// CodeValidation when an initial record holds undeclared or mistyped fields.
func New(event steps.EventConfig, initial Initial, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		id:        domain.NewRegistrationID(),
		event:     event,
		catalog:   fields.DefaultCatalog(),
		resolver:  birthdate.NewResolver(birthdate.DefaultMinimumAge),
		clock:     time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		sections:  make(map[fields.Section]*section.State, 3),
		snapshots: make(map[fields.Section]*classify.Snapshots, 3),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.createdAt = o.clock()

	for _, sec := range fields.Sections() {
		set, ok := o.catalog.Set(sec)
		if !ok {
			return nil, &fields.ConfigError{Section: sec, Reason: "section has no field set"}
		}
		if err := fields.Validate(sec, set.Specs()); err != nil {
			return nil, err
		}
		o.sections[sec] = section.New(set, record.New(nil))
		o.snapshots[sec] = classify.NewSnapshots()
	}

	if err := o.load(initial); err != nil {
		return nil, err
	}
	return o, nil
}

// ID returns the registration ID.
func (o *Orchestrator) ID() domain.RegistrationID { return o.id }

// Event returns the event configuration.
func (o *Orchestrator) Event() steps.EventConfig { return o.event }

// CreatedAt returns when the orchestrator was constructed.
func (o *Orchestrator) CreatedAt() time.Time { return o.createdAt }

// Epoch returns the current record epoch.
func (o *Orchestrator) Epoch() classify.Epoch { return o.epoch }

// Editing returns the section currently being edited.
func (o *Orchestrator) Editing() (fields.Section, bool) {
	return o.editing, o.editing != ""
}

// Submitted reports whether Submit has succeeded.
func (o *Orchestrator) Submitted() bool { return o.payload != nil }

// SetClock replaces the time source, e.g. with a request-scoped clock.
func (o *Orchestrator) SetClock(clock func() time.Time) {
	if clock != nil {
		o.clock = clock
	}
}

// Load replaces all registrant data with a different registrant's and starts
// a new epoch, so every section is classified afresh.
func (o *Orchestrator) Load(initial Initial) error {
	if o.payload != nil {
		return ErrAlreadySubmitted
	}
	return o.load(initial)
}

func (o *Orchestrator) load(initial Initial) error {
	for _, sec := range fields.Sections() {
		rec := initial.forSection(sec)
		if err := o.sections[sec].Set().Check(rec); err != nil {
			return err
		}
	}

	personal := initial.Personal
	dob, birth := o.screenBirthDate(personal.Get(fields.FieldDateOfBirth))
	if !personal.Get(fields.FieldDateOfBirth).IsUnset() {
		personal = personal.With(fields.FieldDateOfBirth, dob)
	}
	initial.Personal = personal

	o.epoch++
	for _, sec := range fields.Sections() {
		o.sections[sec].Reset(initial.forSection(sec))
		o.snapshots[sec].Prune(o.epoch)
	}
	o.editing = ""
	o.birth = birth
	o.render()

	o.logger.Debug("registration epoch started",
		"registration_id", o.id.String(),
		"epoch", uint64(o.epoch),
	)
	return nil
}

// ApplyFieldChange coerces raw and writes it to field of sec.
func (o *Orchestrator) ApplyFieldChange(sec fields.Section, field, raw string) error {
	st, err := o.mutable(sec)
	if err != nil {
		return err
	}
	spec, ok := st.Set().Lookup(field)
	if !ok {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown %s field %q", sec, field))
	}
	v, err := fields.Coerce(spec, raw)
	if err != nil {
		return err
	}
	isBirthDate := sec == fields.SectionPersonal && field == fields.FieldDateOfBirth
	var birth birthdate.Selection
	if isBirthDate {
		v, birth = o.screenBirthDate(v)
	}
	if err := st.Apply(field, v, o.missing(sec)); err != nil {
		return err
	}
	if isBirthDate {
		o.birth = birth
	}
	o.render()
	return nil
}

// screenBirthDate runs a typed date of birth through the resolver. The
// returned value is unset unless the date is eligible; the selection always
// mirrors what was typed so the picker can show why it was refused.
func (o *Orchestrator) screenBirthDate(v record.Value) (record.Value, birthdate.Selection) {
	if v.Kind() != record.KindDate {
		return record.Unset(), birthdate.Selection{}
	}
	sel := birthdate.FromDate(v.Time())
	if res := o.resolver.Resolve(sel, o.clock()); !res.Eligible {
		o.logger.Info("ineligible date of birth withheld",
			"registration_id", o.id.String(),
			"status", string(res.Status),
		)
		return record.Unset(), sel
	}
	return v, sel
}

// SelectBirthDate updates one part of the birth-date picker. The personal
// record's date of birth is set only once the selection resolves to an
// eligible date; incomplete, impossible and underage selections clear it.
func (o *Orchestrator) SelectBirthDate(part DatePart, value int) error {
	st, err := o.mutable(fields.SectionPersonal)
	if err != nil {
		return err
	}
	missing := o.missing(fields.SectionPersonal)
	if !st.Writable(fields.FieldDateOfBirth, missing) {
		return section.ErrFieldLocked
	}

	next := o.birth
	switch part {
	case PartDay:
		next = next.WithDay(value)
	case PartMonth:
		next = next.WithMonth(value)
	case PartYear:
		next = next.WithYear(value)
	default:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown date part %q", part))
	}

	res := o.resolver.Resolve(next, o.clock())
	v := record.Unset()
	if res.Eligible {
		v = record.Date(*res.Date)
	}
	if err := st.Apply(fields.FieldDateOfBirth, v, missing); err != nil {
		return err
	}
	o.birth = next
	o.render()
	return nil
}

// BeginEdit puts sec into editing mode. Any other section being edited is
// cancelled first, restoring its pre-edit record.
func (o *Orchestrator) BeginEdit(sec fields.Section) error {
	st, err := o.mutable(sec)
	if err != nil {
		return err
	}
	if st.IsEditing() {
		return nil
	}

	if o.editing != "" && o.editing != sec {
		prev := o.editing
		if err := o.cancel(prev); err != nil {
			return err
		}
		o.logger.Info("section edit force-cancelled",
			"registration_id", o.id.String(),
			"cancelled_section", prev.String(),
			"section", sec.String(),
		)
	}
	o.enforceSingleEditor(sec)

	st.BeginEdit()
	o.editing = sec
	o.render()
	return nil
}

// SaveSection commits sec's edits and returns it to viewing. The epoch's
// classification is not recomputed.
func (o *Orchestrator) SaveSection(sec fields.Section) error {
	st, err := o.mutable(sec)
	if err != nil {
		return err
	}
	if _, err := st.Save(); err != nil {
		return err
	}
	if o.editing == sec {
		o.editing = ""
	}
	o.render()
	return nil
}

// CancelEdit discards sec's edits and restores its pre-edit record.
func (o *Orchestrator) CancelEdit(sec fields.Section) error {
	if _, err := o.mutable(sec); err != nil {
		return err
	}
	if err := o.cancel(sec); err != nil {
		return err
	}
	o.render()
	return nil
}

func (o *Orchestrator) cancel(sec fields.Section) error {
	if err := o.sections[sec].Cancel(); err != nil {
		return err
	}
	if o.editing == sec {
		o.editing = ""
	}
	if sec == fields.SectionPersonal {
		o.syncBirthSelection()
	}
	return nil
}

// enforceSingleEditor checks that no section other than except is editing.
// A violation means a section was put into editing behind the
// orchestrator's back: strict mode panics, otherwise the stray edits are
// cancelled.
func (o *Orchestrator) enforceSingleEditor(except fields.Section) {
	for _, sec := range fields.Sections() {
		if sec == except || !o.sections[sec].IsEditing() {
			continue
		}
		if o.strict {
			panic(fmt.Errorf("%w: %s", ErrConcurrentEdit, sec))
		}
		o.logger.Warn("concurrent edit repaired",
			"registration_id", o.id.String(),
			"section", sec.String(),
			"error", ErrConcurrentEdit.Error(),
		)
		_ = o.cancel(sec)
	}
}

// Submit checks that Personal (and Payment, for paid events) are complete
// and returns the submission payload. Once it succeeds, later calls return
// the same payload and all mutations are rejected.
//
// Errors: *IncompleteRegistrationError naming the first incomplete step,
// which takes precedence over ErrEditInProgress for a complete registration
// with a section still being edited. State is unchanged on error.
func (o *Orchestrator) Submit() (Payload, error) {
	if o.payload != nil {
		return *o.payload, nil
	}

	computed := o.steps()
	if st, ok := steps.FirstIncomplete(computed, steps.IDPersonal, steps.IDPayment); ok {
		return Payload{}, &IncompleteRegistrationError{Step: st.ID, Missing: st.MissingRequired}
	}
	if o.editing != "" {
		return Payload{}, ErrEditInProgress
	}

	p := Payload{
		RegistrationID: o.id,
		EventName:      o.event.Name,
		PersonalInfo:   o.committed(fields.SectionPersonal),
		PaymentInfo:    record.New(nil),
		TravelInfo:     o.committed(fields.SectionTravel),
		SubmittedAt:    o.clock().UTC(),
	}
	if o.event.RequiresPayment {
		p.PaymentInfo = o.committed(fields.SectionPayment)
	}
	o.payload = &p

	o.logger.Info("registration submitted",
		"registration_id", o.id.String(),
		"submitted_at", p.SubmittedAt.Format(time.RFC3339),
	)
	return p, nil
}

// View returns the current view model.
func (o *Orchestrator) View() View {
	o.render()

	v := View{
		RegistrationID: o.id,
		Event:          o.event,
		Epoch:          o.epoch,
		Steps:          o.steps(),
		Sections:       make(map[fields.Section]SectionView, len(o.sections)),
		Submitted:      o.payload != nil,
		BirthDate: BirthDateView{
			Selection:  o.birth,
			Result:     o.resolver.Resolve(o.birth, o.clock()),
			MinimumAge: o.resolver.MinimumAge(),
		},
	}
	for _, sec := range o.flowSections() {
		v.Sections[sec] = o.sectionView(sec)
	}
	return v
}

// BirthDateOptions returns the picker's month list and year range.
func (o *Orchestrator) BirthDateOptions(span int) ([]birthdate.Month, birthdate.YearRange) {
	return birthdate.Months(), o.resolver.Years(o.clock(), span)
}

func (o *Orchestrator) sectionView(sec fields.Section) SectionView {
	st := o.sections[sec]
	displayed := st.Displayed()
	missing := o.missing(sec)

	sv := SectionView{Mode: st.Mode(), Record: displayed}
	if snap, ok := o.snapshots[sec].Get(o.epoch); ok {
		eff := snap.Effective(st.Set(), displayed)
		sv.Classification = &eff
	}
	for _, spec := range st.Set().Relevant(displayed) {
		sv.Fields = append(sv.Fields, FieldView{
			Name:     spec.Name,
			Label:    spec.Label,
			Kind:     spec.Kind,
			Required: spec.Required,
			Options:  spec.Options,
			Writable: o.payload == nil && st.Writable(spec.Name, missing),
		})
	}
	return sv
}

// render freezes a section's classification the first time it is shown with
// relevant data outside entry mode, and lets the frozen snapshot pick up
// conditional fields that became relevant since.
func (o *Orchestrator) render() {
	for _, sec := range fields.Sections() {
		st := o.sections[sec]
		displayed := st.Displayed()
		snaps := o.snapshots[sec]
		snap, ok := snaps.Get(o.epoch)
		if !ok {
			if st.Mode() == section.ModeEntry || !st.Set().HasRelevantData(displayed) {
				continue
			}
			snap = snaps.Freeze(o.epoch, st.Set(), displayed)
		}
		snap.Observe(st.Set(), displayed)
	}
}

func (o *Orchestrator) missing(sec fields.Section) classify.NameSet {
	st := o.sections[sec]
	snap, ok := o.snapshots[sec].Get(o.epoch)
	if !ok {
		return classify.NameSet{}
	}
	return snap.Effective(st.Set(), st.Displayed()).Missing
}

func (o *Orchestrator) steps() []steps.Step {
	views := make([]steps.SectionView, 0, len(o.sections))
	for _, sec := range o.flowSections() {
		views = append(views, o.sections[sec])
	}
	return steps.Compute(steps.Input{
		Event:     o.event,
		Sections:  views,
		Submitted: o.payload != nil,
	})
}

// flowSections lists the sections that take part in this event's flow.
func (o *Orchestrator) flowSections() []fields.Section {
	if o.event.RequiresPayment {
		return fields.Sections()
	}
	return []fields.Section{fields.SectionPersonal, fields.SectionTravel}
}

func (o *Orchestrator) committed(sec fields.Section) record.Record {
	st := o.sections[sec]
	return st.Set().Project(st.Committed())
}

// mutable returns sec's state if the registration still accepts changes and
// sec is part of the flow.
func (o *Orchestrator) mutable(sec fields.Section) (*section.State, error) {
	if o.payload != nil {
		return nil, ErrAlreadySubmitted
	}
	st, ok := o.sections[sec]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown section %q", sec))
	}
	if sec == fields.SectionPayment && !o.event.RequiresPayment {
		return nil, dErrors.New(dErrors.CodeValidation, "this event does not collect payment")
	}
	return st, nil
}

// syncBirthSelection splits the committed date of birth into the picker, or
// clears the picker when there is none.
func (o *Orchestrator) syncBirthSelection() {
	dob := o.sections[fields.SectionPersonal].Displayed().Get(fields.FieldDateOfBirth)
	if dob.Kind() == record.KindDate {
		o.birth = birthdate.FromDate(dob.Time())
		return
	}
	o.birth = birthdate.Selection{}
}
