// Package service is the application layer of the registration module. It
// loads orchestrators from the store, runs one operation under the
// registration's lock and returns the refreshed view.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"retreat/internal/registration/birthdate"
	"retreat/internal/registration/fields"
	"retreat/internal/registration/metrics"
	"retreat/internal/registration/observability"
	"retreat/internal/registration/orchestrator"
	"retreat/internal/registration/ports"
	"retreat/internal/registration/steps"
	"retreat/pkg/domain"
	dErrors "retreat/pkg/domain-errors"
	"retreat/pkg/platform/sentinel"
	"retreat/pkg/requestcontext"
)

// Type aliases for shared interfaces.
type (
	Store     = ports.RegistrationStore
	Publisher = ports.SubmissionPublisher
)

// RawRegistrant is registrant data as submitted by a form: field name to raw
// string value, per section.
type RawRegistrant struct {
	Personal map[string]string `json:"personal,omitempty"`
	Payment  map[string]string `json:"payment,omitempty"`
	Travel   map[string]string `json:"travel,omitempty"`
}

type Service struct {
	store     Store
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	catalog   fields.Catalog

	minimumAge int
	yearSpan   int
	strict     bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher sets where first successful submissions are sent.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithMinimumAge(age int) Option {
	return func(s *Service) {
		s.minimumAge = age
	}
}

// WithBirthYearSpan sets how many years back the birth-year picker reaches.
func WithBirthYearSpan(span int) Option {
	return func(s *Service) {
		s.yearSpan = span
	}
}

// WithStrictInvariants makes orchestrators panic on invariant violations.
func WithStrictInvariants(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("registration store is required")
	}

	svc := &Service{
		store:      store,
		tracer:     otel.Tracer("retreat/internal/registration/service"),
		catalog:    fields.DefaultCatalog(),
		minimumAge: birthdate.DefaultMinimumAge,
		yearSpan:   birthdate.DefaultYearSpan,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Create starts a registration for event, pre-populated with initial.
func (s *Service) Create(ctx context.Context, event steps.EventConfig, initial RawRegistrant) (*orchestrator.View, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Create")
	defer span.End()

	in, err := s.coerce(initial)
	if err != nil {
		return nil, s.fail(span, err)
	}

	o, err := orchestrator.New(event, in,
		orchestrator.WithCatalog(s.catalog),
		orchestrator.WithClock(s.clock(ctx)),
		orchestrator.WithMinimumAge(s.minimumAge),
		orchestrator.WithStrictInvariants(s.strict),
		orchestrator.WithLogger(s.logger),
	)
	if err != nil {
		if errors.Is(err, fields.ErrConfiguration) {
			return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeConfiguration, "registration form is misconfigured"))
		}
		return nil, s.fail(span, err)
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store registration"))
	}
	span.SetAttributes(attribute.String("registration.id", o.ID().String()))

	s.metrics.IncrementActive()
	observability.LogEvent(ctx, s.logger, "registration_created",
		"registration_id", o.ID().String(),
		"event_name", event.Name,
		"requires_payment", event.RequiresPayment,
	)

	v := o.View()
	return &v, nil
}

// Get returns the current view of a registration.
func (s *Service) Get(ctx context.Context, id domain.RegistrationID) (*orchestrator.View, error) {
	return s.update(ctx, "registration.Get", id, func(*orchestrator.Orchestrator) error { return nil })
}

// ApplyFieldChange writes one raw field value.
func (s *Service) ApplyFieldChange(ctx context.Context, id domain.RegistrationID, sec fields.Section, field, raw string) (*orchestrator.View, error) {
	v, err := s.update(ctx, "registration.ApplyFieldChange", id, func(o *orchestrator.Orchestrator) error {
		return o.ApplyFieldChange(sec, field, raw)
	})
	if err != nil {
		s.metrics.IncrementFieldChange(sec.String(), "rejected")
		return nil, err
	}
	s.metrics.IncrementFieldChange(sec.String(), "applied")
	return v, nil
}

// SelectBirthDate updates one part of the birth-date picker.
func (s *Service) SelectBirthDate(ctx context.Context, id domain.RegistrationID, part orchestrator.DatePart, value int) (*orchestrator.View, error) {
	v, err := s.update(ctx, "registration.SelectBirthDate", id, func(o *orchestrator.Orchestrator) error {
		return o.SelectBirthDate(part, value)
	})
	if err != nil {
		s.metrics.IncrementFieldChange(fields.SectionPersonal.String(), "rejected")
		return nil, err
	}
	s.metrics.IncrementFieldChange(fields.SectionPersonal.String(), "applied")
	return v, nil
}

// BeginEdit puts a section into editing, cancelling any other edit.
func (s *Service) BeginEdit(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error) {
	return s.update(ctx, "registration.BeginEdit", id, func(o *orchestrator.Orchestrator) error {
		prev, wasEditing := o.Editing()
		if err := o.BeginEdit(sec); err != nil {
			return err
		}
		if wasEditing && prev != sec {
			s.metrics.IncrementEditTransition(prev.String(), "force_cancel")
			observability.LogEvent(ctx, s.logger, "section_edit_force_cancelled",
				"registration_id", id.String(),
				"section", prev.String(),
				"reason", "edit_started_on_"+sec.String(),
			)
		}
		s.metrics.IncrementEditTransition(sec.String(), "begin")
		return nil
	})
}

// SaveSection commits a section's edits.
func (s *Service) SaveSection(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error) {
	return s.update(ctx, "registration.SaveSection", id, func(o *orchestrator.Orchestrator) error {
		if err := o.SaveSection(sec); err != nil {
			return err
		}
		s.metrics.IncrementEditTransition(sec.String(), "save")
		observability.LogEvent(ctx, s.logger, "section_saved",
			"registration_id", id.String(),
			"section", sec.String(),
		)
		return nil
	})
}

// CancelEdit discards a section's edits.
func (s *Service) CancelEdit(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error) {
	return s.update(ctx, "registration.CancelEdit", id, func(o *orchestrator.Orchestrator) error {
		if err := o.CancelEdit(sec); err != nil {
			return err
		}
		s.metrics.IncrementEditTransition(sec.String(), "cancel")
		return nil
	})
}

// LoadRegistrant replaces the registrant data and starts a new epoch.
func (s *Service) LoadRegistrant(ctx context.Context, id domain.RegistrationID, raw RawRegistrant) (*orchestrator.View, error) {
	in, err := s.coerce(raw)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, "registration.LoadRegistrant", id, func(o *orchestrator.Orchestrator) error {
		if err := o.Load(in); err != nil {
			return err
		}
		observability.LogEvent(ctx, s.logger, "registrant_loaded",
			"registration_id", id.String(),
			"epoch", uint64(o.Epoch()),
		)
		return nil
	})
}

// Submit finalizes a registration. The first successful submission is
// handed to the publisher; repeated calls return the original payload.
func (s *Service) Submit(ctx context.Context, id domain.RegistrationID) (*orchestrator.Payload, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Submit", trace.WithAttributes(
		attribute.String("registration.id", id.String()),
	))
	defer span.End()

	var (
		payload orchestrator.Payload
		first   bool
	)
	err := s.store.Update(ctx, id, func(o *orchestrator.Orchestrator) error {
		o.SetClock(s.clock(ctx))
		first = !o.Submitted()
		p, err := o.Submit()
		if err != nil {
			return err
		}
		payload = p
		if first {
			s.metrics.ObserveTimeToSubmit(p.SubmittedAt.Sub(o.CreatedAt()))
		}
		return nil
	})
	if err != nil {
		s.recordSubmitFailure(ctx, id, err)
		return nil, s.fail(span, s.translate(err))
	}

	if !first {
		s.metrics.IncrementSubmission("repeated")
		return &payload, nil
	}

	s.metrics.IncrementSubmission("submitted")
	observability.LogEvent(ctx, s.logger, "registration_submitted",
		"registration_id", id.String(),
		"event_name", payload.EventName,
	)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, payload); err != nil {
			// The registration stays submitted; publishing is not retried here.
			span.RecordError(err)
			observability.LogEvent(ctx, s.logger, "registration_publish_failed",
				"registration_id", id.String(),
				"reason", err.Error(),
			)
		}
	}
	return &payload, nil
}

func (s *Service) recordSubmitFailure(ctx context.Context, id domain.RegistrationID, err error) {
	var incomplete *orchestrator.IncompleteRegistrationError
	if errors.As(err, &incomplete) {
		s.metrics.IncrementSubmission("incomplete")
		observability.LogEvent(ctx, s.logger, "registration_submit_rejected",
			"registration_id", id.String(),
			"reason", "incomplete",
			"step", string(incomplete.Step),
		)
		return
	}
	s.metrics.IncrementSubmission("rejected")
}

// BirthDateOptions returns the month list and selectable years as of the
// request time.
func (s *Service) BirthDateOptions(ctx context.Context) ([]birthdate.Month, birthdate.YearRange) {
	r := birthdate.NewResolver(s.minimumAge)
	return birthdate.Months(), r.Years(requestcontext.Now(ctx), s.yearSpan)
}

// update runs fn on a registration with the request clock installed and
// returns the view afterwards.
func (s *Service) update(ctx context.Context, op string, id domain.RegistrationID, fn func(*orchestrator.Orchestrator) error) (*orchestrator.View, error) {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("registration.id", id.String()),
	))
	defer span.End()

	var v orchestrator.View
	err := s.store.Update(ctx, id, func(o *orchestrator.Orchestrator) error {
		o.SetClock(s.clock(ctx))
		if err := fn(o); err != nil {
			return err
		}
		v = o.View()
		return nil
	})
	if err != nil {
		return nil, s.fail(span, s.translate(err))
	}
	return &v, nil
}

func (s *Service) coerce(raw RawRegistrant) (orchestrator.Initial, error) {
	var in orchestrator.Initial
	for _, sec := range fields.Sections() {
		set, ok := s.catalog.Set(sec)
		if !ok {
			return in, dErrors.New(dErrors.CodeConfiguration, "missing field set for "+sec.String())
		}
		var values map[string]string
		switch sec {
		case fields.SectionPersonal:
			values = raw.Personal
		case fields.SectionPayment:
			values = raw.Payment
		case fields.SectionTravel:
			values = raw.Travel
		}
		rec, err := set.CoerceAll(values)
		if err != nil {
			return in, err
		}
		switch sec {
		case fields.SectionPersonal:
			in.Personal = rec
		case fields.SectionPayment:
			in.Payment = rec
		case fields.SectionTravel:
			in.Travel = rec
		}
	}
	return in, nil
}

// translate maps store facts to coded errors. Coded errors pass through.
func (s *Service) translate(err error) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "registration not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "request cancelled")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "registration operation failed")
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}

// clock pins the orchestrator's "today" to the request time.
func (s *Service) clock(ctx context.Context) func() time.Time {
	now := requestcontext.Now(ctx)
	return func() time.Time { return now }
}
