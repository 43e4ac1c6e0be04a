package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"retreat/internal/registration/birthdate"
	"retreat/internal/registration/fields"
	"retreat/internal/registration/orchestrator"
	"retreat/internal/registration/service"
	"retreat/internal/registration/steps"
	"retreat/pkg/domain"
	dErrors "retreat/pkg/domain-errors"
	"retreat/pkg/platform/httputil"
	"retreat/pkg/requestcontext"
)

// Service defines the registration operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, event steps.EventConfig, initial service.RawRegistrant) (*orchestrator.View, error)
	Get(ctx context.Context, id domain.RegistrationID) (*orchestrator.View, error)
	ApplyFieldChange(ctx context.Context, id domain.RegistrationID, sec fields.Section, field, raw string) (*orchestrator.View, error)
	SelectBirthDate(ctx context.Context, id domain.RegistrationID, part orchestrator.DatePart, value int) (*orchestrator.View, error)
	BeginEdit(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error)
	SaveSection(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error)
	CancelEdit(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error)
	LoadRegistrant(ctx context.Context, id domain.RegistrationID, raw service.RawRegistrant) (*orchestrator.View, error)
	Submit(ctx context.Context, id domain.RegistrationID) (*orchestrator.Payload, error)
	BirthDateOptions(ctx context.Context) ([]birthdate.Month, birthdate.YearRange)
}

// Handler wires registration endpoints to the registration service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registration handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts registration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/birth-date/options", h.HandleBirthDateOptions)
	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Put("/registrant", h.HandleLoadRegistrant)
			r.Post("/birth-date", h.HandleSelectBirthDate)
			r.Post("/submit", h.HandleSubmit)
			r.Route("/sections/{section}", func(r chi.Router) {
				r.Post("/fields", h.HandleFieldChange)
				r.Post("/edit", h.sectionAction(h.service.BeginEdit, "section edit started"))
				r.Post("/save", h.sectionAction(h.service.SaveSection, "section saved"))
				r.Post("/cancel", h.sectionAction(h.service.CancelEdit, "section edit cancelled"))
			})
		})
	})
}

// HandleCreate handles POST /registrations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.Create(ctx, req.EventConfig(), req.Registrant)
	if err != nil {
		h.writeError(ctx, w, "failed to create registration", err, "request_id", requestID)
		return
	}

	h.logger.InfoContext(ctx, "registration created",
		"request_id", requestID,
		"registration_id", view.RegistrationID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, view)
}

// HandleGet handles GET /registrations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.registrationID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "failed to get registration", err, "registration_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleFieldChange handles POST /registrations/{id}/sections/{section}/fields.
func (h *Handler) HandleFieldChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, sec, ok := h.sectionParams(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[FieldChangeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.ApplyFieldChange(ctx, id, sec, req.Field, req.Value)
	if err != nil {
		h.writeError(ctx, w, "field change rejected", err,
			"registration_id", id.String(),
			"section", sec.String(),
			"field", req.Field,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleSelectBirthDate handles POST /registrations/{id}/birth-date.
func (h *Handler) HandleSelectBirthDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := h.registrationID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[BirthDateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.SelectBirthDate(ctx, id, req.ParsedPart(), req.Value)
	if err != nil {
		h.writeError(ctx, w, "birth date selection rejected", err, "registration_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleLoadRegistrant handles PUT /registrations/{id}/registrant.
func (h *Handler) HandleLoadRegistrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := h.registrationID(w, r)
	if !ok {
		return
	}

	raw, ok := httputil.DecodeAndPrepare[service.RawRegistrant](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.LoadRegistrant(ctx, id, *raw)
	if err != nil {
		h.writeError(ctx, w, "failed to load registrant", err, "registration_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleSubmit handles POST /registrations/{id}/submit.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := h.registrationID(w, r)
	if !ok {
		return
	}

	payload, err := h.service.Submit(ctx, id)
	if err != nil {
		var incomplete *orchestrator.IncompleteRegistrationError
		if errors.As(err, &incomplete) {
			h.logger.InfoContext(ctx, "registration incomplete",
				"request_id", requestID,
				"registration_id", id.String(),
				"step", string(incomplete.Step),
			)
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, &IncompleteResponse{
				Error:       string(dErrors.CodeIncomplete),
				Description: incomplete.Error(),
				Step:        incomplete.Step,
				Missing:     incomplete.Missing,
			})
			return
		}
		h.writeError(ctx, w, "failed to submit registration", err, "registration_id", id.String())
		return
	}

	h.logger.InfoContext(ctx, "registration submitted",
		"request_id", requestID,
		"registration_id", id.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromPayload(payload))
}

// HandleBirthDateOptions handles GET /birth-date/options.
func (h *Handler) HandleBirthDateOptions(w http.ResponseWriter, r *http.Request) {
	months, years := h.service.BirthDateOptions(r.Context())
	httputil.WriteJSON(w, http.StatusOK, fromOptions(months, years))
}

type sectionOp func(ctx context.Context, id domain.RegistrationID, sec fields.Section) (*orchestrator.View, error)

func (h *Handler) sectionAction(op sectionOp, event string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, sec, ok := h.sectionParams(w, r)
		if !ok {
			return
		}

		view, err := op(ctx, id, sec)
		if err != nil {
			h.writeError(ctx, w, event+" failed", err,
				"registration_id", id.String(),
				"section", sec.String(),
			)
			return
		}

		h.logger.DebugContext(ctx, event,
			"request_id", requestcontext.RequestID(ctx),
			"registration_id", id.String(),
			"section", sec.String(),
		)
		httputil.WriteJSON(w, http.StatusOK, view)
	}
}

func (h *Handler) registrationID(w http.ResponseWriter, r *http.Request) (domain.RegistrationID, bool) {
	id, err := domain.ParseRegistrationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.RegistrationID{}, false
	}
	return id, true
}

func (h *Handler) sectionParams(w http.ResponseWriter, r *http.Request) (domain.RegistrationID, fields.Section, bool) {
	id, ok := h.registrationID(w, r)
	if !ok {
		return domain.RegistrationID{}, "", false
	}
	sec, err := fields.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown section"))
		return domain.RegistrationID{}, "", false
	}
	return id, sec, true
}

// writeError logs err at a level matching its code and writes the response.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err.Error())
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
