// Package observability provides logging helpers for the registration module.
package observability

import (
	"context"
	"log/slog"

	"retreat/internal/registration/orchestrator"
	"retreat/pkg/attrs"
	"retreat/pkg/requestcontext"
)

// LogEvent logs a registration lifecycle event, enriched with the request ID.
// Events that carry a "reason" are logged at warn level.
func LogEvent(ctx context.Context, logger *slog.Logger, event string, attrList ...any) {
	if logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrList = append(attrList, attrs.KeyRequestID, requestID)
	}
	args := append(attrList, "event", event, "log_type", "registration")

	level := slog.LevelInfo
	if attrs.Reason(attrList) != "" {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, event, args...)
}

// LogPublisher is a SubmissionPublisher that writes submissions to the log.
// It stands in for a real downstream until one is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, payload orchestrator.Payload) error {
	LogEvent(ctx, p.logger, "registration_published",
		attrs.KeyRegistrationID, payload.RegistrationID.String(),
		"event_name", payload.EventName,
		"personal_fields", payload.PersonalInfo.Len(),
		"payment_fields", payload.PaymentInfo.Len(),
		"travel_fields", payload.TravelInfo.Len(),
	)
	return nil
}
