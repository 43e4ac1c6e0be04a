// Package ports defines the interfaces the registration service depends on.
package ports

import (
	"context"

	"retreat/internal/registration/orchestrator"
	"retreat/pkg/domain"
)

// RegistrationStore keeps live orchestrators. Update runs fn with exclusive
// access to one registration, which is how the single-writer discipline of
// an Orchestrator is upheld across concurrent requests.
type RegistrationStore interface {
	// Create stores a new orchestrator. Fails with sentinel.ErrConflict if
	// the ID is taken.
	Create(ctx context.Context, o *orchestrator.Orchestrator) error

	// Update runs fn on the registration with id. Fails with
	// sentinel.ErrNotFound for unknown IDs; otherwise returns fn's error.
	Update(ctx context.Context, id domain.RegistrationID, fn func(*orchestrator.Orchestrator) error) error
}

// SubmissionPublisher hands a submitted registration to downstream
// persistence or notification.
type SubmissionPublisher interface {
	Publish(ctx context.Context, payload orchestrator.Payload) error
}
