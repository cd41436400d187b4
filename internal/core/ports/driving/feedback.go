package driving

import (
	"context"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

// FeedbackService records citizen feedback on recommendations.
type FeedbackService interface {
	// Record stores one feedback entry.
	Record(ctx context.Context, policy, state, opinion string) error

	// List returns all recorded feedback, oldest first.
	List(ctx context.Context) ([]domain.Feedback, error)
}

// StatusService reports on the indexed corpus.
type StatusService interface {
	// Status returns collection counts and storage location.
	Status(ctx context.Context) (domain.SystemStatus, error)
}

// IngestService populates the vector store.
type IngestService interface {
	// Reset drops and recreates both collections.
	Reset(ctx context.Context) error

	// LoadPolicies embeds and stores the given policy records.
	LoadPolicies(ctx context.Context, policies []domain.Policy) (int, error)

	// SyncImpacts pulls outcome records from the configured impact
	// source and stores them. Returns the number of records stored.
	SyncImpacts(ctx context.Context) (int, error)
}
