package driven

import (
	"context"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

// FeedbackStore persists citizen feedback entries.
type FeedbackStore interface {
	// Append adds one feedback entry to the log.
	Append(ctx context.Context, entry domain.Feedback) error

	// List returns all recorded feedback entries, oldest first.
	List(ctx context.Context) ([]domain.Feedback, error)
}
