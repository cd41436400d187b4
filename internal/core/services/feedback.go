package services

import (
	"context"
	"fmt"
	"time"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService records citizen opinions on recommended policies.
type FeedbackService struct {
	store driven.FeedbackStore
	now   func() time.Time
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(store driven.FeedbackStore) *FeedbackService {
	return &FeedbackService{
		store: store,
		now:   time.Now,
	}
}

// Record stores one feedback entry stamped with the current time.
func (s *FeedbackService) Record(ctx context.Context, policy, state, opinion string) error {
	entry := domain.Feedback{
		Timestamp: s.now(),
		Policy:    policy,
		State:     state,
		Opinion:   opinion,
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

// List returns all recorded feedback, oldest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}
