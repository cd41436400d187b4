package services

import (
	"context"
	"fmt"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports the size of the indexed corpus.
type StatusService struct {
	store driven.VectorStore
}

// NewStatusService creates a new status service.
func NewStatusService(store driven.VectorStore) *StatusService {
	return &StatusService{store: store}
}

// Status counts both collections and reports the storage location.
func (s *StatusService) Status(ctx context.Context) (domain.SystemStatus, error) {
	if s.store == nil {
		return domain.SystemStatus{}, domain.ErrVectorStoreUnavailable
	}

	policies, err := s.store.Count(ctx, driven.CollectionPolicies)
	if err != nil {
		return domain.SystemStatus{}, fmt.Errorf("count policies: %w", err)
	}
	impacts, err := s.store.Count(ctx, driven.CollectionImpacts)
	if err != nil {
		return domain.SystemStatus{}, fmt.Errorf("count impacts: %w", err)
	}

	return domain.SystemStatus{
		PoliciesIndexed: policies,
		ImpactsIndexed:  impacts,
		StoragePath:     s.store.Path(),
	}, nil
}
