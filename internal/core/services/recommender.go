package services

import (
	"context"
	"fmt"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
	"github.com/policypulse-labs/policypulse-cli/internal/logger"
)

// Ensure RecommendationService implements the interface.
var _ driving.RecommendationService = (*RecommendationService)(nil)

// Similarity thresholds for the two-tier retrieval. These are policy
// constants in the store's cosine-similarity metric, not learned values.
const (
	// exactMatchThreshold is the bar a filtered candidate must clear.
	exactMatchThreshold = 0.7

	// fallbackThreshold is the bar an unfiltered candidate must clear.
	fallbackThreshold = 0.6
)

// RecommendationService classifies a free-text query into a graded
// recommendation using two-tier, filter-then-relax retrieval.
type RecommendationService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(embedder driven.EmbeddingService, store driven.VectorStore) *RecommendationService {
	return &RecommendationService{
		embedder: embedder,
		store:    store,
	}
}

// Recommend answers a query with at most one policy.
//
// The filtered attempt runs when the query names a jurisdiction or a
// sector filter was supplied; its top hit must score above 0.7. The
// fallback attempt is deliberately unfiltered, even when a sector filter
// was supplied, trading filter precision for availability of some
// answer; its top hit must score above 0.6. Infrastructure errors
// propagate to the caller unreinterpreted.
func (s *RecommendationService) Recommend(ctx context.Context, text, sector string) (domain.Recommendation, error) {
	logger.Section("Recommendation")
	logger.Debug("Query: %q, sector filter: %q", text, sector)

	if s.embedder == nil {
		return domain.Recommendation{}, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return domain.Recommendation{}, domain.ErrVectorStoreUnavailable
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query fingerprint: %d dimensions", len(vector))

	region, regionFound := domain.ResolveRegion(text)
	if regionFound {
		logger.Info("Resolved jurisdiction: %s", region)
	} else {
		logger.Debug("No jurisdiction mention in query")
	}

	// Tier 1: exact match with all supplied conditions.
	if regionFound || sector != "" {
		filter := driven.Filter{}
		if regionFound {
			filter.Must = append(filter.Must, driven.Condition{Key: "state", Value: region})
		}
		if sector != "" {
			filter.Must = append(filter.Must, driven.Condition{Key: "sector", Value: sector})
		}

		hits, err := s.store.Query(ctx, driven.CollectionPolicies, vector, filter, 1)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("filtered policy query: %w", err)
		}

		if len(hits) > 0 && hits[0].Score > exactMatchThreshold {
			policy, err := domain.PolicyFromPayload(hits[0].Payload)
			if err != nil {
				return domain.Recommendation{}, fmt.Errorf("decode policy payload: %w", err)
			}
			logger.Info("Exact match: policy %d (score %.2f)", policy.ID, hits[0].Score)
			return domain.Recommendation{
				Policy:  &policy,
				Verdict: domain.VerdictExactMatch,
				Message: fmt.Sprintf("Found policy for %s.", orNational(region)),
			}, nil
		}
		logger.Debug("Filtered attempt did not clear %.1f bar", exactMatchThreshold)
	}

	// Tier 2: unfiltered fallback.
	hits, err := s.store.Query(ctx, driven.CollectionPolicies, vector, driven.Filter{}, 1)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("fallback policy query: %w", err)
	}

	if len(hits) > 0 && hits[0].Score > fallbackThreshold {
		policy, err := domain.PolicyFromPayload(hits[0].Payload)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("decode policy payload: %w", err)
		}
		requested := region
		if requested == "" {
			requested = "your area"
		}
		logger.Info("Fallback match: policy %d from %s (score %.2f)", policy.ID, policy.Scope, hits[0].Score)
		return domain.Recommendation{
			Policy:  &policy,
			Verdict: domain.VerdictFallbackMatch,
			Message: fmt.Sprintf(
				"That policy in %s is not available. Here is a similar one from %s region.",
				requested, policy.Scope,
			),
		}, nil
	}

	logger.Info("No candidate cleared the %.1f fallback bar", fallbackThreshold)
	return domain.Recommendation{
		Verdict: domain.VerdictNoResults,
		Message: "no such policy record in the database",
	}, nil
}

// orNational substitutes the national sentinel for an empty region.
func orNational(region string) string {
	if region == "" {
		return domain.ScopeNational
	}
	return region
}
