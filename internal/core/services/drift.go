package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
	"github.com/policypulse-labs/policypulse-cli/internal/logger"
)

// Ensure DriftService implements the interface.
var _ driving.DriftService = (*DriftService)(nil)

// impactNeighbours is how many recent impact records the audit compares
// against.
const impactNeighbours = 2

// DriftService compares a policy's fingerprint against recent impact
// records in the same sector and reports the divergence.
type DriftService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewDriftService creates a new drift detection service.
func NewDriftService(embedder driven.EmbeddingService, store driven.VectorStore) *DriftService {
	return &DriftService{
		embedder: embedder,
		store:    store,
	}
}

// DetectDrift audits one policy.
//
// Two short-circuit outcomes are defined, not errors: a missing policy
// record reports score 1.0 with Detected false, and a sector with no
// impact records reports the in-sync zero score. Both fix the Detected
// flag to false regardless of the threshold rule.
func (s *DriftService) DetectDrift(ctx context.Context, policyID int64) (domain.DriftReport, error) {
	logger.Section("Drift Audit")
	logger.Debug("Policy id: %d", policyID)

	if s.embedder == nil {
		return domain.DriftReport{}, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return domain.DriftReport{}, domain.ErrVectorStoreUnavailable
	}

	point, err := s.store.Retrieve(ctx, driven.CollectionPolicies, strconv.FormatInt(policyID, 10))
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Policy %d not in store", policyID)
		return domain.DriftReport{
			Score:       1.0,
			Detected:    false,
			Explanation: "Policy record missing.",
		}, nil
	}
	if err != nil {
		return domain.DriftReport{}, fmt.Errorf("retrieve policy %d: %w", policyID, err)
	}

	policy, err := domain.PolicyFromPayload(point.Payload)
	if err != nil {
		return domain.DriftReport{}, fmt.Errorf("decode policy payload: %w", err)
	}

	vector, err := s.embedder.Embed(ctx, policy.Text)
	if err != nil {
		return domain.DriftReport{}, fmt.Errorf("embed policy text: %w", err)
	}

	filter := driven.Filter{Must: []driven.Condition{{Key: "sector", Value: policy.Sector}}}
	impacts, err := s.store.Query(ctx, driven.CollectionImpacts, vector, filter, impactNeighbours)
	if err != nil {
		return domain.DriftReport{}, fmt.Errorf("impact query: %w", err)
	}

	if len(impacts) == 0 {
		logger.Info("No impact records for sector %q, reporting in sync", policy.Sector)
		return domain.DriftReport{
			Score:        0.0,
			Detected:     false,
			Explanation:  "No drift detected. System is in sync.",
			Region:       "National Coverage",
			ActualImpact: "Active",
		}, nil
	}

	var total float64
	for _, hit := range impacts {
		total += hit.Score
	}
	meanSimilarity := total / float64(len(impacts))

	// Drift is the inverse of similarity. Cosine scores on normalised
	// fingerprints stay in [0,1], but clamp in case the backing metric
	// ever strays outside it.
	score := clamp01(round2(1.0 - meanSimilarity))

	nearest, err := domain.ImpactFromPayload(impacts[0].Payload)
	if err != nil {
		return domain.DriftReport{}, fmt.Errorf("decode impact payload: %w", err)
	}

	logger.Info("Drift score %.2f from %d data points (mean similarity %.3f)",
		score, len(impacts), meanSimilarity)

	return domain.DriftReport{
		Score:        score,
		Detected:     score > domain.DriftThreshold,
		Explanation:  fmt.Sprintf("Verified against %d recent field data points.", len(impacts)),
		Region:       nearest.Region,
		ActualImpact: nearest.Summary(),
	}, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clamp01 bounds a value to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
