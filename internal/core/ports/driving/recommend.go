package driving

import (
	"context"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

// RecommendationService answers free-text policy queries.
type RecommendationService interface {
	// Recommend classifies a query into a graded recommendation.
	// sector is an optional filter; empty means unfiltered.
	Recommend(ctx context.Context, text, sector string) (domain.Recommendation, error)
}

// DriftService audits a policy's real-world outcomes.
type DriftService interface {
	// DetectDrift compares a policy's fingerprint against recent
	// impact records in its sector.
	DetectDrift(ctx context.Context, policyID int64) (domain.DriftReport, error)
}

// AnalysisService runs the full pipeline: recommendation, drift audit
// and strategist narrative.
type AnalysisService interface {
	// Analyze answers a query end to end.
	Analyze(ctx context.Context, text, sector string) (domain.Analysis, error)
}
