package services

import (
	"context"
	"fmt"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
	"github.com/policypulse-labs/policypulse-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Strategist generation settings.
const (
	strategistMaxTokens   = 1024
	strategistTemperature = 0.7
)

// strategistSystemPrompt frames the narrative generation.
const strategistSystemPrompt = "You are a policy analyst specializing in Indian governance."

// AnalysisService runs the full pipeline: recommendation, drift audit of
// the selected policy, and a strategist narrative explaining the result.
// The llm parameter is optional (can be nil).
type AnalysisService struct {
	recommender driving.RecommendationService
	auditor     driving.DriftService
	llm         driven.LLMService
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	recommender driving.RecommendationService,
	auditor driving.DriftService,
	llm driven.LLMService,
) *AnalysisService {
	return &AnalysisService{
		recommender: recommender,
		auditor:     auditor,
		llm:         llm,
	}
}

// Analyze answers a query end to end. A no_results recommendation stops
// the pipeline early. Narrative generation failures never fail the
// analysis; the error is reported in the strategy text instead.
func (s *AnalysisService) Analyze(ctx context.Context, text, sector string) (domain.Analysis, error) {
	rec, err := s.recommender.Recommend(ctx, text, sector)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("recommend: %w", err)
	}

	analysis := domain.Analysis{Recommendation: rec}
	if !rec.Matched() {
		return analysis, nil
	}

	drift, err := s.auditor.DetectDrift(ctx, rec.Policy.ID)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("detect drift: %w", err)
	}
	analysis.Drift = &drift

	analysis.Strategy = s.strategise(ctx, rec.Policy, drift)
	return analysis, nil
}

// strategise generates the narrative for a drift report.
func (s *AnalysisService) strategise(ctx context.Context, policy *domain.Policy, drift domain.DriftReport) string {
	if s.llm == nil {
		logger.Debug("No LLM configured, skipping strategist narrative")
		return ""
	}

	prompt := fmt.Sprintf(`SYSTEM: You are the 'Civic Strategist Agent'.
CONTEXT:
- Sector: %s
- Intent: %s
- Impact: %s
- Drift Score: %.2f (Scale: 0.0 = No Drift/In Sync, 1.0 = Full Drift/Failure)

TASK:
1. If Drift Score is near 0.0, explain why the policy is successfully 'In Sync'.
2. If Drift Score is high, explain the specific gaps causing the drift.
3. Provide a 'Cross-Jurisdiction' lesson.`,
		policy.Sector, policy.Text, drift.ActualImpact, drift.Score)

	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: strategistSystemPrompt},
		{Role: "user", Content: prompt},
	}, driven.ChatOptions{
		MaxTokens:   strategistMaxTokens,
		Temperature: strategistTemperature,
	})
	if err != nil {
		logger.Warn("Strategist narrative failed: %v", err)
		return fmt.Sprintf("Strategist Error: %v", err)
	}
	return reply
}
