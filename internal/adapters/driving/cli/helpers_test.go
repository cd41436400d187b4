package cli

import (
	"context"
	"errors"
	"time"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

// setupTestServices swaps the package-level services for mocks and
// returns a cleanup that restores them.
func setupTestServices() func() {
	oldAnalysis := analysisService
	oldRecommendation := recommendationService
	oldDrift := driftService
	oldFeedback := feedbackService
	oldStatus := statusService
	oldIngest := ingestService

	analysisService = &mockAnalysisService{}
	recommendationService = &mockRecommendationService{}
	driftService = &mockDriftService{}
	feedbackService = &mockFeedbackService{}
	statusService = &mockStatusService{}
	ingestService = &mockIngestService{}

	return func() {
		analysisService = oldAnalysis
		recommendationService = oldRecommendation
		driftService = oldDrift
		feedbackService = oldFeedback
		statusService = oldStatus
		ingestService = oldIngest
	}
}

func testPolicy() *domain.Policy {
	return &domain.Policy{
		ID:     42,
		Title:  "Jal Jeevan Mission",
		Text:   "Piped water supply to every rural household.",
		Sector: "Water_Sanitation_JJM",
		Scope:  "Rajasthan",
	}
}

type mockAnalysisService struct{}

func (m *mockAnalysisService) Analyze(_ context.Context, _, _ string) (domain.Analysis, error) {
	return domain.Analysis{
		Recommendation: domain.Recommendation{
			Policy:  testPolicy(),
			Verdict: domain.VerdictExactMatch,
			Message: "Found policy for Rajasthan.",
		},
		Drift: &domain.DriftReport{
			Score:        0.15,
			Detected:     false,
			Explanation:  "Verified against 2 recent field data points.",
			Region:       "Rajasthan",
			ActualImpact: `{"households_connected":"61%"}`,
		},
		Strategy: "Coverage is on track; focus on water quality testing.",
	}, nil
}

type mockAnalysisServiceError struct{}

func (m *mockAnalysisServiceError) Analyze(_ context.Context, _, _ string) (domain.Analysis, error) {
	return domain.Analysis{}, errors.New("mock analysis error")
}

type mockRecommendationService struct{}

func (m *mockRecommendationService) Recommend(_ context.Context, _, _ string) (domain.Recommendation, error) {
	return domain.Recommendation{
		Policy:  testPolicy(),
		Verdict: domain.VerdictExactMatch,
		Message: "Found policy for Rajasthan.",
	}, nil
}

type mockRecommendationServiceError struct{}

func (m *mockRecommendationServiceError) Recommend(_ context.Context, _, _ string) (domain.Recommendation, error) {
	return domain.Recommendation{}, errors.New("mock recommendation error")
}

type mockDriftService struct{}

func (m *mockDriftService) DetectDrift(_ context.Context, _ int64) (domain.DriftReport, error) {
	return domain.DriftReport{
		Score:        0.55,
		Detected:     true,
		Explanation:  "Verified against 2 recent field data points.",
		Region:       "Bihar",
		ActualImpact: `{"enrollment_drop":"12%"}`,
	}, nil
}

type mockDriftServiceError struct{}

func (m *mockDriftServiceError) DetectDrift(_ context.Context, _ int64) (domain.DriftReport, error) {
	return domain.DriftReport{}, errors.New("mock drift error")
}

type mockFeedbackService struct{}

func (m *mockFeedbackService) Record(_ context.Context, _, _, _ string) error {
	return nil
}

func (m *mockFeedbackService) List(_ context.Context) ([]domain.Feedback, error) {
	return []domain.Feedback{
		{
			Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Policy:    "Jal Jeevan Mission",
			State:     "Rajasthan",
			Opinion:   "Water access improved.",
		},
	}, nil
}

type mockFeedbackServiceEmpty struct {
	mockFeedbackService
}

func (m *mockFeedbackServiceEmpty) List(_ context.Context) ([]domain.Feedback, error) {
	return nil, nil
}

type mockFeedbackServiceError struct{}

func (m *mockFeedbackServiceError) Record(_ context.Context, _, _, _ string) error {
	return errors.New("mock feedback error")
}

func (m *mockFeedbackServiceError) List(_ context.Context) ([]domain.Feedback, error) {
	return nil, errors.New("mock feedback error")
}

type mockStatusService struct{}

func (m *mockStatusService) Status(_ context.Context) (domain.SystemStatus, error) {
	return domain.SystemStatus{
		PoliciesIndexed: 200,
		ImpactsIndexed:  1350,
		StoragePath:     "/tmp/policypulse/vectors.db",
	}, nil
}

type mockIngestService struct{}

func (m *mockIngestService) Reset(_ context.Context) error {
	return nil
}

func (m *mockIngestService) LoadPolicies(_ context.Context, policies []domain.Policy) (int, error) {
	return len(policies), nil
}

func (m *mockIngestService) SyncImpacts(_ context.Context) (int, error) {
	return 96, nil
}
