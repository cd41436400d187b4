package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

func analysisFixture(t *testing.T, llm driven.LLMService) *AnalysisService {
	t.Helper()

	policy := domain.Policy{
		ID: 1, Title: "PM-KISAN", Text: "Income support for farmers.",
		Sector: "Agriculture", Scope: "Punjab",
	}

	store := newMockVectorStore()
	store.hits[queryKey(driven.CollectionPolicies, driven.Filter{
		Must: []driven.Condition{{Key: "state", Value: "Punjab"}},
	})] = []driven.ScoredPoint{{Point: policyPoint(policy), Score: 0.85}}
	store.points[driven.CollectionPolicies+"/1"] = policyPoint(policy)
	store.hits[queryKey(driven.CollectionImpacts, driven.Filter{
		Must: []driven.Condition{{Key: "sector", Value: "Agriculture"}},
	})] = []driven.ScoredPoint{
		impactPoint(domain.ImpactRecord{Sector: "Agriculture", Region: "Punjab"}, 0.9),
	}

	embedder := &mockEmbedder{vector: make([]float32, 384)}
	return NewAnalysisService(
		NewRecommendationService(embedder, store),
		NewDriftService(embedder, store),
		llm,
	)
}

func TestAnalyze_FullPipeline(t *testing.T) {
	llm := &mockLLM{reply: "The policy is in sync with field data."}
	svc := analysisFixture(t, llm)

	analysis, err := svc.Analyze(context.Background(), "farmer support in Punjab", "")
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictExactMatch, analysis.Recommendation.Verdict)
	require.NotNil(t, analysis.Drift)
	assert.InDelta(t, 0.1, analysis.Drift.Score, 1e-9)
	assert.Equal(t, "The policy is in sync with field data.", analysis.Strategy)

	// The strategist receives the analyst framing plus the drift context.
	require.Len(t, llm.prompts, 2)
	assert.Equal(t, "system", llm.prompts[0].Role)
	assert.Contains(t, llm.prompts[1].Content, "Drift Score: 0.10")
	assert.Equal(t, strategistMaxTokens, llm.chatOpts.MaxTokens)
	assert.InDelta(t, strategistTemperature, llm.chatOpts.Temperature, 1e-9)
}

func TestAnalyze_NoResultsStopsPipeline(t *testing.T) {
	llm := &mockLLM{reply: "should not be called"}
	embedder := &mockEmbedder{vector: make([]float32, 384)}
	store := newMockVectorStore()

	svc := NewAnalysisService(
		NewRecommendationService(embedder, store),
		NewDriftService(embedder, store),
		llm,
	)

	analysis, err := svc.Analyze(context.Background(), "xyz nonsense", "")
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictNoResults, analysis.Recommendation.Verdict)
	assert.Nil(t, analysis.Drift)
	assert.Empty(t, analysis.Strategy)
	assert.Empty(t, llm.prompts)
}

func TestAnalyze_LLMFailureDegrades(t *testing.T) {
	llm := &mockLLM{chatErr: errors.New("rate limited")}
	svc := analysisFixture(t, llm)

	analysis, err := svc.Analyze(context.Background(), "farmer support in Punjab", "")
	require.NoError(t, err)

	require.NotNil(t, analysis.Drift)
	assert.Contains(t, analysis.Strategy, "Strategist Error")
}

func TestAnalyze_NoLLMConfigured(t *testing.T) {
	svc := analysisFixture(t, nil)

	analysis, err := svc.Analyze(context.Background(), "farmer support in Punjab", "")
	require.NoError(t, err)

	require.NotNil(t, analysis.Drift)
	assert.Empty(t, analysis.Strategy)
}
