package domain

// Analysis is the full result of the analyze pipeline: a recommendation,
// the drift audit of the selected policy, and a strategist narrative.
// Drift and Strategy are only populated when the recommendation matched.
type Analysis struct {
	// Recommendation is the retrieval outcome.
	Recommendation Recommendation

	// Drift is the audit of the selected policy. Nil when no policy
	// was selected.
	Drift *DriftReport

	// Strategy is the generated narrative explaining the drift result.
	// Empty when no policy was selected or no LLM is configured.
	Strategy string
}
