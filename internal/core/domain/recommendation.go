package domain

// Verdict classifies the outcome of a recommendation query.
type Verdict string

const (
	// VerdictExactMatch means a jurisdiction/sector-filtered candidate
	// cleared the high similarity bar.
	VerdictExactMatch Verdict = "exact_match"

	// VerdictFallbackMatch means no filtered candidate qualified but an
	// unfiltered candidate cleared the lower bar.
	VerdictFallbackMatch Verdict = "fallback_match"

	// VerdictNoResults means nothing in the store resembles the query.
	VerdictNoResults Verdict = "no_results"
)

// Recommendation is the graded result of a policy query.
// Policy is non-nil iff the verdict is exact_match or fallback_match.
type Recommendation struct {
	// Policy is the selected record, or nil when Verdict is no_results.
	Policy *Policy

	// Verdict classifies the match quality.
	Verdict Verdict

	// Message is a human-readable summary naming the jurisdictions
	// involved.
	Message string
}

// Matched reports whether the recommendation carries a policy.
func (r Recommendation) Matched() bool {
	return r.Verdict == VerdictExactMatch || r.Verdict == VerdictFallbackMatch
}
