package domain

// DriftThreshold is the score above which drift is flagged.
// Drift is the inverse of mean similarity between a policy's fingerprint
// and its sector's recent impact records.
const DriftThreshold = 0.4

// DriftReport is the outcome of comparing a policy against recent
// field-outcome records in the same sector.
type DriftReport struct {
	// Score is the drift metric in [0.0, 1.0]. 0.0 means the policy is
	// in sync with observed outcomes; 1.0 means full divergence.
	Score float64

	// Detected is true when Score exceeds DriftThreshold. The two
	// short-circuit cases (missing record, no impact data) fix it to
	// false regardless of Score.
	Detected bool

	// Explanation states how the score was produced.
	Explanation string

	// Region is the state of the nearest impact record, or a coverage
	// sentinel when no records were found.
	Region string

	// ActualImpact is the nearest impact record's observation rendered
	// as text.
	ActualImpact string
}
