package domain

import "time"

// Feedback is one citizen opinion about a recommended policy.
type Feedback struct {
	// Timestamp records when the feedback was submitted.
	Timestamp time.Time

	// Policy is the policy title the feedback refers to.
	Policy string

	// State is the submitter's jurisdiction.
	State string

	// Opinion is the free-text opinion.
	Opinion string
}

// SystemStatus summarises the indexed corpus.
type SystemStatus struct {
	// PoliciesIndexed is the number of records in the policy collection.
	PoliciesIndexed int

	// ImpactsIndexed is the number of records in the impact collection.
	ImpactsIndexed int

	// StoragePath is where the vector store keeps its data, if local.
	StoragePath string
}
