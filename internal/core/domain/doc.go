// Package domain defines the core business entities for PolicyPulse.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Policy: A governance policy record with a semantic fingerprint
//   - ImpactRecord: An observed field-outcome data point
//   - Recommendation: The graded result of a policy query
//   - DriftReport: The divergence of a policy from observed outcomes
//
// It also carries the region gazetteer used to resolve jurisdiction
// mentions in free-text queries.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
