// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - EmbeddingService: Computes fingerprint vectors from text
//   - VectorStore: Stores and similarity-searches fingerprints
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Strategist narrative generation. Without it, analyze
//     returns the drift report with no narrative.
//   - FeedbackStore: Citizen feedback persistence.
//   - ImpactSource: Live outcome-data ingestion.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
