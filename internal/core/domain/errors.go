package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, including
	// store payloads that cannot be validated into typed records.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCollectionMissing indicates a vector collection has not been
	// created. Running ingest sets up both collections.
	ErrCollectionMissing = errors.New("collection missing")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Recommendation and drift detection need embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not
	// configured.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Strategist narratives are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
