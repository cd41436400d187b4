package driven

import "context"

// EmbeddingService computes fingerprint vectors from text.
//
// Note: This is separate from VectorStore which stores and searches
// vectors. EmbeddingService generates vectors; VectorStore stores them.
//
// Implementations may include:
//   - Ollama (all-minilm, nomic-embed-text)
//   - OpenAI (text-embedding-3-small with reduced dimensions)
//   - Local models via inference servers
//
// Repeated calls on identical text must produce vectors close enough to
// retrieve the same neighbours; bit-identical output is not required.
type EmbeddingService interface {
	// Embed generates a fingerprint vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates fingerprints for multiple texts efficiently.
	// Used by ingestion; more efficient than calling Embed in a loop.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the fingerprint vector size.
	// This must match the VectorStore's configured dimension (384).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
