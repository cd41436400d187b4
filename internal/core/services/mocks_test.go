package services

import (
	"context"
	"fmt"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
type mockEmbedder struct {
	vector   []float32
	embedErr error
	calls    []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls = append(m.calls, text)
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		m.calls = append(m.calls, text)
		out[i] = m.vector
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return driven.VectorDimensions }

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

// queryKey distinguishes filtered from unfiltered queries in mock
// expectations.
func queryKey(collection string, filter driven.Filter) string {
	if filter.Empty() {
		return collection
	}
	key := collection
	for _, cond := range filter.Must {
		key += fmt.Sprintf("|%s=%s", cond.Key, cond.Value)
	}
	return key
}

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	hits       map[string][]driven.ScoredPoint
	points     map[string]driven.Point
	counts     map[string]int
	queryErr   error
	upserted   map[string][]driven.Point
	dropped    []string
	ensured    []string
	lastFilter driven.Filter
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{
		hits:     make(map[string][]driven.ScoredPoint),
		points:   make(map[string]driven.Point),
		counts:   make(map[string]int),
		upserted: make(map[string][]driven.Point),
	}
}

func (m *mockVectorStore) EnsureCollection(_ context.Context, collection string, _ int) error {
	m.ensured = append(m.ensured, collection)
	return nil
}

func (m *mockVectorStore) DropCollection(_ context.Context, collection string) error {
	m.dropped = append(m.dropped, collection)
	return nil
}

func (m *mockVectorStore) Upsert(_ context.Context, collection string, points []driven.Point) error {
	m.upserted[collection] = append(m.upserted[collection], points...)
	return nil
}

func (m *mockVectorStore) Retrieve(_ context.Context, collection, id string) (driven.Point, error) {
	point, ok := m.points[collection+"/"+id]
	if !ok {
		return driven.Point{}, domain.ErrNotFound
	}
	return point, nil
}

func (m *mockVectorStore) Query(
	_ context.Context, collection string, _ []float32, filter driven.Filter, limit int,
) ([]driven.ScoredPoint, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.lastFilter = filter
	hits := m.hits[queryKey(collection, filter)]
	if limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *mockVectorStore) Count(_ context.Context, collection string) (int, error) {
	return m.counts[collection], nil
}

func (m *mockVectorStore) Path() string { return "/tmp/mock-store" }

func (m *mockVectorStore) Close() error { return nil }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	reply    string
	chatErr  error
	prompts  []driven.ChatMessage
	chatOpts driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.prompts = append(m.prompts, messages...)
	m.chatOpts = opts
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

// mockFeedbackStore implements driven.FeedbackStore for testing.
type mockFeedbackStore struct {
	entries   []domain.Feedback
	appendErr error
}

func (m *mockFeedbackStore) Append(_ context.Context, entry domain.Feedback) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockFeedbackStore) List(_ context.Context) ([]domain.Feedback, error) {
	return m.entries, nil
}

// mockImpactSource implements driven.ImpactSource for testing.
type mockImpactSource struct {
	records  map[string][]domain.ImpactRecord
	fetchErr map[string]error
}

func (m *mockImpactSource) Sectors() []string {
	sectors := make([]string, 0, len(m.records))
	for sector := range m.records {
		sectors = append(sectors, sector)
	}
	return sectors
}

func (m *mockImpactSource) Fetch(_ context.Context, sector string) ([]domain.ImpactRecord, error) {
	if err := m.fetchErr[sector]; err != nil {
		return nil, err
	}
	return m.records[sector], nil
}

// policyPoint builds a stored policy point for mock fixtures.
func policyPoint(p domain.Policy) driven.Point {
	return driven.Point{
		ID:      fmt.Sprintf("%d", p.ID),
		Vector:  make([]float32, driven.VectorDimensions),
		Payload: p.Payload(),
	}
}
