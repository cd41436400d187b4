// Package memory provides an in-memory implementation of the vector
// store. Used in tests and as a throwaway backend for experiments;
// nothing survives a process restart.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

type collection struct {
	dimensions int
	points     map[string]driven.Point
}

// Store is an in-memory vector store with exact cosine similarity search.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore creates a new in-memory vector store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]*collection),
	}
}

// EnsureCollection creates a collection if it does not already exist.
func (s *Store) EnsureCollection(_ context.Context, name string, dimensions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return nil
	}
	s.collections[name] = &collection{
		dimensions: dimensions,
		points:     make(map[string]driven.Point),
	}
	return nil
}

// DropCollection removes a collection and all its points.
func (s *Store) DropCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
	return nil
}

// Upsert inserts or replaces points in a collection.
func (s *Store) Upsert(_ context.Context, name string, points []driven.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCollectionMissing, name)
	}

	for _, p := range points {
		if len(p.Vector) != coll.dimensions {
			return fmt.Errorf("%w: point %s has %d dimensions, collection %s expects %d",
				domain.ErrInvalidInput, p.ID, len(p.Vector), name, coll.dimensions)
		}
		coll.points[p.ID] = p
	}
	return nil
}

// Retrieve returns the point with the given id.
func (s *Store) Retrieve(_ context.Context, name, id string) (driven.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[name]
	if !ok {
		return driven.Point{}, fmt.Errorf("%w: %s", domain.ErrCollectionMissing, name)
	}
	point, ok := coll.points[id]
	if !ok {
		return driven.Point{}, domain.ErrNotFound
	}
	return point, nil
}

// Query returns the limit nearest neighbours by cosine similarity,
// ordered highest first. The scan is exact, not approximate.
func (s *Store) Query(
	_ context.Context, name string, vector []float32, filter driven.Filter, limit int,
) ([]driven.ScoredPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionMissing, name)
	}

	hits := make([]driven.ScoredPoint, 0, len(coll.points))
	for _, p := range coll.points {
		if !filter.Empty() && !filter.MatchAll(p.Payload) {
			continue
		}
		hits = append(hits, driven.ScoredPoint{
			Point: p,
			Score: CosineSimilarity(vector, p.Vector),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	if limit > 0 && limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

// Count returns the number of points in a collection.
// A missing collection counts as empty.
func (s *Store) Count(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[name]
	if !ok {
		return 0, nil
	}
	return len(coll.points), nil
}

// Path returns empty: the store has no on-disk location.
func (s *Store) Path() string { return "" }

// Close releases resources.
func (s *Store) Close() error { return nil }

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
