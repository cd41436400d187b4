package driven

import "context"

// Collection names for the two logical fingerprint collections.
const (
	// CollectionPolicies holds policy fingerprints keyed by policy id.
	CollectionPolicies = "policy_memory"

	// CollectionImpacts holds field-outcome fingerprints.
	CollectionImpacts = "policy_impact"
)

// VectorDimensions is the fixed fingerprint size for both collections.
const VectorDimensions = 384

// Point is one stored record: an identifier, a fingerprint vector and an
// attribute payload.
type Point struct {
	// ID is the record identifier. Numeric for policies, UUID for
	// impact records.
	ID string

	// Vector is the fingerprint. Length must equal the collection's
	// configured dimension.
	Vector []float32

	// Payload holds the record's attributes.
	Payload map[string]any
}

// ScoredPoint is a similarity search hit.
type ScoredPoint struct {
	Point

	// Score is the cosine similarity to the query vector (0-1 for
	// unit-normalised fingerprints). Results are ordered highest first.
	Score float64
}

// Filter restricts a similarity query to points whose payload satisfies
// every condition.
type Filter struct {
	// Must lists conditions that all have to hold.
	Must []Condition
}

// Condition is a single payload equality requirement.
type Condition struct {
	// Key is the payload attribute name.
	Key string

	// Value is the required attribute value.
	Value string
}

// MatchAll reports whether a payload satisfies the filter.
// Helper for in-process store implementations.
func (f Filter) MatchAll(payload map[string]any) bool {
	for _, cond := range f.Must {
		v, ok := payload[cond.Key]
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok || s != cond.Value {
			return false
		}
	}
	return true
}

// Empty reports whether the filter imposes no conditions.
func (f Filter) Empty() bool {
	return len(f.Must) == 0
}

// VectorStore holds the fingerprint collections and answers similarity
// queries over them. Implementations must be safe for concurrent reads;
// writes (ingestion) are serialised by the caller.
type VectorStore interface {
	// EnsureCollection creates a collection with the given dimension if
	// it does not already exist.
	EnsureCollection(ctx context.Context, collection string, dimensions int) error

	// DropCollection removes a collection and all its points.
	// Removing a collection that does not exist is not an error.
	DropCollection(ctx context.Context, collection string) error

	// Upsert inserts or replaces points in a collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Retrieve returns the point with the given id.
	// Returns domain.ErrNotFound when the id is absent.
	Retrieve(ctx context.Context, collection, id string) (Point, error)

	// Query returns the limit nearest neighbours to the query vector,
	// ordered by descending similarity. An empty filter matches all
	// points.
	Query(ctx context.Context, collection string, vector []float32, filter Filter, limit int) ([]ScoredPoint, error)

	// Count returns the number of points in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// Path returns the local storage location, or empty for remote
	// stores.
	Path() string

	// Close releases resources.
	Close() error
}
