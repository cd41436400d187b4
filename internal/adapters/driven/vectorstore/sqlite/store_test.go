package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "policy_memory", 3))
	require.NoError(t, s.Upsert(ctx, "policy_memory", []driven.Point{
		{ID: "1", Vector: []float32{1, 0, 0}, Payload: map[string]any{
			"id": float64(1), "title": "PM-KISAN", "text": "Income support.",
			"sector": "Agriculture", "state": "Punjab",
		}},
	}))

	point, err := s.Retrieve(ctx, "policy_memory", "1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, point.Vector)
	assert.Equal(t, "Punjab", point.Payload["state"])

	// Payload decodes into a typed policy at the boundary.
	policy, err := domain.PolicyFromPayload(point.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(1), policy.ID)
}

func TestStore_RetrieveMissing(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "policy_memory", 3))
	_, err := s.Retrieve(ctx, "policy_memory", "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_QueryFilterAndOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "policy_impact", 3))
	require.NoError(t, s.Upsert(ctx, "policy_impact", []driven.Point{
		{ID: "a", Vector: []float32{1, 0, 0}, Payload: map[string]any{"sector": "Energy", "state": "Gujarat"}},
		{ID: "b", Vector: []float32{0.5, 0.5, 0}, Payload: map[string]any{"sector": "Energy", "state": "Bihar"}},
		{ID: "c", Vector: []float32{1, 0, 0}, Payload: map[string]any{"sector": "Finance", "state": "Goa"}},
	}))

	filter := driven.Filter{Must: []driven.Condition{{Key: "sector", Value: "Energy"}}}
	hits, err := s.Query(ctx, "policy_impact", []float32{1, 0, 0}, filter, 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ID)
	assert.Equal(t, "b", hits[1].ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestStore_UpsertReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "policy_memory", 2))
	require.NoError(t, s.Upsert(ctx, "policy_memory", []driven.Point{
		{ID: "1", Vector: []float32{1, 0}, Payload: map[string]any{"state": "Goa"}},
	}))
	require.NoError(t, s.Upsert(ctx, "policy_memory", []driven.Point{
		{ID: "1", Vector: []float32{0, 1}, Payload: map[string]any{"state": "Kerala"}},
	}))

	n, err := s.Count(ctx, "policy_memory")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	point, err := s.Retrieve(ctx, "policy_memory", "1")
	require.NoError(t, err)
	assert.Equal(t, "Kerala", point.Payload["state"])
}

func TestStore_DimensionEnforced(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "policy_memory", 3))
	err := s.Upsert(ctx, "policy_memory", []driven.Point{
		{ID: "1", Vector: []float32{1, 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_MissingCollection(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	err := s.Upsert(ctx, "nope", []driven.Point{{ID: "1", Vector: []float32{1}}})
	assert.ErrorIs(t, err, domain.ErrCollectionMissing)

	_, err = s.Query(ctx, "nope", []float32{1}, driven.Filter{}, 1)
	assert.ErrorIs(t, err, domain.ErrCollectionMissing)
}

func TestStore_DropCollection(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "policy_memory", 2))
	require.NoError(t, s.Upsert(ctx, "policy_memory", []driven.Point{
		{ID: "1", Vector: []float32{1, 0}, Payload: map[string]any{}},
	}))
	require.NoError(t, s.DropCollection(ctx, "policy_memory"))

	n, err := s.Count(ctx, "policy_memory")
	require.NoError(t, err)
	assert.Zero(t, n)

	// Recreate at a different dimension after the drop.
	require.NoError(t, s.EnsureCollection(ctx, "policy_memory", 4))
	err = s.Upsert(ctx, "policy_memory", []driven.Point{
		{ID: "1", Vector: []float32{1, 0, 0, 0}, Payload: map[string]any{}},
	})
	assert.NoError(t, err)
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.14159, 0}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
}
