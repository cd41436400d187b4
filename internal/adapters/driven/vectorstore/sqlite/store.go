// Package sqlite provides a persistent local vector store backed by
// SQLite. Fingerprints are stored as little-endian float32 blobs and
// similarity search is an exact cosine scan in process, which is plenty
// for a corpus of a few thousand policy records.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite vector store at the specified data
// directory. If dataDir is empty, defaults to ~/.policypulse/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".policypulse", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			dimensions INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS points (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			vector     BLOB NOT NULL,
			payload    TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		);
		CREATE INDEX IF NOT EXISTS idx_points_collection ON points(collection);
	`)
	return err
}

// EnsureCollection creates a collection if it does not already exist.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (name, dimensions) VALUES (?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		name, dimensions)
	if err != nil {
		return fmt.Errorf("ensure collection %s: %w", name, err)
	}
	return nil
}

// DropCollection removes a collection and all its points.
func (s *Store) DropCollection(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin drop: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE collection = ?`, name); err != nil {
		return fmt.Errorf("delete points: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return tx.Commit()
}

// dimensionsOf returns the configured dimension for a collection.
func (s *Store) dimensionsOf(ctx context.Context, name string) (int, error) {
	var dims int
	err := s.db.QueryRowContext(ctx,
		`SELECT dimensions FROM collections WHERE name = ?`, name).Scan(&dims)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", domain.ErrCollectionMissing, name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup collection %s: %w", name, err)
	}
	return dims, nil
}

// Upsert inserts or replaces points in a collection.
func (s *Store) Upsert(ctx context.Context, name string, points []driven.Point) error {
	dims, err := s.dimensionsOf(ctx, name)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO points (collection, id, vector, payload) VALUES (?, ?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET vector = excluded.vector, payload = excluded.payload`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if len(p.Vector) != dims {
			return fmt.Errorf("%w: point %s has %d dimensions, collection %s expects %d",
				domain.ErrInvalidInput, p.ID, len(p.Vector), name, dims)
		}
		payload, err := json.Marshal(p.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload for %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, name, p.ID, float32SliceToBytes(p.Vector), string(payload)); err != nil {
			return fmt.Errorf("upsert point %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Retrieve returns the point with the given id.
func (s *Store) Retrieve(ctx context.Context, name, id string) (driven.Point, error) {
	var (
		vector  []byte
		payload string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT vector, payload FROM points WHERE collection = ? AND id = ?`,
		name, id).Scan(&vector, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return driven.Point{}, domain.ErrNotFound
	}
	if err != nil {
		return driven.Point{}, fmt.Errorf("retrieve %s/%s: %w", name, id, err)
	}

	point := driven.Point{
		ID:     id,
		Vector: bytesToFloat32Slice(vector),
	}
	if err := json.Unmarshal([]byte(payload), &point.Payload); err != nil {
		return driven.Point{}, fmt.Errorf("decode payload for %s/%s: %w", name, id, err)
	}
	return point, nil
}

// Query scans the collection and returns the limit nearest neighbours
// by cosine similarity, ordered highest first.
func (s *Store) Query(
	ctx context.Context, name string, vector []float32, filter driven.Filter, limit int,
) ([]driven.ScoredPoint, error) {
	if _, err := s.dimensionsOf(ctx, name); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vector, payload FROM points WHERE collection = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer rows.Close()

	var hits []driven.ScoredPoint
	for rows.Next() {
		var (
			id      string
			blob    []byte
			payload string
		)
		if err := rows.Scan(&id, &blob, &payload); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}

		point := driven.Point{ID: id, Vector: bytesToFloat32Slice(blob)}
		if err := json.Unmarshal([]byte(payload), &point.Payload); err != nil {
			return nil, fmt.Errorf("decode payload for %s: %w", id, err)
		}
		if !filter.Empty() && !filter.MatchAll(point.Payload) {
			continue
		}

		hits = append(hits, driven.ScoredPoint{
			Point: point,
			Score: cosineSimilarity(vector, point.Vector),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
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
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM points WHERE collection = ?`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return n, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float32) float64 {
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
