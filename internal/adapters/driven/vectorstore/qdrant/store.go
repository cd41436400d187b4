// Package qdrant provides a vector store adapter for a Qdrant server
// over its REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:6333"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// BaseURL is the Qdrant REST endpoint (default: http://localhost:6333).
	BaseURL string

	// APIKey is an optional api-key header value.
	APIKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store talks to a Qdrant server.
type Store struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewStore creates a new Qdrant store.
func NewStore(cfg Config) *Store {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Store{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// pointID renders an identifier the way Qdrant expects: unsigned
// integers stay numeric, everything else is passed as a string (UUID).
func pointID(id string) any {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return n
	}
	return id
}

// filterBody renders a driven.Filter into Qdrant's filter JSON.
func filterBody(filter driven.Filter) map[string]any {
	if filter.Empty() {
		return nil
	}
	must := make([]map[string]any, len(filter.Must))
	for i, cond := range filter.Must {
		must[i] = map[string]any{
			"key":   cond.Key,
			"match": map[string]any{"value": cond.Value},
		}
	}
	return map[string]any{"must": must}
}

// EnsureCollection creates a collection with cosine distance if it does
// not already exist.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimensions,
			"distance": "Cosine",
		},
	}
	// PUT is idempotent for existing collections of the same shape.
	var resp struct {
		Status json.RawMessage `json:"status"`
	}
	if err := s.do(ctx, http.MethodPut, "/collections/"+name, body, &resp); err != nil {
		return fmt.Errorf("qdrant: create collection %s: %w", name, err)
	}
	return nil
}

// DropCollection removes a collection. Missing collections are ignored.
func (s *Store) DropCollection(ctx context.Context, name string) error {
	err := s.do(ctx, http.MethodDelete, "/collections/"+name, nil, nil)
	if err != nil {
		return fmt.Errorf("qdrant: drop collection %s: %w", name, err)
	}
	return nil
}

// Upsert inserts or replaces points in a collection.
func (s *Store) Upsert(ctx context.Context, name string, points []driven.Point) error {
	if len(points) == 0 {
		return nil
	}

	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":      pointID(p.ID),
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}

	body := map[string]any{"points": payload}
	if err := s.do(ctx, http.MethodPut, "/collections/"+name+"/points?wait=true", body, nil); err != nil {
		return fmt.Errorf("qdrant: upsert into %s: %w", name, err)
	}
	return nil
}

// retrieveResponse is the Qdrant points lookup response format.
type retrieveResponse struct {
	Result []struct {
		ID      json.RawMessage `json:"id"`
		Vector  []float32       `json:"vector"`
		Payload map[string]any  `json:"payload"`
	} `json:"result"`
}

// Retrieve returns the point with the given id.
func (s *Store) Retrieve(ctx context.Context, name, id string) (driven.Point, error) {
	body := map[string]any{
		"ids":          []any{pointID(id)},
		"with_payload": true,
		"with_vector":  true,
	}

	var resp retrieveResponse
	if err := s.do(ctx, http.MethodPost, "/collections/"+name+"/points", body, &resp); err != nil {
		return driven.Point{}, fmt.Errorf("qdrant: retrieve %s/%s: %w", name, id, err)
	}
	if len(resp.Result) == 0 {
		return driven.Point{}, domain.ErrNotFound
	}

	return driven.Point{
		ID:      id,
		Vector:  resp.Result[0].Vector,
		Payload: resp.Result[0].Payload,
	}, nil
}

// queryResponse is the Qdrant similarity query response format.
type queryResponse struct {
	Result struct {
		Points []struct {
			ID      json.RawMessage `json:"id"`
			Score   float64         `json:"score"`
			Payload map[string]any  `json:"payload"`
		} `json:"points"`
	} `json:"result"`
}

// Query returns the limit nearest neighbours, ordered highest first.
func (s *Store) Query(
	ctx context.Context, name string, vector []float32, filter driven.Filter, limit int,
) ([]driven.ScoredPoint, error) {
	body := map[string]any{
		"query":        vector,
		"limit":        limit,
		"with_payload": true,
	}
	if f := filterBody(filter); f != nil {
		body["filter"] = f
	}

	var resp queryResponse
	if err := s.do(ctx, http.MethodPost, "/collections/"+name+"/points/query", body, &resp); err != nil {
		return nil, fmt.Errorf("qdrant: query %s: %w", name, err)
	}

	hits := make([]driven.ScoredPoint, len(resp.Result.Points))
	for i, p := range resp.Result.Points {
		hits[i] = driven.ScoredPoint{
			Point: driven.Point{
				ID:      rawIDString(p.ID),
				Payload: p.Payload,
			},
			Score: p.Score,
		}
	}
	return hits, nil
}

// Count returns the number of points in a collection.
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	body := map[string]any{"exact": true}
	if err := s.do(ctx, http.MethodPost, "/collections/"+name+"/points/count", body, &resp); err != nil {
		return 0, fmt.Errorf("qdrant: count %s: %w", name, err)
	}
	return resp.Result.Count, nil
}

// Path returns empty: the data lives on the server.
func (s *Store) Path() string { return "" }

// Close releases resources.
func (s *Store) Close() error { return nil }

// rawIDString renders a Qdrant id (number or string) back to a string.
func rawIDString(raw json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber uint64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return strconv.FormatUint(asNumber, 10)
	}
	return string(raw)
}

// do sends one JSON request and decodes the response into out.
func (s *Store) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("status %d: failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
