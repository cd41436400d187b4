// Package file provides a JSON-file implementation of the feedback
// store. All feedback lives in a single append-only JSON array on
// disk, small enough to rewrite whole on every append.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FeedbackStore = (*Store)(nil)

// Store is a file-based implementation of driven.FeedbackStore.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// entry is the on-disk representation of one feedback record.
type entry struct {
	Timestamp string `json:"timestamp"`
	Policy    string `json:"policy"`
	State     string `json:"state"`
	Opinion   string `json:"opinion"`
}

// NewStore creates a feedback store backed by a JSON file.
// If dir is empty, defaults to ~/.policypulse.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".policypulse")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return &Store{
		filePath: filepath.Join(dir, "feedback_logs.json"),
	}, nil
}

// Append adds one feedback entry to the log.
func (s *Store) Append(_ context.Context, fb domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}

	entries = append(entries, entry{
		Timestamp: fb.Timestamp.UTC().Format(time.RFC3339),
		Policy:    fb.Policy,
		State:     fb.State,
		Opinion:   fb.Opinion,
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding feedback log: %w", err)
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// List returns all recorded feedback entries, oldest first.
func (s *Store) List(_ context.Context) ([]domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Feedback, 0, len(entries))
	for _, e := range entries {
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			// Tolerate hand-edited timestamps rather than losing the entry.
			ts = time.Time{}
		}
		out = append(out, domain.Feedback{
			Timestamp: ts,
			Policy:    e.Policy,
			State:     e.State,
			Opinion:   e.Opinion,
		})
	}
	return out, nil
}

// read loads the on-disk log (caller must hold lock). A missing or
// corrupt file yields an empty log so a bad write never bricks the store.
func (s *Store) read() ([]entry, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// Path returns the feedback log file path.
func (s *Store) Path() string {
	return s.filePath
}
