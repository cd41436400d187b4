package domain

import (
	"fmt"
	"strconv"
)

// ScopeNational is the sentinel region used when a record carries no
// specific state or union territory.
const ScopeNational = "National"

// Policy represents one governance policy record.
// Policies are created during ingestion and are read-only afterwards.
type Policy struct {
	// ID is the unique, stable identifier of the policy.
	ID int64

	// Title is the human-readable policy name.
	Title string

	// Text is the policy body. It is the semantic source used to
	// compute the policy's fingerprint vector.
	Text string

	// Sector is the categorical sector tag (e.g. "Agriculture").
	Sector string

	// Scope is the jurisdiction the policy applies to: a state name
	// or ScopeNational.
	Scope string
}

// Validate checks the invariants every stored policy must satisfy.
func (p Policy) Validate() error {
	if p.Text == "" {
		return fmt.Errorf("%w: policy %d has empty body text", ErrInvalidInput, p.ID)
	}
	if p.Sector == "" {
		return fmt.Errorf("%w: policy %d has no sector", ErrInvalidInput, p.ID)
	}
	return nil
}

// EmbeddingText renders the policy into the canonical form used for
// fingerprint computation. The scope is embedded alongside the content
// so that jurisdiction mentions in queries pull the right records.
func (p Policy) EmbeddingText() string {
	return fmt.Sprintf("Title: %s | State/Scope: %s | Content: %s", p.Title, p.Scope, p.Text)
}

// Payload renders the policy as a store attribute payload.
// The "state" key duplicates the scope for filterable metadata.
func (p Policy) Payload() map[string]any {
	return map[string]any{
		"id":     p.ID,
		"title":  p.Title,
		"text":   p.Text,
		"sector": p.Sector,
		"scope":  p.Scope,
		"state":  p.Scope,
	}
}

// PolicyFromPayload validates a store payload into a typed Policy.
// Store payloads are untrusted at this boundary: a payload that cannot
// be validated indicates a corrupt record, not a lenient default.
func PolicyFromPayload(payload map[string]any) (Policy, error) {
	id, err := payloadInt64(payload, "id")
	if err != nil {
		return Policy{}, err
	}

	p := Policy{
		ID:     id,
		Title:  payloadString(payload, "title", ""),
		Text:   payloadString(payload, "text", ""),
		Sector: payloadString(payload, "sector", ""),
		Scope:  payloadString(payload, "state", ScopeNational),
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// payloadString reads a string field, falling back when absent or mistyped.
func payloadString(payload map[string]any, key, fallback string) string {
	v, ok := payload[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// payloadInt64 reads an integer field across the numeric types JSON and
// TOML decoders produce.
func payloadInt64(payload map[string]any, key string) (int64, error) {
	v, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("%w: payload missing %q", ErrInvalidInput, key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: payload field %q is not numeric", ErrInvalidInput, key)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: payload field %q is not numeric", ErrInvalidInput, key)
	}
}
