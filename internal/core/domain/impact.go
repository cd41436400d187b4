package domain

import (
	"encoding/json"
	"fmt"
)

// ImpactRecord represents one observed field-outcome data point tied to
// a sector and region. Impact records are created during ingestion and
// are read-only afterwards.
type ImpactRecord struct {
	// Sector is the categorical sector tag. Always present.
	Sector string

	// Region is the state the observation refers to. Granularity may
	// differ from a policy's scope; defaults to ScopeNational.
	Region string

	// Raw is the opaque structured observation as received from the
	// upstream dataset.
	Raw map[string]any
}

// EmbeddingText renders the record into the canonical form used for
// fingerprint computation.
func (r ImpactRecord) EmbeddingText() string {
	return fmt.Sprintf("Sector: %s | State: %s | Data: %s", r.Sector, r.Region, renderRaw(r.Raw))
}

// Payload renders the record as a store attribute payload.
func (r ImpactRecord) Payload() map[string]any {
	return map[string]any{
		"state":  r.Region,
		"sector": r.Sector,
		"raw":    r.Raw,
		"type":   "live_impact",
	}
}

// Summary renders the raw observation as display text.
// Records without an observation read as "Positive".
func (r ImpactRecord) Summary() string {
	if len(r.Raw) == 0 {
		return "Positive"
	}
	return renderRaw(r.Raw)
}

// ImpactFromPayload validates a store payload into a typed ImpactRecord.
func ImpactFromPayload(payload map[string]any) (ImpactRecord, error) {
	sector := payloadString(payload, "sector", "")
	if sector == "" {
		return ImpactRecord{}, fmt.Errorf("%w: impact payload missing sector", ErrInvalidInput)
	}

	rec := ImpactRecord{
		Sector: sector,
		Region: payloadString(payload, "state", ScopeNational),
	}
	if raw, ok := payload["raw"].(map[string]any); ok {
		rec.Raw = raw
	}
	return rec, nil
}

// renderRaw serialises an observation for embedding and display.
func renderRaw(raw map[string]any) string {
	if len(raw) == 0 {
		return "{}"
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(data)
}
