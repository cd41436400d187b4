package driven

import (
	"context"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

// ImpactSource fetches live field-outcome records for ingestion.
// Implementations wrap third-party open-data APIs.
type ImpactSource interface {
	// Sectors returns the sector tags this source can fetch, in a
	// stable order.
	Sectors() []string

	// Fetch returns the outcome records for one sector.
	Fetch(ctx context.Context, sector string) ([]domain.ImpactRecord, error)
}
