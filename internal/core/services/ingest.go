package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
	"github.com/policypulse-labs/policypulse-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService populates both fingerprint collections. Ingestion runs
// are serialised by the caller and never interleave with read traffic.
type IngestService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	source   driven.ImpactSource
	newID    func() string
}

// NewIngestService creates a new ingest service. The source parameter is
// optional (can be nil); without it SyncImpacts is a no-op. newID
// generates point identifiers for impact records (the wiring passes a
// UUID generator).
func NewIngestService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	source driven.ImpactSource,
	newID func() string,
) *IngestService {
	return &IngestService{
		embedder: embedder,
		store:    store,
		source:   source,
		newID:    newID,
	}
}

// Reset drops and recreates both collections at the configured
// dimension. Re-running ingest after a reset cannot produce duplicates.
func (s *IngestService) Reset(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrVectorStoreUnavailable
	}

	for _, collection := range []string{driven.CollectionPolicies, driven.CollectionImpacts} {
		if err := s.store.DropCollection(ctx, collection); err != nil {
			return fmt.Errorf("drop %s: %w", collection, err)
		}
		if err := s.store.EnsureCollection(ctx, collection, driven.VectorDimensions); err != nil {
			return fmt.Errorf("create %s: %w", collection, err)
		}
	}
	logger.Info("Collections reset at %d dimensions", driven.VectorDimensions)
	return nil
}

// LoadPolicies validates, embeds and stores policy records. Returns the
// number of policies stored. A single invalid policy aborts the load.
func (s *IngestService) LoadPolicies(ctx context.Context, policies []domain.Policy) (int, error) {
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return 0, domain.ErrVectorStoreUnavailable
	}

	logger.Section("Policy Ingestion")
	logger.Info("Ingesting %d policy records", len(policies))

	texts := make([]string, len(policies))
	for i, p := range policies {
		if err := p.Validate(); err != nil {
			return 0, err
		}
		texts[i] = p.EmbeddingText()
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed policies: %w", err)
	}

	points := make([]driven.Point, len(policies))
	for i, p := range policies {
		points[i] = driven.Point{
			ID:      strconv.FormatInt(p.ID, 10),
			Vector:  vectors[i],
			Payload: p.Payload(),
		}
	}

	if err := s.store.Upsert(ctx, driven.CollectionPolicies, points); err != nil {
		return 0, fmt.Errorf("upsert policies: %w", err)
	}
	return len(points), nil
}

// SyncImpacts pulls outcome records from the impact source sector by
// sector. A sector that fails to fetch is logged and skipped; the sync
// carries on with the rest.
func (s *IngestService) SyncImpacts(ctx context.Context) (int, error) {
	if s.source == nil {
		logger.Debug("No impact source configured, skipping sync")
		return 0, nil
	}
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return 0, domain.ErrVectorStoreUnavailable
	}

	logger.Section("Impact Sync")

	stored := 0
	for _, sector := range s.source.Sectors() {
		records, err := s.source.Fetch(ctx, sector)
		if err != nil {
			logger.Warn("Fetch %s failed: %v", sector, err)
			continue
		}
		logger.Info("Received %d records for %s", len(records), sector)

		points := make([]driven.Point, 0, len(records))
		for _, rec := range records {
			vector, err := s.embedder.Embed(ctx, rec.EmbeddingText())
			if err != nil {
				return stored, fmt.Errorf("embed impact record: %w", err)
			}
			points = append(points, driven.Point{
				ID:      s.newID(),
				Vector:  vector,
				Payload: rec.Payload(),
			})
		}

		if len(points) == 0 {
			continue
		}
		if err := s.store.Upsert(ctx, driven.CollectionImpacts, points); err != nil {
			return stored, fmt.Errorf("upsert impacts for %s: %w", sector, err)
		}
		stored += len(points)
	}

	logger.Info("Impact sync complete: %d records stored", stored)
	return stored, nil
}
