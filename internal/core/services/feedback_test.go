package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_Record(t *testing.T) {
	store := &mockFeedbackStore{}
	svc := NewFeedbackService(store)

	stamp := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	err := svc.Record(context.Background(), "PM-KISAN", "Punjab", "Payments arrive late.")
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	assert.Equal(t, stamp, store.entries[0].Timestamp)
	assert.Equal(t, "PM-KISAN", store.entries[0].Policy)
	assert.Equal(t, "Punjab", store.entries[0].State)
	assert.Equal(t, "Payments arrive late.", store.entries[0].Opinion)
}

func TestFeedbackService_RecordError(t *testing.T) {
	appendErr := errors.New("disk full")
	svc := NewFeedbackService(&mockFeedbackStore{appendErr: appendErr})

	err := svc.Record(context.Background(), "p", "s", "o")
	assert.ErrorIs(t, err, appendErr)
}

func TestFeedbackService_List(t *testing.T) {
	store := &mockFeedbackStore{}
	svc := NewFeedbackService(store)

	require.NoError(t, svc.Record(context.Background(), "A", "Goa", "first"))
	require.NoError(t, svc.Record(context.Background(), "B", "Goa", "second"))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Opinion)
	assert.Equal(t, "second", entries[1].Opinion)
}

func TestStatusService(t *testing.T) {
	store := newMockVectorStore()
	store.counts["policy_memory"] = 200
	store.counts["policy_impact"] = 1350

	status, err := NewStatusService(store).Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, status.PoliciesIndexed)
	assert.Equal(t, 1350, status.ImpactsIndexed)
	assert.Equal(t, "/tmp/mock-store", status.StoragePath)
}
