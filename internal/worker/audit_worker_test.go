package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/observability"
)

func TestAuditWorker_CountsPublishedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	StartAuditWorker(dispatcher, zap.NewNop(), metrics)

	publish := func(eventType events.EventType) {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			ID:           "ev-1",
			Type:         eventType,
			ResourceKind: domain.KindListing,
			ResourceID:   "listing-1",
			OwnerID:      "merchant-1",
			Timestamp:    time.Now(),
		}))
	}

	publish(events.EventResourceCreated)
	publish(events.EventResourceCreated)
	publish(events.EventResourceStatusChanged)

	assert.Equal(t, int64(2), metrics.EventCount(string(events.EventResourceCreated)))
	assert.Equal(t, int64(1), metrics.EventCount(string(events.EventResourceStatusChanged)))
	assert.Equal(t, int64(0), metrics.EventCount(string(events.EventResourceDeleted)))
}

func TestAuditWorker_NilDispatcherIsNoop(t *testing.T) {
	StartAuditWorker(nil, zap.NewNop(), observability.NewMetrics())
}
