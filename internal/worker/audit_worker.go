package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/observability"
)

// StartAuditWorker subscribes to every audit event type, logging each event
// and counting it in the metrics registry.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	handler := func(ctx context.Context, event events.Event) error {
		metrics.RecordEvent(string(event.Type))
		logger.Info("audit event",
			zap.String("type", string(event.Type)),
			zap.String("kind", string(event.ResourceKind)),
			zap.String("resource_id", event.ResourceID),
			zap.String("owner_id", event.OwnerID),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventResourceCreated,
		events.EventResourceUpdated,
		events.EventResourceDeleted,
		events.EventResourceStatusChanged,
		events.EventKYCSubmitted,
		events.EventCampaignResolved,
		events.EventCutoffRefused,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
