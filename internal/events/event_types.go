package events

import (
	"time"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// EventType enumerates audit event kinds.
type EventType string

const (
	EventResourceCreated       EventType = "resource.created"
	EventResourceUpdated       EventType = "resource.updated"
	EventResourceDeleted       EventType = "resource.deleted"
	EventResourceStatusChanged EventType = "resource.status_changed"
	EventKYCSubmitted          EventType = "kyc.submitted"
	EventCampaignResolved      EventType = "flashsale.campaign_resolved"
	EventCutoffRefused         EventType = "flashsale.cutoff_refused"
)

// Event is an audit record published by services after a successful write
// (and for the flash-sale resolutions worth tracing).
type Event struct {
	ID           string
	Type         EventType
	ResourceKind domain.Kind
	ResourceID   string
	OwnerID      string
	Payload      any
	Timestamp    time.Time
}

// StatusChangedPayload records a lifecycle transition.
type StatusChangedPayload struct {
	OldStatus domain.Status
	NewStatus domain.Status
}

// CampaignResolvedPayload records which campaign was selected as active.
type CampaignResolvedPayload struct {
	CampaignID string
	FromCache  bool
}
