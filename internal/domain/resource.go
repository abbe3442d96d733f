package domain

import "time"

// Kind identifies a resource collection.
type Kind string

const (
	KindBusiness Kind = "business"
	KindListing  Kind = "listing"
	KindEvent    Kind = "event"
	KindKYC      Kind = "kyc"
)

// Status enumerates lifecycle states. Each Kind recognizes its own subset.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusRejected  Status = "rejected"
)

// Resource is the shared shape of every owned, status-bearing document:
// business profile, catalogue listing, event and KYC record. Type-specific
// fields (title, description, media URLs, ...) live in Attrs and are written
// with field-merge semantics.
type Resource struct {
	ID        string
	Kind      Kind
	OwnerID   string
	Status    Status
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
