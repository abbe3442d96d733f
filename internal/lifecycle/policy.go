package lifecycle

import "github.com/rijan-rayamajhi/gem-business/internal/domain"

// Policy captures the status vocabulary of one resource kind: the recognized
// values, the subset at which owner-initiated edits and deletes are refused,
// the default initial value, and the values a creator may choose at creation.
type Policy struct {
	Kind      domain.Kind
	Valid     []domain.Status
	Locked    []domain.Status
	Initial   domain.Status
	Creatable []domain.Status
}

var policies = map[domain.Kind]Policy{
	domain.KindListing: {
		Kind:      domain.KindListing,
		Valid:     []domain.Status{domain.StatusDraft, domain.StatusPending, domain.StatusVerified, domain.StatusRejected},
		Locked:    []domain.Status{domain.StatusPending, domain.StatusVerified},
		Initial:   domain.StatusDraft,
		Creatable: []domain.Status{domain.StatusDraft, domain.StatusPending},
	},
	domain.KindEvent: {
		Kind:      domain.KindEvent,
		Valid:     []domain.Status{domain.StatusDraft, domain.StatusPending, domain.StatusVerified, domain.StatusRejected},
		Locked:    []domain.Status{domain.StatusPending, domain.StatusVerified},
		Initial:   domain.StatusDraft,
		Creatable: []domain.Status{domain.StatusDraft, domain.StatusPending},
	},
	domain.KindBusiness: {
		Kind:      domain.KindBusiness,
		Valid:     []domain.Status{domain.StatusDraft, domain.StatusSubmitted, domain.StatusPending, domain.StatusVerified, domain.StatusRejected},
		Locked:    []domain.Status{domain.StatusSubmitted, domain.StatusPending, domain.StatusVerified},
		Initial:   domain.StatusDraft,
		Creatable: []domain.Status{domain.StatusDraft},
	},
	domain.KindKYC: {
		Kind:      domain.KindKYC,
		Valid:     []domain.Status{domain.StatusPending, domain.StatusVerified, domain.StatusRejected},
		Locked:    []domain.Status{domain.StatusPending, domain.StatusVerified},
		Initial:   domain.StatusPending,
		Creatable: []domain.Status{domain.StatusPending},
	},
}

// PolicyFor returns the policy of a kind. Unknown kinds get an empty policy
// that recognizes no status, so every status check fails closed.
func PolicyFor(kind domain.Kind) Policy {
	return policies[kind]
}

// Recognizes reports whether s is part of the kind's vocabulary.
func (p Policy) Recognizes(s domain.Status) bool {
	for _, v := range p.Valid {
		if v == s {
			return true
		}
	}
	return false
}

// IsLocked reports whether s refuses owner-initiated mutation.
func (p Policy) IsLocked(s domain.Status) bool {
	for _, v := range p.Locked {
		if v == s {
			return true
		}
	}
	return false
}

// CreatableWith reports whether a creator may request s as the initial status.
func (p Policy) CreatableWith(s domain.Status) bool {
	for _, v := range p.Creatable {
		if v == s {
			return true
		}
	}
	return false
}
