package domain

import "time"

// FlashSaleCampaign is a promotion document. Doc carries the raw campaign
// payload: a "campaign" sub-record with startsAt/endsAt, and optionally a
// "business" sub-record with cutoffAt. Timestamp values inside Doc keep
// whatever shape they were written with; normalization happens at read time.
type FlashSaleCampaign struct {
	ID        string
	Status    string
	Doc       map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sub returns a nested map under key, or nil.
func (c *FlashSaleCampaign) Sub(key string) map[string]any {
	if c.Doc == nil {
		return nil
	}
	m, _ := c.Doc[key].(map[string]any)
	return m
}

// CampaignWindow names the conceptual applicability states of a campaign at
// a given instant. Never persisted; derived by comparing now against the
// stored window.
type CampaignWindow int

const (
	WindowNotStarted CampaignWindow = iota
	WindowActiveWithinCutoff
	WindowActivePastCutoff
	WindowEnded
)
