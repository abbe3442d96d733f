package flashsale

import (
	"sort"
	"strings"
	"time"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// candidate is a campaign whose window parsed successfully.
type candidate struct {
	campaign *domain.FlashSaleCampaign
	startsAt time.Time
	endsAt   time.Time
}

// SelectActive picks the campaign that applies at now, or nil when none does.
// Candidates must be tagged active (case-insensitive) and carry a well-formed
// startsAt/endsAt window containing now (closed on both ends). Campaigns with
// malformed or missing instants are dropped, never reported as errors. When
// several windows overlap, the most recently started campaign wins: later
// promotions supersede earlier ones.
func SelectActive(campaigns []domain.FlashSaleCampaign, now time.Time) *domain.FlashSaleCampaign {
	var active []candidate
	for i := range campaigns {
		c := &campaigns[i]
		if !strings.EqualFold(c.Status, "active") {
			continue
		}
		window := c.Sub("campaign")
		if window == nil {
			continue
		}
		startsAt, ok := ParseInstant(window["startsAt"])
		if !ok {
			continue
		}
		endsAt, ok := ParseInstant(window["endsAt"])
		if !ok {
			continue
		}
		if now.Before(startsAt) || now.After(endsAt) {
			continue
		}
		active = append(active, candidate{campaign: c, startsAt: startsAt, endsAt: endsAt})
	}
	if len(active) == 0 {
		return nil
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].startsAt.After(active[j].startsAt)
	})
	return active[0].campaign
}

// CutoffAt extracts the submission cutoff of a campaign: business.cutoffAt
// when present, top-level cutoffAt as fallback.
func CutoffAt(campaign *domain.FlashSaleCampaign) (time.Time, bool) {
	if campaign == nil {
		return time.Time{}, false
	}
	if business := campaign.Sub("business"); business != nil {
		if t, ok := ParseInstant(business["cutoffAt"]); ok {
			return t, true
		}
	}
	if campaign.Doc != nil {
		if t, ok := ParseInstant(campaign.Doc["cutoffAt"]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// PastCutoff reports whether now is strictly after the campaign's cutoff.
// A campaign without a cutoff never blocks.
func PastCutoff(campaign *domain.FlashSaleCampaign, now time.Time) bool {
	cutoff, ok := CutoffAt(campaign)
	if !ok {
		return false
	}
	return now.After(cutoff)
}

// Classify places a campaign on its conceptual timeline at now. Campaigns
// with an unreadable window classify as ended.
func Classify(campaign *domain.FlashSaleCampaign, now time.Time) domain.CampaignWindow {
	window := campaign.Sub("campaign")
	startsAt, okStart := ParseInstant(window["startsAt"])
	endsAt, okEnd := ParseInstant(window["endsAt"])
	if !okStart || !okEnd {
		return domain.WindowEnded
	}
	switch {
	case now.Before(startsAt):
		return domain.WindowNotStarted
	case now.After(endsAt):
		return domain.WindowEnded
	case PastCutoff(campaign, now):
		return domain.WindowActivePastCutoff
	default:
		return domain.WindowActiveWithinCutoff
	}
}
