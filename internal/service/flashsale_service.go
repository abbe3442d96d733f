package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/flashsale"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

const activeCampaignCacheKey = "flashsale:active"

// FlashSaleService resolves the currently active campaign and enforces the
// listing-submission cutoff. Resolution reads every campaign document and
// classifies them at the current instant; nothing is ever written back.
type FlashSaleService struct {
	campaigns  repository.CampaignRepository
	cache      *redis.Client
	cfg        config.FlashSaleConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// FlashSaleDependencies bundles collaborators. Cache may be nil.
type FlashSaleDependencies struct {
	CampaignRepo repository.CampaignRepository
	Cache        *redis.Client
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewFlashSaleService constructs the service.
func NewFlashSaleService(cfg config.FlashSaleConfig, deps FlashSaleDependencies) *FlashSaleService {
	return &FlashSaleService{
		campaigns:  deps.CampaignRepo,
		cache:      deps.Cache,
		cfg:        cfg,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// ActiveCampaign returns the campaign applying right now, or nil when none
// does. A cached resolution is served while its TTL lasts; cache failures
// degrade silently to direct selection.
func (s *FlashSaleService) ActiveCampaign(ctx context.Context) (*domain.FlashSaleCampaign, error) {
	if cached := s.fromCache(ctx); cached != nil {
		s.publishResolved(ctx, cached, true)
		return cached, nil
	}

	all, err := s.campaigns.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	active := flashsale.SelectActive(all, s.now())
	if active != nil {
		s.toCache(ctx, active)
		s.publishResolved(ctx, active, false)
	}
	return active, nil
}

// ListCampaigns returns every campaign document, newest first.
func (s *FlashSaleService) ListCampaigns(ctx context.Context) ([]domain.FlashSaleCampaign, error) {
	all, err := s.campaigns.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if all == nil {
		all = []domain.FlashSaleCampaign{}
	}
	return all, nil
}

// EnforceCutoff refuses new listing creation once the active campaign's
// cutoff has passed. When the rule itself cannot be evaluated the configured
// policy decides: fail open (default) logs and lets creation proceed, fail
// closed surfaces the evaluation error.
func (s *FlashSaleService) EnforceCutoff(ctx context.Context, callerID string) error {
	campaign, err := s.ActiveCampaign(ctx)
	if err != nil {
		if s.cfg.CutoffFailOpen {
			s.logger.Warn("cutoff rule could not be evaluated, proceeding without it", zap.Error(err))
			return nil
		}
		return apperrors.MapError(err)
	}
	if campaign == nil {
		return nil
	}
	if flashsale.PastCutoff(campaign, s.now()) {
		s.publishCutoffRefused(ctx, campaign, callerID)
		return apperrors.NewForbidden("catalogue submissions are closed for the current flash sale")
	}
	return nil
}

func (s *FlashSaleService) fromCache(ctx context.Context) *domain.FlashSaleCampaign {
	if s.cache == nil || s.cfg.CacheTTL() <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, activeCampaignCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var campaign domain.FlashSaleCampaign
	if err := json.Unmarshal(raw, &campaign); err != nil {
		return nil
	}
	// the cached copy may have outlived its window
	if flashsale.Classify(&campaign, s.now()) == domain.WindowNotStarted ||
		flashsale.Classify(&campaign, s.now()) == domain.WindowEnded {
		return nil
	}
	return &campaign
}

func (s *FlashSaleService) toCache(ctx context.Context, campaign *domain.FlashSaleCampaign) {
	if s.cache == nil || s.cfg.CacheTTL() <= 0 {
		return
	}
	raw, err := json.Marshal(campaign)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, activeCampaignCacheKey, raw, s.cfg.CacheTTL()).Err(); err != nil {
		s.logger.Debug("campaign cache write failed", zap.Error(err))
	}
}

func (s *FlashSaleService) publishResolved(ctx context.Context, campaign *domain.FlashSaleCampaign, fromCache bool) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventCampaignResolved,
		ResourceID: campaign.ID,
		Payload:    events.CampaignResolvedPayload{CampaignID: campaign.ID, FromCache: fromCache},
		Timestamp:  s.now(),
	})
}

func (s *FlashSaleService) publishCutoffRefused(ctx context.Context, campaign *domain.FlashSaleCampaign, callerID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventCutoffRefused,
		ResourceID: campaign.ID,
		OwnerID:    callerID,
		Timestamp:  s.now(),
	})
}
