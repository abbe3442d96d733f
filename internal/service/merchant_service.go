package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rijan-rayamajhi/gem-business/internal/auth"
	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// MerchantService handles merchant onboarding and login.
type MerchantService struct {
	merchants repository.MerchantRepository
	tokens    *auth.TokenManager
	cfg       config.AuthConfig
}

// NewMerchantService constructs the service.
func NewMerchantService(cfg config.AuthConfig, merchants repository.MerchantRepository) *MerchantService {
	return &MerchantService{
		merchants: merchants,
		tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cfg:       cfg,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *MerchantService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a merchant account and issues an access token.
func (s *MerchantService) Register(ctx context.Context, name, email, phone, password string) (*domain.Merchant, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.merchants.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", time.Time{}, apperrors.NewConflict("an account with this email already exists", nil)
	} else if err != nil && !repository.IsNoRows(err) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	merchant := &domain.Merchant{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
	}
	if err := s.merchants.Create(ctx, merchant); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(merchant.ID, merchant.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return merchant, token, expiresAt, nil
}

// Login verifies credentials and issues an access token.
func (s *MerchantService) Login(ctx context.Context, email, password string) (*domain.Merchant, string, time.Time, error) {
	merchant, err := s.merchants.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(merchant.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(merchant.ID, merchant.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return merchant, token, expiresAt, nil
}
