package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

type memMerchantRepo struct {
	merchants map[string]*domain.Merchant
}

func (r *memMerchantRepo) Create(ctx context.Context, merchant *domain.Merchant) error {
	r.merchants[merchant.ID] = merchant
	return nil
}

func (r *memMerchantRepo) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	merchant, ok := r.merchants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return merchant, nil
}

func (r *memMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	for _, merchant := range r.merchants {
		if merchant.Email == email {
			return merchant, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newMerchantService() *MerchantService {
	return NewMerchantService(
		config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4},
		&memMerchantRepo{merchants: map[string]*domain.Merchant{}},
	)
}

func TestMerchantRegister_IssuesToken(t *testing.T) {
	svc := newMerchantService()

	merchant, token, _, err := svc.Register(context.Background(), "Asha", " Asha@Example.com ", "999", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", merchant.Email, "email is normalized")
	assert.NotEmpty(t, merchant.ID)
	assert.NotEqual(t, "hunter22", merchant.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, merchant.ID, claims.MerchantID)
}

func TestMerchantRegister_DuplicateEmailConflicts(t *testing.T) {
	svc := newMerchantService()

	_, _, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "Other", "ASHA@example.com", "", "different")
	require.Error(t, err)
	assert.Equal(t, 409, httpStatusOf(err))
}

func TestMerchantLogin(t *testing.T) {
	svc := newMerchantService()

	registered, _, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "", "hunter22")
	require.NoError(t, err)

	merchant, token, _, err := svc.Login(context.Background(), "asha@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, merchant.ID)
	assert.NotEmpty(t, token)

	_, _, _, err = svc.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, httpStatusOf(err))

	_, _, _, err = svc.Login(context.Background(), "ghost@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, 401, httpStatusOf(err))
}
