package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. The subject id is always
// carried explicitly from here on; nothing downstream reads ambient state.
type Principal struct {
	Merchant *domain.Merchant
}

// SubjectID returns the caller's stable subject identifier.
func (p *Principal) SubjectID() string {
	if p == nil || p.Merchant == nil {
		return ""
	}
	return p.Merchant.ID
}

// AuthMiddleware validates bearer tokens and loads principals. Absence or
// invalidity of the token yields 401 before any other validation runs.
type AuthMiddleware struct {
	tokens    *TokenManager
	merchants repository.MerchantRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, merchants repository.MerchantRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, merchants: merchants}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	merchant, err := m.merchants.GetByID(c.Context(), claims.MerchantID)
	if err != nil {
		if repository.IsNoRows(err) {
			return apperrors.NewUnauthorized("merchant not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Merchant: merchant})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
