package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/domain"
	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. ExternalID is the identity
// the guards compare against interview participant ids.
type Principal struct {
	ExternalID string
	Role       *domain.UserRole
}

// AuthMiddleware validates bearer tokens and attaches principals.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.principalFromHeader(c)
	if err != nil {
		return err
	}
	if principal == nil {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional attaches a principal when a valid token is present and lets the
// request through either way. List queries use this: an unauthenticated
// viewer gets an empty result rather than an error.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	principal, err := m.principalFromHeader(c)
	if err == nil && principal != nil {
		c.Locals(principalKey, principal)
	}
	return c.Next()
}

func (m *AuthMiddleware) principalFromHeader(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	return &Principal{ExternalID: claims.Subject, Role: claims.Role}, nil
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

// IdentityFromContext returns the caller's external id, or "" when the
// caller is unauthenticated.
func IdentityFromContext(c *fiber.Ctx) string {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return ""
	}
	return principal.ExternalID
}
