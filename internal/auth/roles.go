package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

// RequireAuthenticated ensures a principal is attached. Per-record
// permission checks stay in the domain guards; this only rejects anonymous
// callers before a mutation handler runs.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
