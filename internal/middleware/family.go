package middleware

import (
	"context"

	"casa360/internal/common/models"
	"casa360/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// FamilyMiddleware copies the family id from the validated claims into the
// request's user context so repositories can scope every query without
// reaching back into the HTTP layer. Must run after AuthMiddleware.
func FamilyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if ok && claims.FamilyID != "" {
			ctx := context.WithValue(c.UserContext(), models.FamilyIDKey, claims.FamilyID)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}
