package middleware

import (
	"fmt"

	"founder-match/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// RequireRole admits only callers whose token carries one of roles. It must
// run after the auth middleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c fiber.Ctx) error {
		role := Role(c)
		if role == "" {
			metrics.AuthRejectionsTotal.WithLabelValues("no_role").Inc()
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if _, ok := allowed[role]; !ok {
			metrics.AuthRejectionsTotal.WithLabelValues("forbidden_role").Inc()
			return NewAppError(fiber.StatusForbidden, fmt.Sprintf("User role %s is not authorized to access this route", role), nil, nil)
		}
		return c.Next()
	}
}
