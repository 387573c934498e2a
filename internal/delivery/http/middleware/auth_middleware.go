package middleware

import (
	"errors"
	"strings"

	"founder-match/internal/metrics"
	"founder-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware requires a bearer access token and stores the caller's id, email
// and role in the request locals.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := Authenticate(m.jwt, token)
		if err != nil {
			return err
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)
		return c.Next()
	}
}

// Authenticate validates an access token and maps failures to 401 AppErrors.
// The websocket upgrade path shares it with the HTTP middleware.
func Authenticate(svc jwt.Service, token string) (jwt.Claims, error) {
	claims, err := svc.ValidateAccessToken(token)
	switch {
	case err == nil && claims.UserID != uuid.Nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
	default:
		metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}
}

// UserID returns the authenticated caller, or false outside the auth middleware.
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func Role(c fiber.Ctx) string {
	role, _ := c.Locals(CtxRoleKey).(string)
	return role
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authHeader string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
