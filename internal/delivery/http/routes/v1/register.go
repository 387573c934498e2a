package v1

import (
	"founder-match/internal/delivery/http/handler"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Profile        *handler.ProfileHandler
	Skill          *handler.SkillHandler
	Match          *handler.MatchHandler
	Notification   *handler.NotificationHandler
	Message        *handler.MessageHandler
	Analytics      *handler.AnalyticsHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	if h.AuthMiddleware == nil {
		return
	}
	protected := r.Group("", h.AuthMiddleware.Middleware())

	if h.User != nil {
		h.User.RegisterRoutes(protected.Group("/users"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(protected)
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(protected)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(protected)
	}
	if h.Notification != nil {
		h.Notification.RegisterRoutes(protected)
	}
	if h.Message != nil {
		h.Message.RegisterRoutes(protected)
	}
	if h.Analytics != nil {
		h.Analytics.RegisterRoutes(protected.Group("/admin", middleware.RequireRole(string(user.RoleAdmin))))
	}
}
