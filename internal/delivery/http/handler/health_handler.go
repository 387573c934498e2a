package handler

import (
	"context"
	"time"

	"founder-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks   map[string]Pinger
	optional map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, optional: map[string]Pinger{}}
}

// WithOptional adds dependencies the service can run without. Their state is
// listed but never turns the response into a 503.
func (h *HealthHandler) WithOptional(checks map[string]Pinger) *HealthHandler {
	for name, p := range checks {
		h.optional[name] = p
	}
	return h
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports 200 when every required check passes and 503 otherwise,
// listing each dependency's state.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	deps := make(map[string]string, len(h.checks)+len(h.optional))
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}
	for name, p := range h.optional {
		if p == nil {
			continue
		}
		deps[name] = "up"
		if err := p.Ping(ctx); err != nil {
			deps[name] = "down"
		}
	}

	msg := response.MessageOK
	if status != fiber.StatusOK {
		msg = response.MessageDegraded
	}
	return response.Success(c, status, msg, map[string]any{"dependencies": deps})
}
