package handler

import (
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// AnalyticsHandler serves the admin dashboard. Role checks happen in the
// router group it is mounted on.
type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/analytics", h.Dashboard)
}

func (h *AnalyticsHandler) Dashboard(c fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageAnalyticsRetrieved, d)
}
