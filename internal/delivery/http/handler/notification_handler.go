package handler

import (
	"founder-match/internal/domain/notification"
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/notifications")
	grp.Get("/", h.List)
	grp.Get("/unread-count", h.UnreadCount)
	grp.Put("/read-all", h.MarkAllRead)
	grp.Put("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if items == nil {
		items = []notification.Notification{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *NotificationHandler) UnreadCount(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	n, err := h.uc.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"count": n})
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "Invalid notification id")
	if err != nil {
		return err
	}

	n, err := h.uc.MarkRead(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, n)
}

func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.MarkAllRead(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int64{"updated": updated})
}
