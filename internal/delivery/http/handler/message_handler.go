package handler

import (
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/domain/message"
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/messages")
	grp.Get("/unread-count", h.UnreadCount)
	grp.Get("/:matchId", h.Conversation)
	grp.Post("/:matchId", h.Send)
	grp.Put("/:matchId/read", h.MarkRead)
}

func (h *MessageHandler) Conversation(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	matchID, err := uuidParam(c, "matchId", "Invalid match id")
	if err != nil {
		return err
	}

	items, err := h.uc.Conversation(c.Context(), userID, matchID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if items == nil {
		items = []message.Message{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageMessagesRetrieved, items)
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	matchID, err := uuidParam(c, "matchId", "Invalid match id")
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	sent, err := h.uc.Send(c.Context(), userID, matchID, req.Content)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageMessageSent, sent)
}

func (h *MessageHandler) UnreadCount(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	n, err := h.uc.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"unread_count": n})
}

func (h *MessageHandler) MarkRead(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	matchID, err := uuidParam(c, "matchId", "Invalid match id")
	if err != nil {
		return err
	}

	updated, err := h.uc.MarkRead(c.Context(), userID, matchID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageMessagesRead, map[string]int64{"updated": updated})
}
