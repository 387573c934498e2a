package handler

import (
	"context"
	"errors"

	"founder-match/internal/delivery/http/dto"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/pkg/response"
	useruc "founder-match/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (useruc.Account, error)
}

type UserHandler struct {
	uc UserUsecase
}

func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	acc, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		if errors.Is(err, useruc.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := dto.UserResponse{
		ID:         acc.ID,
		Email:      acc.Email,
		Role:       string(acc.Role),
		HasProfile: acc.HasProfile,
		CreatedAt:  acc.CreatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
