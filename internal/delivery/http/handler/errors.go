package handler

import (
	"errors"

	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/pkg/response"
	"founder-match/internal/pkg/validation"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError turns a usecase error into an AppError by its kind. The
// message of the concrete error is shown for client errors; server errors are
// reported generically by the error middleware.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var data any
	var verr *validation.Error
	if errors.As(err, &verr) {
		data = verr.Fields
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, clientMessage(err), data, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, clientMessage(err), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, clientMessage(err), nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, clientMessage(err), nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, clientMessage(err), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// clientMessage picks the most specific known message out of a wrapped chain.
func clientMessage(err error) string {
	known := []error{
		usecase.ErrInvalidMatchAction,
		usecase.ErrProfileRequired,
		usecase.ErrMatchNotFound,
		usecase.ErrProfileNotFound,
		usecase.ErrNotificationNotFound,
		usecase.ErrNotMatchParticipant,
		usecase.ErrMatchUpdateConflict,
		usecase.ErrSkillAlreadyExists,
		usecase.ErrRefreshTokenExpired,
		usecase.ErrInvalidRefreshToken,
		usecase.ErrMessageRequired,
		usecase.ErrMessageTooLong,
		usecase.ErrMatchClosed,
		usecase.ErrInvalidInput,
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ""
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func uuidParam(c fiber.Ctx, name, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, message, nil, err)
	}
	return id, nil
}
