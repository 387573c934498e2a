package handler

import (
	"strconv"

	"founder-match/internal/delivery/http/dto"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultProfileLimit = 20
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/profiles")
	grp.Get("/", h.List)
	grp.Get("/me", h.GetMine)
	grp.Put("/me", h.UpsertMine)
	grp.Get("/user/:id", h.GetByUserID)
}

func (h *ProfileHandler) GetMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

// GetByUserID shows another founder's profile without contact details.
func (h *ProfileHandler) GetByUserID(c fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}
	userID, err := uuidParam(c, "id", "Invalid user id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	p.PhoneNumber = ""
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) UpsertMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req usecase.ProfileInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Upsert(c.Context(), userID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageProfileSaved, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) List(c fiber.Ctx) error {
	limit, offset := defaultProfileLimit, 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
		}
		offset = v
	}

	items, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.ProfileResponse, 0, len(items))
	for _, p := range items {
		p.PhoneNumber = ""
		res = append(res, dto.NewProfileResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
