package handler

import (
	"founder-match/internal/delivery/http/dto"
	"founder-match/internal/domain/match"
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	generator usecase.MatchGeneratorUsecase
	query     usecase.MatchQueryUsecase
	lifecycle usecase.MatchLifecycleUsecase
}

func NewMatchHandler(
	generator usecase.MatchGeneratorUsecase,
	query usecase.MatchQueryUsecase,
	lifecycle usecase.MatchLifecycleUsecase,
) *MatchHandler {
	return &MatchHandler{generator: generator, query: query, lifecycle: lifecycle}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/matches")
	grp.Post("/generate", h.Generate)
	grp.Get("/", h.List)
	grp.Put("/:id/accept", h.Accept)
	grp.Put("/:id/reject", h.Reject)
}

func (h *MatchHandler) Generate(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.generator.Generate(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageMatchesGenerated, res)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.query.ListForUser(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if items == nil {
		items = []usecase.MatchView{}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MatchHandler) Accept(c fiber.Ctx) error {
	return h.act(c, match.ActionAccept)
}

func (h *MatchHandler) Reject(c fiber.Ctx) error {
	return h.act(c, match.ActionReject)
}

func (h *MatchHandler) act(c fiber.Ctx, action match.Action) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	matchID, err := uuidParam(c, "id", "Invalid match id")
	if err != nil {
		return err
	}

	m, err := h.lifecycle.Act(c.Context(), userID, matchID, action)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageMatchUpdated, dto.NewMatchResponse(m, userID))
}
