package handler

import (
	"strings"

	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/domain/skill"
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// SkillHandler serves the shared skill catalogue profiles pick from.
type SkillHandler struct {
	uc usecase.SkillUsecase
}

type skillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type createSkillRequest struct {
	Name string `json:"name"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
}

// List returns the catalogue sorted by name. ?q= narrows it to names that
// contain the normalized query, for autocomplete.
func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	q := skill.NormalizeName(c.Query("q"))
	res := make([]skillResponse, 0, len(items))
	for _, it := range items {
		if q != "" && !strings.Contains(it.Name, q) {
			continue
		}
		res = append(res, skillResponse{ID: it.ID, Name: it.Name})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if skill.NormalizeName(req.Name) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill name is required", nil, nil)
	}

	created, err := h.uc.AddSkill(c.Context(), req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageSkillCreated, skillResponse{ID: created.ID, Name: created.Name})
}
