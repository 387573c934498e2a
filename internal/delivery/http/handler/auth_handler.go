package handler

import (
	"errors"
	"strings"

	"founder-match/internal/delivery/http/dto"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/domain/user"
	"founder-match/internal/pkg/response"
	"founder-match/internal/pkg/validation"
	"founder-match/internal/usecase"
	ucauth "founder-match/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	User         *dto.UserResponse `json:"user,omitempty"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, access, refresh, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageRegistered, newTokenResponse(&usr, access, refresh))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an email and password", nil, nil)
	}

	usr, access, refresh, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageLoggedIn, newTokenResponse(&usr, access, refresh))
}

// Refresh rotates the token pair. The refresh token comes from the bearer
// header, or from the JSON body for clients that keep it out of headers.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok && len(c.Body()) > 0 {
		var req refreshRequest
		if err := c.Bind().Body(&req); err == nil {
			tok = strings.TrimSpace(req.RefreshToken)
		}
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageTokenRefreshed, newTokenResponse(nil, access, refresh))
}

func newTokenResponse(u *user.User, access, refresh string) tokenResponse {
	res := tokenResponse{AccessToken: access, RefreshToken: refresh}
	if u != nil {
		res.User = &dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		}
	}
	return res
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		var verr *validation.Error
		if errors.As(err, &verr) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
