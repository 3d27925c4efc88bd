package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/homedash/homedash-backend/internal/dto"
	"github.com/homedash/homedash-backend/internal/providers"
	"github.com/homedash/homedash-backend/internal/stores"
)

type AuthHandler struct {
	store *stores.AuthStore
}

func NewAuthHandler(store *stores.AuthStore) *AuthHandler {
	return &AuthHandler{store: store}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.store.SignUp(c.UserContext(), req.Email, req.Password); err != nil {
		if errors.Is(err, providers.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(h.authResponse(c))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.store.SignIn(c.UserContext(), req.Email, req.Password); err != nil {
		if errors.Is(err, providers.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(h.authResponse(c))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.store.SignOut(c.UserContext()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session handles GET /api/auth/session. It re-runs the startup session
// check, so an expired session flips the response to anonymous.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	if err := h.store.LoadUser(c.UserContext()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.SessionResponse{
		IsAuthenticated: h.store.IsAuthenticated(),
		User:            h.store.User(),
	})
}

// ClearError handles DELETE /api/auth/error
func (h *AuthHandler) ClearError(c *fiber.Ctx) error {
	h.store.ClearError()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) authResponse(c *fiber.Ctx) dto.AuthResponse {
	token, err := h.store.IssueToken()
	if err != nil {
		// Only reachable when sign-in raced a sign-out; the client retries.
		token = ""
	}
	resp := dto.AuthResponse{AccessToken: token}
	if user := h.store.User(); user != nil {
		resp.User = *user
	}
	return resp
}
