package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/homedash/homedash-backend/internal/dto"
	"github.com/homedash/homedash-backend/internal/middleware"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/stores"
	"gorm.io/datatypes"
)

type ServicesHandler struct {
	store *stores.ServicesStore
}

func NewServicesHandler(store *stores.ServicesStore) *ServicesHandler {
	return &ServicesHandler{store: store}
}

// List handles GET /api/services
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ServicesResponse{
		Services:  h.store.Services(),
		IsLoading: h.store.IsLoading(),
		Error:     h.store.Err(),
	})
}

// Fetch handles POST /api/services/fetch. It re-reads the signed-in user's
// rows from the provider and replaces the local sequence.
func (h *ServicesHandler) Fetch(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.store.FetchServices(c.UserContext(), userID); err != nil {
		var ferr *stores.FetchError
		if errors.As(err, &ferr) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: ferr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch services",
		})
	}

	return c.JSON(dto.ServicesResponse{Services: h.store.Services()})
}

// Connect handles POST /api/services
func (h *ServicesHandler) Connect(c *fiber.Ctx) error {
	var req dto.ConnectServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	service, err := h.store.ConnectService(models.ConnectedService{
		Type:     req.Type,
		Name:     req.Name,
		Settings: datatypes.JSONMap(req.Settings),
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// Disconnect handles PUT /api/services/:id/disconnect
func (h *ServicesHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.store.DisconnectService(c.Params("id")); err != nil {
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateSettings handles PATCH /api/services/:id/settings
func (h *ServicesHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateServiceSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	service, err := h.store.UpdateServiceSettings(c.Params("id"), req.Settings)
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(service)
}

// Remove handles DELETE /api/services/:id
func (h *ServicesHandler) Remove(c *fiber.Ctx) error {
	if err := h.store.RemoveService(c.Params("id")); err != nil {
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearError handles DELETE /api/services/error
func (h *ServicesHandler) ClearError(c *fiber.Ctx) error {
	h.store.ClearError()
	return c.SendStatus(fiber.StatusNoContent)
}
