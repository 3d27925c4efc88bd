package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/homedash/homedash-backend/internal/dto"
	"github.com/homedash/homedash-backend/internal/models"
	"github.com/homedash/homedash-backend/internal/stores"
	"gorm.io/datatypes"
)

type DashboardHandler struct {
	store *stores.DashboardStore
}

func NewDashboardHandler(store *stores.DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// List handles GET /api/dashboards
func (h *DashboardHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.DashboardsResponse{
		Dashboards:        h.store.Dashboards(),
		ActiveDashboardID: h.store.ActiveDashboardID(),
		IsFirstLaunch:     h.store.IsFirstLaunch(),
	})
}

// Get handles GET /api/dashboards/:id
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	dashboard, err := h.store.Dashboard(c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(dashboard)
}

// Create handles POST /api/dashboards
func (h *DashboardHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDashboardRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Dashboard name is required",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddDashboard(req.Name))
}

// Rename handles PUT /api/dashboards/:id
func (h *DashboardHandler) Rename(c *fiber.Ctx) error {
	var req dto.RenameDashboardRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Dashboard name is required",
		})
	}

	if err := h.store.RenameDashboard(c.Params("id"), req.Name); err != nil {
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/dashboards/:id
func (h *DashboardHandler) Delete(c *fiber.Ctx) error {
	err := h.store.RemoveDashboard(c.Params("id"))
	if err != nil {
		if errors.Is(err, stores.ErrLastDashboard) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetActive handles PUT /api/dashboards/active
func (h *DashboardHandler) SetActive(c *fiber.Ctx) error {
	var req dto.SetActiveDashboardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	h.store.SetActiveDashboard(req.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

// AddWidget handles POST /api/dashboards/:id/widgets
func (h *DashboardHandler) AddWidget(c *fiber.Ctx) error {
	var req dto.AddWidgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	widget, err := h.store.AddWidget(c.Params("id"), models.Widget{
		Type:     req.Type,
		Title:    req.Title,
		Size:     req.Size,
		Settings: datatypes.JSONMap(req.Settings),
	})
	if err != nil {
		if errors.Is(err, stores.ErrUnknownWidgetType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return notFound(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(widget)
}

// UpdateWidget handles PATCH /api/dashboards/:id/widgets/:widgetId
func (h *DashboardHandler) UpdateWidget(c *fiber.Ctx) error {
	var update models.WidgetUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	widget, err := h.store.UpdateWidget(c.Params("id"), c.Params("widgetId"), update)
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(widget)
}

// RemoveWidget handles DELETE /api/dashboards/:id/widgets/:widgetId
func (h *DashboardHandler) RemoveWidget(c *fiber.Ctx) error {
	if err := h.store.RemoveWidget(c.Params("id"), c.Params("widgetId")); err != nil {
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderWidgets handles PUT /api/dashboards/:id/widgets/order
func (h *DashboardHandler) ReorderWidgets(c *fiber.Ctx) error {
	var req dto.ReorderWidgetsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.store.ReorderWidgets(c.Params("id"), req.WidgetIDs); err != nil {
		return notFound(c, err)
	}

	dashboard, err := h.store.Dashboard(c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(dashboard)
}

// GetSettings handles GET /api/settings
func (h *DashboardHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.store.UserSettings())
}

// UpdateSettings handles PATCH /api/settings
func (h *DashboardHandler) UpdateSettings(c *fiber.Ctx) error {
	var update models.UserSettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	return c.JSON(h.store.UpdateUserSettings(update))
}

// CompleteFirstLaunch handles POST /api/settings/first-launch
func (h *DashboardHandler) CompleteFirstLaunch(c *fiber.Ctx) error {
	h.store.SetFirstLaunchComplete()
	return c.SendStatus(fiber.StatusNoContent)
}

// AddConnectedService handles POST /api/settings/services
func (h *DashboardHandler) AddConnectedService(c *fiber.Ctx) error {
	var req dto.ConnectServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	service, err := h.store.AddConnectedService(models.ConnectedService{
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

// UpdateConnectedService handles PATCH /api/settings/services/:serviceId
func (h *DashboardHandler) UpdateConnectedService(c *fiber.Ctx) error {
	var update models.ConnectedServiceUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	service, err := h.store.UpdateConnectedService(c.Params("serviceId"), update)
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(service)
}

// RemoveConnectedService handles DELETE /api/settings/services/:serviceId
func (h *DashboardHandler) RemoveConnectedService(c *fiber.Ctx) error {
	if err := h.store.RemoveConnectedService(c.Params("serviceId")); err != nil {
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func notFound(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}
