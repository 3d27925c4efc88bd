package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/homedash/homedash-backend/internal/dto"
)

type HealthHandler struct {
	mode string
	ping func() error
}

// NewHealthHandler takes the run mode ("demo" or "database") and a ping
// probe; ping is nil in demo mode.
func NewHealthHandler(mode string, ping func() error) *HealthHandler {
	return &HealthHandler{mode: mode, ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.ping == nil {
		dbStatus = "n/a"
	} else if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Mode:      h.mode,
	})
}
