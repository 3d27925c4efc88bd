package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/homedash/homedash-backend/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// Get handles GET /api/catalog
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"widgets":  h.catalog.Widgets(),
		"services": h.catalog.Services(),
	})
}
