package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/homedash/homedash-backend/internal/dto"
	"github.com/homedash/homedash-backend/internal/providers"
)

// FeedHandler serves the widget data feeds from the content provider.
type FeedHandler struct {
	content providers.Content
}

func NewFeedHandler(content providers.Content) *FeedHandler {
	return &FeedHandler{content: content}
}

// News handles GET /api/feed/news
func (h *FeedHandler) News(c *fiber.Ctx) error {
	count, _ := strconv.Atoi(c.Query("count", "5"))
	envelope, err := h.content.GetNews(c.UserContext(), splitList(c.Query("sources")), splitList(c.Query("categories")), count)
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

// SearchNews handles GET /api/feed/news/search
func (h *FeedHandler) SearchNews(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Query parameter q is required",
		})
	}

	count, _ := strconv.Atoi(c.Query("count", "5"))
	envelope, err := h.content.SearchNews(c.UserContext(), query, count)
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

// Social handles GET /api/feed/social
func (h *FeedHandler) Social(c *fiber.Ctx) error {
	count, _ := strconv.Atoi(c.Query("count", "5"))
	envelope, err := h.content.GetSocialPosts(c.UserContext(), splitList(c.Query("platforms")), count)
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

// Reddit handles GET /api/feed/reddit
func (h *FeedHandler) Reddit(c *fiber.Ctx) error {
	count, _ := strconv.Atoi(c.Query("count", "5"))
	envelope, err := h.content.GetRedditPosts(c.UserContext(), splitList(c.Query("subreddits")), c.Query("sort", "hot"), count)
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

// Health handles GET /api/feed/health
func (h *FeedHandler) Health(c *fiber.Ctx) error {
	envelope, err := h.content.GetHealthData(c.UserContext())
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

// Stocks handles GET /api/feed/stocks
func (h *FeedHandler) Stocks(c *fiber.Ctx) error {
	envelope, err := h.content.GetStockQuotes(c.UserContext(), splitList(c.Query("symbols")))
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

// Email handles GET /api/feed/email
func (h *FeedHandler) Email(c *fiber.Ctx) error {
	envelope, err := h.content.GetEmailSummary(c.UserContext())
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(envelope)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func feedError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}
