package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/homedash/homedash-backend/internal/config"
	"github.com/homedash/homedash-backend/internal/handlers"
	"github.com/homedash/homedash-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	servicesHandler *handlers.ServicesHandler,
	feedHandler *handlers.FeedHandler,
	catalogHandler *handlers.CatalogHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public
	api.Get("/health", healthHandler.Check)
	api.Get("/catalog", catalogHandler.Get)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/session", authHandler.Session)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/error", middleware.JWTProtected(cfg), authHandler.ClearError)

	// Everything below requires a valid access token.
	protected := api.Group("", middleware.JWTProtected(cfg))

	// Dashboards and widgets
	protected.Get("/dashboards", dashboardHandler.List)
	protected.Post("/dashboards", dashboardHandler.Create)
	protected.Put("/dashboards/active", dashboardHandler.SetActive)
	protected.Get("/dashboards/:id", dashboardHandler.Get)
	protected.Put("/dashboards/:id", dashboardHandler.Rename)
	protected.Delete("/dashboards/:id", dashboardHandler.Delete)
	protected.Post("/dashboards/:id/widgets", dashboardHandler.AddWidget)
	protected.Put("/dashboards/:id/widgets/order", dashboardHandler.ReorderWidgets)
	protected.Patch("/dashboards/:id/widgets/:widgetId", dashboardHandler.UpdateWidget)
	protected.Delete("/dashboards/:id/widgets/:widgetId", dashboardHandler.RemoveWidget)

	// User settings
	protected.Get("/settings", dashboardHandler.GetSettings)
	protected.Patch("/settings", dashboardHandler.UpdateSettings)
	protected.Post("/settings/first-launch", dashboardHandler.CompleteFirstLaunch)
	protected.Post("/settings/services", dashboardHandler.AddConnectedService)
	protected.Patch("/settings/services/:serviceId", dashboardHandler.UpdateConnectedService)
	protected.Delete("/settings/services/:serviceId", dashboardHandler.RemoveConnectedService)

	// Connected services
	protected.Get("/services", servicesHandler.List)
	protected.Post("/services", servicesHandler.Connect)
	protected.Post("/services/fetch", servicesHandler.Fetch)
	protected.Delete("/services/error", servicesHandler.ClearError)
	protected.Put("/services/:id/disconnect", servicesHandler.Disconnect)
	protected.Patch("/services/:id/settings", servicesHandler.UpdateSettings)
	protected.Delete("/services/:id", servicesHandler.Remove)

	// Widget data feeds
	protected.Get("/feed/news", feedHandler.News)
	protected.Get("/feed/news/search", feedHandler.SearchNews)
	protected.Get("/feed/social", feedHandler.Social)
	protected.Get("/feed/reddit", feedHandler.Reddit)
	protected.Get("/feed/health", feedHandler.Health)
	protected.Get("/feed/stocks", feedHandler.Stocks)
	protected.Get("/feed/email", feedHandler.Email)
}
