package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/http/handlers"
	"github.com/rijan-rayamajhi/gem-business/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Merchants      *handlers.MerchantsHandler
	Business       *handlers.BusinessHandler
	Listings       *handlers.ListingsHandler
	Events         *handlers.EventsHandler
	KYC            *handlers.KYCHandler
	FlashSales     *handlers.FlashSaleHandler
	AuthMiddleware *auth.AuthMiddleware
	StaticFilesDir string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.StaticFilesDir != "" {
		app.Static("/files", cfg.StaticFilesDir)
	}

	api := app.Group("/api/v1")

	api.Post("/auth/register", cfg.Merchants.Register)
	api.Post("/auth/login", cfg.Merchants.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	business := protected.Group("/business")
	business.Post("", cfg.Business.Register)
	business.Get("", cfg.Business.GetOwn)
	business.Get("/:id", cfg.Business.Get)
	business.Patch("/:id", cfg.Business.Update)
	business.Delete("/:id", cfg.Business.Delete)

	listings := protected.Group("/listings")
	listings.Post("", cfg.Listings.Create)
	listings.Get("", cfg.Listings.List)
	listings.Get("/:id", cfg.Listings.Get)
	listings.Patch("/:id", cfg.Listings.Update)
	listings.Delete("/:id", cfg.Listings.Delete)

	events := protected.Group("/events")
	events.Post("", cfg.Events.Create)
	events.Get("", cfg.Events.List)
	events.Get("/:id", cfg.Events.Get)
	events.Patch("/:id", cfg.Events.Update)
	events.Delete("/:id", cfg.Events.Delete)

	kyc := protected.Group("/kyc")
	kyc.Post("", cfg.KYC.Submit)
	kyc.Get("", cfg.KYC.Get)

	flashSales := protected.Group("/flash-sales")
	flashSales.Get("/current", cfg.FlashSales.Current)
	flashSales.Get("", cfg.FlashSales.List)
}
