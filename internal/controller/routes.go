package controller

import (
	"brotech_admin/internal/assist"
	"brotech_admin/internal/auth"
	"brotech_admin/internal/blog"
	"brotech_admin/internal/dashboard"
	"brotech_admin/internal/middleware"
	"brotech_admin/internal/store"

	"github.com/gofiber/fiber/v2"
)

// Mailer covers every transactional email the handlers send.
type Mailer interface {
	PasswordMailer
	ContactNotifier
}

// Dependencies of the HTTP surface. Mailer, Uploader and Images are nil when
// the matching integration is not configured.
type Dependencies struct {
	Store     *store.Gateway
	Auth      *auth.Service
	Dashboard *dashboard.Service
	Assistant *assist.Assistant
	DB        Pinger
	Mailer    Mailer
	NotifyTo  string
	Uploader  blog.Uploader
	Images    ImageRemover
}

// SetupRoutes mounts every route under /api. Public routes are registered
// before the auth middleware so it never runs for them.
func SetupRoutes(app *fiber.App, d Dependencies) {
	api := app.Group("/api")

	authHandler := AuthHandler{Auth: d.Auth}
	messagesHandler := MessagesHandler{
		Contacts:  d.Store.Contacts,
		Assistant: d.Assistant,
		NotifyTo:  d.NotifyTo,
	}
	if d.Mailer != nil {
		authHandler.Mailer = d.Mailer
		messagesHandler.Notifier = d.Mailer
	}

	// Public Routes
	api.Post("/auth/login", authHandler.Login)
	api.Post("/contacts", messagesHandler.SubmitContact)
	InitRestPublic(api, d.Store, d.DB)

	// Protected Routes
	protected := api.Group("", middleware.AuthMiddleware(d.Auth))
	InitRestAuth(protected, authHandler)
	InitRestDashboard(protected, d.Dashboard)
	InitRestMessages(protected, messagesHandler)
	InitRestPricing(protected, d.Store.PricingPlans)
	InitRestBlog(protected, BlogHandler{
		Posts:    d.Store.BlogPosts,
		Uploader: d.Uploader,
		Images:   d.Images,
	})
	InitRestSettings(protected, d.Store.Settings)

	protected.Use(NotFound)
}

// NotFound panelde bilinmeyen adresleri ana sayfaya yönlendirir
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":    "Page not found",
		"redirect": "/api/dashboard/stats",
	})
}
