package controller

import (
	"context"
	"time"

	"brotech_admin/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PublicHandler web sitesinin giriş gerektirmeyen uçları
type PublicHandler struct {
	Store *store.Gateway
	DB    Pinger
}

func InitRestPublic(router fiber.Router, gw *store.Gateway, db Pinger) PublicHandler {
	handler := PublicHandler{Store: gw, DB: db}

	router.Get("/health", handler.Health)
	router.Get("/public/pricing-plans", handler.PricingPlans)
	router.Get("/public/settings", handler.Settings)
	router.Get("/public/blog", handler.BlogPosts)
	router.Get("/public/blog/:slug", handler.BlogPost)

	return handler
}

func (h *PublicHandler) Health(c *fiber.Ctx) error {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			zap.L().Error("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func (h *PublicHandler) PricingPlans(c *fiber.Ctx) error {
	plans, err := h.Store.PricingPlans.List(c.UserContext(), store.NewQuery().OrderBy("title", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

func (h *PublicHandler) Settings(c *fiber.Ctx) error {
	settings, err := h.Store.Settings.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// BlogPosts sadece yayınlanmış yazıları döner
func (h *PublicHandler) BlogPosts(c *fiber.Ctx) error {
	posts, err := h.Store.BlogPosts.List(c.UserContext(), store.NewQuery().OrderBy("createdAt", true))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *PublicHandler) BlogPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	posts, err := h.Store.BlogPosts.List(c.UserContext(), store.NewQuery().Where("slug", store.OpEq, slug).Limit(1))
	if err != nil {
		return respondError(c, err)
	}
	if len(posts) == 0 {
		return respondError(c, &store.NotFoundError{Entity: "blog post", ID: slug})
	}
	return c.JSON(posts[0])
}
