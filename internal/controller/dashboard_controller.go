package controller

import (
	"brotech_admin/internal/dashboard"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Service *dashboard.Service
}

func InitRestDashboard(protected fiber.Router, service *dashboard.Service) DashboardHandler {
	handler := DashboardHandler{Service: service}

	protected.Get("/dashboard/stats", handler.GetStats)

	return handler
}

// GetStats returns counters, recent messages and the weekly chart.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.Service.Load(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
