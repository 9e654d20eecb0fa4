package controller

import (
	"errors"

	"brotech_admin/internal/assist"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	msgUnexpected  = "An unexpected error occurred. Please try again."
	msgUnavailable = "The service is temporarily unavailable. Please try again in a moment."
)

// respondError hatayı türüne göre HTTP cevabına çevirir
func respondError(c *fiber.Ctx, err error) error {
	var (
		permErr  *store.PermissionError
		notFound *store.NotFoundError
		valErr   *validation.ValidationError
		aiErr    *assist.Error
	)

	switch {
	case errors.As(err, &permErr):
		zap.L().Warn("permission denied", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":    "You do not have permission to perform this action.",
			"guidance": permErr.Guidance,
		})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFound.Error(),
		})
	case errors.As(err, &valErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": valErr.Message,
			"field": valErr.Field,
		})
	case errors.Is(err, assist.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.As(err, &aiErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": aiErr.Message,
		})
	case errors.Is(err, store.ErrUnavailable):
		zap.L().Error("store unavailable", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": msgUnavailable,
		})
	default:
		zap.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgUnexpected,
		})
	}
}

// ErrorHandler is the Fiber app error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}
	return respondError(c, err)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
