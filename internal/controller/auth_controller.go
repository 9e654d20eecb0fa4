package controller

import (
	"context"
	"errors"

	"brotech_admin/internal/auth"
	"brotech_admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileInput struct {
	DisplayName string `json:"displayName"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type PasswordMailer interface {
	SendPasswordChangedEmail(ctx context.Context, to string) error
}

type AuthHandler struct {
	Auth   *auth.Service
	Mailer PasswordMailer
}

// InitRestAuth registers the signed-in routes; Login is mounted with the public ones.
func InitRestAuth(protected fiber.Router, handler AuthHandler) AuthHandler {
	protected.Post("/auth/logout", handler.Logout)
	protected.Get("/me", handler.GetMe)
	protected.Put("/me/profile", handler.UpdateProfile)
	protected.Put("/me/password", handler.ChangePassword)

	return handler
}

// Login kullanıcı girişi
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}

	res, err := h.Auth.SignIn(c.UserContext(), input.Email, input.Password, c.Get(fiber.HeaderUserAgent), c.IP())
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    "Invalid credentials",
			"guidance": auth.CredentialsGuidance,
		})
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      res.User.GetPublicProfile(),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.SignOut(c.UserContext(), middleware.Claims(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Signed out",
	})
}

// GetMe oturum açmış kullanıcının bilgilerini getirir
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	id := middleware.Identity(c)

	user, err := h.Auth.User(c.UserContext(), id.UserID)
	if errors.Is(err, auth.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err != nil {
		return respondError(c, err)
	}

	logins, err := h.Auth.LoginHistory(c.UserContext(), id.UserID, 5)
	if err != nil {
		zap.L().Warn("could not load login history", zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"user":         user.GetPublicProfile(),
		"recentLogins": logins,
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}

	user, err := h.Auth.UpdateProfile(c.UserContext(), middleware.Identity(c).UserID, input.DisplayName)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.GetPublicProfile(),
	})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	input := new(ChangePasswordInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}

	id := middleware.Identity(c)
	if err := h.Auth.ChangePassword(c.UserContext(), id.UserID, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return respondError(c, err)
	}

	if h.Mailer != nil {
		// E-posta gönderilemezse şifre değişikliği yine geçerli
		if err := h.Mailer.SendPasswordChangedEmail(c.UserContext(), id.Email); err != nil {
			zap.L().Warn("could not send password changed email", zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}
