package controller

import (
	"strings"

	"brotech_admin/internal/model"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// SettingsInput sadece gönderilen alanları günceller
type SettingsInput struct {
	ContactEmail *string `json:"contactEmail"`
	PhoneNumber  *string `json:"phoneNumber"`
	Address      *string `json:"address"`
	TwitterURL   *string `json:"twitterUrl"`
	LinkedinURL  *string `json:"linkedinUrl"`
	FacebookURL  *string `json:"facebookUrl"`
	InstagramURL *string `json:"instagramUrl"`
	GithubURL    *string `json:"githubUrl"`
}

func (in SettingsInput) fields() (map[string]any, error) {
	fields := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = strings.TrimSpace(*v)
		}
	}
	set("contactEmail", in.ContactEmail)
	set("phoneNumber", in.PhoneNumber)
	set("address", in.Address)
	set("twitterUrl", in.TwitterURL)
	set("linkedinUrl", in.LinkedinURL)
	set("facebookUrl", in.FacebookURL)
	set("instagramUrl", in.InstagramURL)
	set("githubUrl", in.GithubURL)

	if v, ok := fields["contactEmail"].(string); ok && v != "" {
		if err := validation.Email("contactEmail", v); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

type SettingsHandler struct {
	Settings *store.SettingsStore
}

func InitRestSettings(router fiber.Router, settings *store.SettingsStore) SettingsHandler {
	handler := SettingsHandler{Settings: settings}

	router.Get("/settings", handler.Get)
	router.Put("/settings", handler.Update)
	router.Put("/settings/impact-numbers", handler.UpdateImpactNumbers)

	return handler
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.Settings.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	input := new(SettingsInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	fields, err := input.fields()
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Settings.Merge(c.UserContext(), fields); err != nil {
		return respondError(c, err)
	}
	return h.Get(c)
}

func (h *SettingsHandler) UpdateImpactNumbers(c *fiber.Ctx) error {
	input := new(model.ImpactNumbers)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}

	if err := h.Settings.SetImpactNumbers(c.UserContext(), *input); err != nil {
		return respondError(c, err)
	}
	return h.Get(c)
}
