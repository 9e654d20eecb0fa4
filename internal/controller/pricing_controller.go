package controller

import (
	"encoding/json"
	"strings"

	"brotech_admin/internal/model"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// FeatureList accepts either a JSON array or the form's newline separated text.
type FeatureList []string

func (f *FeatureList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = SplitFeatures(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(FeatureList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*f = out
	return nil
}

// SplitFeatures satırlara böler, boş satırları atar
func SplitFeatures(text string) []string {
	features := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}
	return features
}

type PricingPlanInput struct {
	Title       string      `json:"title"`
	Price       string      `json:"price"`
	Features    FeatureList `json:"features"`
	MostPopular bool        `json:"mostPopular"`
}

func (in PricingPlanInput) validate() error {
	if err := validation.Each(
		validation.Required("title", in.Title),
		validation.Required("price", in.Price),
	); err != nil {
		return err
	}
	if len(in.Features) == 0 {
		return validation.New("features", "features is required")
	}
	return nil
}

type PricingHandler struct {
	Plans *store.PricingPlans
}

func InitRestPricing(router fiber.Router, plans *store.PricingPlans) PricingHandler {
	handler := PricingHandler{Plans: plans}

	router.Get("/pricing-plans", handler.List)
	router.Post("/pricing-plans", handler.Create)
	router.Put("/pricing-plans/:id", handler.Update)
	router.Delete("/pricing-plans/:id", handler.Delete)

	return handler
}

func (h *PricingHandler) List(c *fiber.Ctx) error {
	plans, err := h.Plans.List(c.UserContext(), store.NewQuery().OrderBy("title", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

func (h *PricingHandler) Create(c *fiber.Ctx) error {
	input := new(PricingPlanInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := input.validate(); err != nil {
		return respondError(c, err)
	}

	plan := model.PricingPlan{
		Title:       strings.TrimSpace(input.Title),
		Price:       strings.TrimSpace(input.Price),
		Features:    datatypes.JSONSlice[string](input.Features),
		MostPopular: input.MostPopular,
	}
	id, err := h.Plans.Create(c.UserContext(), &plan)
	if err != nil {
		return respondError(c, err)
	}

	created, err := h.Plans.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PricingHandler) Update(c *fiber.Ctx) error {
	input := new(PricingPlanInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := input.validate(); err != nil {
		return respondError(c, err)
	}

	id := c.Params("id")
	err := h.Plans.Update(c.UserContext(), id, map[string]any{
		"title":       strings.TrimSpace(input.Title),
		"price":       strings.TrimSpace(input.Price),
		"features":    datatypes.JSONSlice[string](input.Features),
		"mostPopular": input.MostPopular,
	})
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.Plans.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *PricingHandler) Delete(c *fiber.Ctx) error {
	if err := h.Plans.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Pricing plan deleted successfully",
	})
}
