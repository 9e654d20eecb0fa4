package store

import (
	"context"

	"brotech_admin/internal/model"
	"brotech_admin/internal/session"

	"gorm.io/gorm"
)

type (
	Contacts     = Collection[model.ContactMessage, *model.ContactMessage]
	PricingPlans = Collection[model.PricingPlan, *model.PricingPlan]
	BlogPosts    = Collection[model.BlogPost, *model.BlogPost]
)

// Gateway is the single entry point to the record store.
type Gateway struct {
	Contacts     *Contacts
	PricingPlans *PricingPlans
	BlogPosts    *BlogPosts
	Settings     *SettingsStore
}

// Models lists every table the gateway needs, for migration.
func Models() []interface{} {
	return []interface{}{
		&model.ContactMessage{},
		&model.PricingPlan{},
		&model.BlogPost{},
		&model.SiteSettings{},
	}
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{
		Contacts: &Contacts{
			db:     db,
			name:   "contacts",
			entity: "message",
			columns: map[string]string{
				"id":        "id",
				"name":      "name",
				"email":     "email",
				"subject":   "subject",
				"message":   "message",
				"createdAt": "created_at",
			},
			rules: contactRules,
		},
		PricingPlans: &PricingPlans{
			db:     db,
			name:   "pricingPlans",
			entity: "pricing plan",
			columns: map[string]string{
				"id":          "id",
				"title":       "title",
				"price":       "price",
				"features":    "features",
				"mostPopular": "most_popular",
				"createdAt":   "created_at",
				"updatedAt":   "updated_at",
			},
			rules: pricingPlanRules,
		},
		BlogPosts: &BlogPosts{
			db:     db,
			name:   "blogPosts",
			entity: "blog post",
			columns: map[string]string{
				"id":              "id",
				"title":           "title",
				"slug":            "slug",
				"content":         "content",
				"author":          "author",
				"status":          "status",
				"featureImageUrl": "feature_image_url",
				"createdAt":       "created_at",
				"updatedAt":       "updated_at",
			},
			rules: blogPostRules,
			scope: publishedOnlyForAnonymous,
		},
		Settings: &SettingsStore{db: db},
	}
}

// Taslaklar sadece giriş yapmış operatöre görünür
func publishedOnlyForAnonymous(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if session.Authenticated(ctx) {
		return tx
	}
	return tx.Where("status = ?", model.PostStatusPublished)
}
