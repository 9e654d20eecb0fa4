package store

import (
	"context"
	"errors"

	"brotech_admin/internal/model"
	"brotech_admin/pkg/utils/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const settingsCollection = "settings"

var settingsColumns = map[string]string{
	"contactEmail":  "contact_email",
	"phoneNumber":   "phone_number",
	"address":       "address",
	"twitterUrl":    "twitter_url",
	"linkedinUrl":   "linkedin_url",
	"facebookUrl":   "facebook_url",
	"instagramUrl":  "instagram_url",
	"githubUrl":     "github_url",
	"impactNumbers": "impact_numbers",
}

// SettingsStore reads and merge-writes the single global settings record.
type SettingsStore struct {
	db *gorm.DB
}

func defaultSettings() *model.SiteSettings {
	return &model.SiteSettings{
		ID:            model.SettingsID,
		ImpactNumbers: datatypes.NewJSONType(model.ImpactNumbers{}),
	}
}

// Get returns the stored settings, or empty defaults when none were saved yet.
func (s *SettingsStore) Get(ctx context.Context) (*model.SiteSettings, error) {
	if err := settingsRules.check(ctx, settingsCollection, ActionRead); err != nil {
		return nil, err
	}

	var rec model.SiteSettings
	err := s.db.WithContext(ctx).Where("id = ?", model.SettingsID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(), nil
	}
	if err != nil {
		return nil, classify(err, settingsCollection, ActionRead)
	}
	return &rec, nil
}

// Merge writes only the given fields, creating the record if needed.
func (s *SettingsStore) Merge(ctx context.Context, fields map[string]any) error {
	if err := settingsRules.check(ctx, settingsCollection, ActionUpdate); err != nil {
		return err
	}
	if len(fields) == 0 {
		return validation.New("", "nothing to update")
	}

	cols := make(map[string]any, len(fields))
	for k, v := range fields {
		col, ok := settingsColumns[k]
		if !ok {
			return validation.New(k, "unknown setting")
		}
		cols[col] = v
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.SiteSettings{}).Where("id = ?", model.SettingsID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			if err := tx.Create(defaultSettings()).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.SiteSettings{}).Where("id = ?", model.SettingsID).Updates(cols).Error
	})
	return classify(err, settingsCollection, ActionUpdate)
}

// SetImpactNumbers stores the counters, clamping negatives to zero.
func (s *SettingsStore) SetImpactNumbers(ctx context.Context, n model.ImpactNumbers) error {
	return s.Merge(ctx, map[string]any{
		"impactNumbers": datatypes.NewJSONType(n.Clamp()),
	})
}
