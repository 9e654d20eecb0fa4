package seed

import (
	"errors"
	"strings"

	"brotech_admin/internal/auth"
	"brotech_admin/internal/model"
	"brotech_admin/pkg/config"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAdmin creates the first operator account if it does not exist yet.
// Existing accounts are never modified.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		zap.L().Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping operator seed")
		return nil
	}
	if len(cfg.Password) < auth.MinPasswordLength {
		return errors.New("ADMIN_PASSWORD must be at least 6 characters long")
	}

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	user := model.User{Email: email, Password: hashed, DisplayName: cfg.DisplayName}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	zap.L().Info("Operator account seeded", zap.String("email", email))
	return nil
}

// SeedSettings creates the global settings record with empty values.
func SeedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SiteSettings{}).Where("id = ?", model.SettingsID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := model.SiteSettings{
		ID:            model.SettingsID,
		ImpactNumbers: datatypes.NewJSONType(model.ImpactNumbers{}),
	}
	if err := db.Create(&settings).Error; err != nil {
		return err
	}
	zap.L().Info("Settings seeded")
	return nil
}
