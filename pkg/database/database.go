package database

import (
	"fmt"
	"time"

	"brotech_admin/pkg/config"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open driver'a göre gorm bağlantısı açar (postgres veya sqlite)
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		// PostgreSQL spesifik konfigürasyon
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // Prepared statement sorununu çözmek için
		})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:      NewZapLogger(zap.L()),
		PrepareStmt: false, // Statement cache'i devre dışı bırak
		// sqlite zamanı metin olarak karşılaştırır, hepsi UTC olmalı
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
}

func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool ayarları
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	DB = db
	zap.L().Info("Database connected", zap.String("driver", cfg.Driver))
	return db, nil
}

func GetDB() *gorm.DB {
	return DB
}

func MigrateDatabase(db *gorm.DB, models ...interface{}) error {
	for _, model := range models {
		if !db.Migrator().HasTable(model) {
			if err := db.Migrator().CreateTable(model); err != nil {
				return err
			}
			zap.L().Info("Created table", zap.String("model", fmt.Sprintf("%T", model)))
		} else {
			if err := db.Migrator().AutoMigrate(model); err != nil {
				return err
			}
			zap.L().Debug("Updated table", zap.String("model", fmt.Sprintf("%T", model)))
		}
	}
	return nil
}
