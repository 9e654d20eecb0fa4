package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brotech_admin/internal/assist"
	"brotech_admin/internal/auth"
	"brotech_admin/internal/controller"
	"brotech_admin/internal/dashboard"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/config"
	"brotech_admin/pkg/cron"
	"brotech_admin/pkg/database"
	"brotech_admin/pkg/email"
	"brotech_admin/pkg/logger"
	"brotech_admin/pkg/seed"
	"brotech_admin/pkg/utils/cloudflare"
	"brotech_admin/pkg/utils/jwt"
)

func main() {
	cfg := config.Load()

	l, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		log.Fatal("Could not initialize logger:", err)
	}
	defer l.Sync()

	if err := cfg.Validate(); err != nil {
		zap.L().Fatal("Invalid configuration", zap.Error(err))
	}

	jwt.Init(cfg.JWT.Secret, cfg.JWT.SessionTTL)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		zap.L().Fatal("Could not connect to database", zap.Error(err))
	}
	models := append(store.Models(), auth.Models()...)
	if err := database.MigrateDatabase(db, models...); err != nil {
		zap.L().Fatal("Migration failed", zap.Error(err))
	}

	if err := seed.SeedAdmin(db, cfg.Admin); err != nil {
		zap.L().Error("Could not seed operator account", zap.Error(err))
	}
	if err := seed.SeedSettings(db); err != nil {
		zap.L().Error("Could not seed settings", zap.Error(err))
	}

	ctx := context.Background()
	gw := store.New(db)
	authService := auth.NewService(db)
	authService.Subscribe(func(ev auth.Event) {
		zap.L().Info("Session changed", zap.String("event", string(ev.Kind)), zap.String("email", ev.User.Email))
	})

	deps := controller.Dependencies{
		Store:     gw,
		Auth:      authService,
		Dashboard: dashboard.NewService(gw.Contacts, gw.PricingPlans, cfg.Location),
		Assistant: assist.FromConfig(ctx, cfg.Gemini),
		NotifyTo:  cfg.Admin.Email,
	}
	if sqlDB, err := db.DB(); err == nil {
		deps.DB = sqlDB
	}

	// E-posta opsiyonel, yoksa bildirimler atlanır
	var digestMailer cron.DigestMailer
	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
			zap.L().Error("Could not initialize email service", zap.Error(err))
		} else {
			deps.Mailer = email.GlobalEmailService
			digestMailer = email.GlobalEmailService
		}
	} else {
		zap.L().Warn("RESEND_API_KEY not set, emails are disabled")
	}

	if cfg.BlobStoreEnabled() {
		r2, err := cloudflare.NewClient(ctx, cfg.R2)
		if err != nil {
			zap.L().Error("Could not initialize R2 client", zap.Error(err))
		} else {
			deps.Uploader = r2
			deps.Images = r2
		}
	} else {
		zap.L().Warn("R2 is not configured, feature image uploads are disabled")
	}

	scheduler, err := cron.Init(cfg.Cron, cfg.Location, &cron.DigestJob{
		Messages:  gw.Contacts,
		Operators: authService.Operators,
		Mailer:    digestMailer,
		Location:  cfg.Location,
	}, authService)
	if err != nil {
		zap.L().Fatal("Could not start cron", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "BroTech Admin",
		ErrorHandler: controller.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	controller.SetupRoutes(app, deps)

	go func() {
		zap.L().Info("Server is running", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zap.L().Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down")
	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}
	closeDB(db)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		zap.L().Error("Could not close database", zap.Error(err))
	}
}
