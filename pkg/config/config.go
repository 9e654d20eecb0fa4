package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	R2       R2Config
	Gemini   GeminiConfig
	Email    EmailConfig
	Cron     CronConfig
	Log      LogConfig
	Location *time.Location
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
}

type DatabaseConfig struct {
	Driver       string // postgres veya sqlite
	URL          string
	MaxIdleConns int
	MaxOpenConns int
}

type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

// AdminConfig ilk operator hesabı (seed)
type AdminConfig struct {
	Email       string
	Password    string
	DisplayName string
}

type R2Config struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

type CronConfig struct {
	DigestSpec string
}

type LogConfig struct {
	Level string
	JSON  bool
}

func Load() *Config {
	_ = godotenv.Load() // .env yoksa ortam değişkenleri kullanılır

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		loc = time.Local
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
			URL:          getEnv("DATABASE_URL", ""),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 100),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Admin: AdminConfig{
			Email:       getEnv("ADMIN_EMAIL", ""),
			Password:    getEnv("ADMIN_PASSWORD", ""),
			DisplayName: getEnv("ADMIN_DISPLAY_NAME", "Admin"),
		},
		R2: R2Config{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: strings.TrimSuffix(getEnv("R2_PUBLIC_BASE_URL", ""), "/"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "BroTech Admin <noreply@brotech.dev>"),
		},
		Cron: CronConfig{
			DigestSpec: getEnv("DIGEST_CRON", "0 19 * * *"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			JSON:  getEnvBool("LOG_JSON", true),
		},
		Location: loc,
	}
}

// Validate zorunlu ayarları kontrol eder
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		errs = append(errs, errors.New("DATABASE_DRIVER must be postgres or sqlite"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

// BlobStoreEnabled R2 ayarları tamamsa true döner
func (c *Config) BlobStoreEnabled() bool {
	return c.R2.AccountID != "" && c.R2.AccessKey != "" && c.R2.SecretKey != "" && c.R2.BucketName != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
