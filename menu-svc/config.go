package main

import (
	"time"

	"foodie-storefront/config"
)

type Config struct {
	Port             string
	Storage          string
	SQLitePath       string
	FoodieOSURL      string
	OutletID         int
	StorefrontURL    string
	SessionSecret    string
	SessionTTL       time.Duration
	SecureCookie     bool
	AdminPassword    string
	UploadDir        string
	MaxUploadBytes   int64
	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string
}

func Load() Config {
	return Config{
		Port:             config.GetEnv("PORT", "8081"),
		Storage:          config.GetEnv("MENU_STORAGE", "memory"),
		SQLitePath:       config.GetEnv("SQLITE_PATH", "menu.db"),
		FoodieOSURL:      config.GetEnv("FOODIEOS_URL", "https://foodieos-786353173154.asia-south1.run.app"),
		OutletID:         config.GetEnvInt("OUTLET_ID", 200),
		StorefrontURL:    config.GetEnv("STOREFRONT_BASE_URL", "http://localhost:8080"),
		SessionSecret:    config.MustSessionSecret(),
		SessionTTL:       config.GetEnvDuration("SESSION_TTL", 12*time.Hour),
		SecureCookie:     !config.IsDevelopment(),
		AdminPassword:    config.GetEnv("ADMIN_PASSWORD_HASH", ""),
		UploadDir:        config.GetEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes:   int64(config.GetEnvInt("MAX_UPLOAD_BYTES", 5<<20)),
		CloudinaryName:   config.GetEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    config.GetEnv("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: config.GetEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder: config.GetEnv("CLOUDINARY_FOLDER", "foodie-menu"),
	}
}
