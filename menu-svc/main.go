package main

import (
	"context"

	"foodie-storefront/config"
	"foodie-storefront/foodieos"
	httpapi "foodie-storefront/menu-svc/internal/api/http"
	"foodie-storefront/menu-svc/internal/service"
	"foodie-storefront/menu-svc/internal/storage"
	"foodie-storefront/session"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()
	config.SetupLogger("menu-svc")
	cfg := Load()
	ctx := context.Background()

	repo := newRepository(ctx, cfg)
	menuSvc := service.NewMenuService(repo)
	if config.IsDevelopment() {
		if err := menuSvc.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed menu")
		}
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie)
	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}

	handler := &httpapi.Handler{
		Menu:     menuSvc,
		Sync:     service.NewSyncService(repo, foodieos.NewClient(cfg.FoodieOSURL, nil), cfg.OutletID),
		Auth:     service.NewAuthService(cfg.AdminPassword, sessions),
		QR:       service.DefaultQRGenerator{BaseURL: cfg.StorefrontURL},
		Sessions: sessions,
	}

	var uploader service.ImageUploader
	if cfg.CloudinaryName != "" && cfg.CloudinaryKey != "" && cfg.CloudinarySecret != "" {
		cld, err := storage.NewCloudinaryUploader(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init cloudinary")
		}
		uploader = cld
	} else {
		uploader = storage.NewDiskUploader(cfg.UploadDir, "/uploads/")
		handler.UploadDir = cfg.UploadDir
	}
	handler.Upload = service.NewUploadService(uploader, cfg.MaxUploadBytes)

	httpapi.StartServer(":"+cfg.Port, httpapi.NewRouter(handler))
}

func newRepository(ctx context.Context, cfg Config) service.MenuRepository {
	var sqlRepo *storage.SQLRepository
	switch cfg.Storage {
	case "postgres":
		sqlRepo = storage.NewSQLRepository(config.MustInitPostgres(), storage.Postgres)
	case "sqlite":
		sqlRepo = storage.NewSQLRepository(config.MustInitSQLite(cfg.SQLitePath), storage.SQLite)
	default:
		log.Info().Msg("using in-memory menu storage, changes are lost on restart")
		return storage.NewMemoryRepository()
	}

	if err := sqlRepo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage).Msg("failed to migrate menu schema")
	}
	return sqlRepo
}
