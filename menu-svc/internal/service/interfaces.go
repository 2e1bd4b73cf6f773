package service

import (
	"context"
	"io"
	"time"

	"foodie-storefront/foodieos"
	"foodie-storefront/menu-svc/internal/domain"
)

type MenuRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Upsert(ctx context.Context, item *domain.MenuItem) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int, error)
}

type FoodSyncer interface {
	UpdateOutletFood(ctx context.Context, req foodieos.UpdateOutletFoodRequest) (*foodieos.UpdateOutletFoodResponse, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

type QRGenerator interface {
	Generate(table domain.TableQR) ([]byte, error)
}

type MenuServiceInterface interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Save(ctx context.Context, item *domain.MenuItem) (*domain.SaveResult, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) error
}

type SyncServiceInterface interface {
	Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncResult, error)
}

type AuthServiceInterface interface {
	Login(password string) (string, time.Time, error)
}

type UploadServiceInterface interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

var (
	_ MenuServiceInterface   = (*MenuService)(nil)
	_ SyncServiceInterface   = (*SyncService)(nil)
	_ AuthServiceInterface   = (*AuthService)(nil)
	_ UploadServiceInterface = (*UploadService)(nil)
	_ QRGenerator            = DefaultQRGenerator{}
)
