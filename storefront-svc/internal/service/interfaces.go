package service

import (
	"context"
	"encoding/json"
	"errors"

	"foodie-storefront/foodieos"
	"foodie-storefront/storefront-svc/internal/domain"
	"foodie-storefront/storefront-svc/internal/service/checkout"
)

var ErrSessionNotFound = errors.New("cart session not found")

type FoodFetcher interface {
	GetOutletFood(ctx context.Context, req foodieos.OutletFoodRequest) ([]json.RawMessage, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, outletID, category string) ([]domain.MenuItem, bool, error)
	SetMenu(ctx context.Context, outletID, category string, items []domain.MenuItem) error
}

type PopularityReader interface {
	TopItems(ctx context.Context, outletID string, n int) ([]string, error)
}

type SessionStore interface {
	Load(ctx context.Context, id string) (*checkout.Session, error)
	Save(ctx context.Context, s *checkout.Session) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type MenuServiceInterface interface {
	OutletMenu(ctx context.Context, req domain.MenuRequest) ([]domain.MenuItem, error)
}

type CartServiceInterface interface {
	Session(ctx context.Context, id string) (*checkout.Session, error)
	AddItem(ctx context.Context, id string, req AddItemRequest) (*checkout.Session, error)
	SetQuantity(ctx context.Context, id, key string, quantity int) (*checkout.Session, error)
	Checkout(ctx context.Context, id, action string, req ActionRequest) (*checkout.Session, error)
	Complete(ctx context.Context, id string) (*checkout.Session, *checkout.Session, error)
}

var (
	_ MenuServiceInterface = (*MenuService)(nil)
	_ CartServiceInterface = (*CartService)(nil)
)
