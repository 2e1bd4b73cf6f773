package service

import (
	"context"
	"time"

	"foodie-storefront/agg-svc/internal/domain"
	"foodie-storefront/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	IncrementPopularity(ctx context.Context, outletID string, lines []domain.OrderLine) error
	RecordDaily(ctx context.Context, outletID string, day time.Time, lines []domain.OrderLine) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(ctx context.Context, msg domain.OrderMessage)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
