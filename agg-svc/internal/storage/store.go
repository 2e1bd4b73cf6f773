package storage

import (
	"context"
	"time"

	"foodie-storefront/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const DailyTTL = 7 * 24 * time.Hour

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// PopularityKey is the all-time sorted set the storefront reads bestsellers
// from.
func PopularityKey(outletID string) string {
	return "popularity:" + outletID
}

func DailyKey(day time.Time, outletID string) string {
	return "popularity:daily:" + day.UTC().Format("2006-01-02") + ":" + outletID
}

func (s *Store) IncrementPopularity(ctx context.Context, outletID string, lines []domain.OrderLine) error {
	pipe := s.rdb.TxPipeline()
	key := PopularityKey(outletID)
	for _, line := range lines {
		pipe.ZIncrBy(ctx, key, float64(line.Quantity), line.ItemID)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) RecordDaily(ctx context.Context, outletID string, day time.Time, lines []domain.OrderLine) error {
	pipe := s.rdb.TxPipeline()
	key := DailyKey(day, outletID)
	for _, line := range lines {
		pipe.ZIncrBy(ctx, key, float64(line.Quantity), line.ItemID)
	}
	pipe.Expire(ctx, key, DailyTTL)
	_, err := pipe.Exec(ctx)
	return err
}
