package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodie-storefront/storefront-svc/internal/domain"
	"foodie-storefront/storefront-svc/internal/service"
	"foodie-storefront/storefront-svc/internal/service/checkout"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs cart sessions, the menu cache, the geo cache and the
// popularity lookups with one client.
type RedisStore struct {
	Client     *redis.Client
	SessionTTL time.Duration
	MenuTTL    time.Duration
}

func NewRedisStore(client *redis.Client, sessionTTL, menuTTL time.Duration) *RedisStore {
	return &RedisStore{Client: client, SessionTTL: sessionTTL, MenuTTL: menuTTL}
}

func SessionKey(id string) string {
	return "cart:" + id
}

func MenuKey(outletID, category string) string {
	return "menu:" + outletID + ":" + category
}

func PopularityKey(outletID string) string {
	return "popularity:" + outletID
}

func (s *RedisStore) Load(ctx context.Context, id string) (*checkout.Session, error) {
	data, err := s.Client.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess checkout.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save refreshes the session TTL on every write.
func (s *RedisStore) Save(ctx context.Context, sess *checkout.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, SessionKey(sess.ID), data, s.SessionTTL).Err()
}

func (s *RedisStore) GetMenu(ctx context.Context, outletID, category string) ([]domain.MenuItem, bool, error) {
	data, err := s.Client.Get(ctx, MenuKey(outletID, category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (s *RedisStore) SetMenu(ctx context.Context, outletID, category string, items []domain.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, MenuKey(outletID, category), data, s.MenuTTL).Err()
}

func (s *RedisStore) GetLocation(ctx context.Context, key string) (domain.Location, bool, error) {
	values, err := s.Client.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.Location{}, false, err
	}
	if len(values) == 0 {
		return domain.Location{}, false, nil
	}
	return domain.Location{City: values["city"], State: values["state"]}, true, nil
}

func (s *RedisStore) SetLocation(ctx context.Context, key string, loc domain.Location, ttl time.Duration) error {
	pipe := s.Client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"city":  loc.City,
		"state": loc.State,
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) TopItems(ctx context.Context, outletID string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.Client.ZRevRange(ctx, PopularityKey(outletID), 0, int64(n-1)).Result()
}
