package tests

import (
	"testing"
	"time"

	"foodie-storefront/agg-svc/internal/domain"
	"foodie-storefront/agg-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*storage.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return storage.NewStore(rdb), mr
}

func TestStore_IncrementPopularity(t *testing.T) {
	store, mr := newStore(t)

	require.NoError(t, store.IncrementPopularity(testContext(t), "200", []domain.OrderLine{
		{ItemID: "M001", Quantity: 2},
		{ItemID: "D001", Quantity: 1},
	}))
	require.NoError(t, store.IncrementPopularity(testContext(t), "200", []domain.OrderLine{
		{ItemID: "D001", Quantity: 4},
	}))

	score, err := mr.ZScore(storage.PopularityKey("200"), "D001")
	require.NoError(t, err)
	assert.Equal(t, 5.0, score)

	members, err := mr.ZMembers(storage.PopularityKey("200"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"M001", "D001"}, members)
	assert.False(t, mr.Exists(storage.PopularityKey("201")))
}

func TestStore_RecordDaily(t *testing.T) {
	store, mr := newStore(t)

	require.NoError(t, store.RecordDaily(testContext(t), "200", orderTime, []domain.OrderLine{
		{ItemID: "M001", Quantity: 3},
	}))

	key := storage.DailyKey(orderTime, "200")
	assert.Equal(t, "popularity:daily:2026-03-14:200", key)
	score, err := mr.ZScore(key, "M001")
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)
	assert.Equal(t, storage.DailyTTL, mr.TTL(key))

	mr.FastForward(storage.DailyTTL + time.Second)
	assert.False(t, mr.Exists(key))
}
