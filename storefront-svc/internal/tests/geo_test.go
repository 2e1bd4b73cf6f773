package tests

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"foodie-storefront/storefront-svc/internal/domain"
	"foodie-storefront/storefront-svc/internal/service/geo"
	"foodie-storefront/storefront-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNominatim(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newRedisStore(t *testing.T) (*storage.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisStore(client, time.Hour, time.Minute), mr
}

func TestLocator_Reverse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCity  string
		wantState string
	}{
		{
			name:      "city",
			body:      `{"address":{"city":"Bengaluru","state":"Karnataka"}}`,
			wantCity:  "Bengaluru",
			wantState: "Karnataka",
		},
		{
			name:      "town when no city",
			body:      `{"address":{"town":"Manipal","state":"Karnataka"}}`,
			wantCity:  "Manipal",
			wantState: "Karnataka",
		},
		{
			name:      "village last",
			body:      `{"address":{"village":"Malana","state":"Himachal Pradesh"}}`,
			wantCity:  "Malana",
			wantState: "Himachal Pradesh",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			srv, _ := newNominatim(t, http.StatusOK, testCase.body)
			locator := geo.NewLocator(srv.URL, srv.Client(), nil)

			city, state, err := locator.Reverse(testContext(t), 12.97, 77.59)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantCity, city)
			assert.Equal(t, testCase.wantState, state)
		})
	}
}

func TestLocator_Locate(t *testing.T) {
	t.Run("missing coordinates", func(t *testing.T) {
		locator := geo.NewLocator("http://unused.invalid", nil, nil)

		assert.Equal(t, domain.Location{}, locator.Locate(testContext(t), nil, ptr(77.59)))
	})

	t.Run("failed lookup keeps coordinates", func(t *testing.T) {
		srv, _ := newNominatim(t, http.StatusInternalServerError, `oops`)
		locator := geo.NewLocator(srv.URL, srv.Client(), nil)

		loc := locator.Locate(testContext(t), ptr(12.97), ptr(77.59))

		assert.Equal(t, domain.Location{Lat: 12.97, Lon: 77.59}, loc)
	})

	t.Run("caches by rounded coordinates", func(t *testing.T) {
		srv, calls := newNominatim(t, http.StatusOK, `{"address":{"city":"Bengaluru","state":"Karnataka"}}`)
		store, mr := newRedisStore(t)
		locator := geo.NewLocator(srv.URL, srv.Client(), store)

		first := locator.Locate(testContext(t), ptr(12.9716), ptr(77.5946))
		second := locator.Locate(testContext(t), ptr(12.9719), ptr(77.5948))

		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		assert.Equal(t, "Bengaluru", first.City)
		assert.Equal(t, "Bengaluru", second.City)
		assert.Equal(t, "Karnataka", second.State)
		assert.Equal(t, 12.9719, second.Lat)
		assert.True(t, mr.Exists(geo.CacheKey(12.9716, 77.5946)))
		assert.Equal(t, geo.DefaultCacheTTL, mr.TTL(geo.CacheKey(12.9716, 77.5946)))
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "geo:12.972:77.595", geo.CacheKey(12.9716, 77.5946))
}
