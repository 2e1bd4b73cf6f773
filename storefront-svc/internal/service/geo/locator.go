// Package geo augments coordinates with a reverse geocoded city and state.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodie-storefront/storefront-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultCacheTTL     = 24 * time.Hour
)

var ErrReverseGeocode = errors.New("reverse geocoding failed")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cache stores resolved locations by rounded coordinates.
type Cache interface {
	GetLocation(ctx context.Context, key string) (domain.Location, bool, error)
	SetLocation(ctx context.Context, key string, loc domain.Location, ttl time.Duration) error
}

type Locator struct {
	baseURL   string
	client    HTTPClient
	cache     Cache
	ttl       time.Duration
	userAgent string
}

func NewLocator(baseURL string, client HTTPClient, cache Cache) *Locator {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Locator{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		cache:     cache,
		ttl:       DefaultCacheTTL,
		userAgent: "foodie-storefront/1.0",
	}
}

// Locate never fails. Missing coordinates give the zero Location and a
// failed lookup keeps only the coordinates.
func (l *Locator) Locate(ctx context.Context, lat, lon *float64) domain.Location {
	if lat == nil || lon == nil {
		return domain.Location{}
	}
	loc := domain.Location{Lat: *lat, Lon: *lon}

	key := CacheKey(*lat, *lon)
	if l.cache != nil {
		cached, ok, err := l.cache.GetLocation(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("geo cache read failed")
		} else if ok {
			cached.Lat, cached.Lon = loc.Lat, loc.Lon
			return cached
		}
	}

	city, state, err := l.Reverse(ctx, *lat, *lon)
	if err != nil {
		log.Warn().Err(err).Float64("lat", *lat).Float64("lon", *lon).Msg("reverse geocode failed")
		return loc
	}
	loc.City, loc.State = city, state

	if l.cache != nil {
		if err := l.cache.SetLocation(ctx, key, loc, l.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("geo cache write failed")
		}
	}
	return loc
}

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
}

func (l *Locator) Reverse(ctx context.Context, lat, lon float64) (string, string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrReverseGeocode, err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrReverseGeocode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%w: status %d", ErrReverseGeocode, resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrReverseGeocode, err)
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	return city, body.Address.State, nil
}

// CacheKey rounds to three decimals, roughly 100m.
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("geo:%.3f:%.3f", lat, lon)
}
