package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"foodie-storefront/foodieos"
	"foodie-storefront/storefront-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

const (
	DefaultOutletID   = 200
	DefaultBestseller = 5
)

type MenuService struct {
	food       FoodFetcher
	cache      MenuCache
	popularity PopularityReader
	topN       int
	now        func() time.Time
}

// NewMenuService wires the FoodieOS fetcher. cache and popularity may be nil.
func NewMenuService(food FoodFetcher, cache MenuCache, popularity PopularityReader) *MenuService {
	return &MenuService{
		food:       food,
		cache:      cache,
		popularity: popularity,
		topN:       DefaultBestseller,
		now:        time.Now,
	}
}

func (s *MenuService) OutletMenu(ctx context.Context, req domain.MenuRequest) ([]domain.MenuItem, error) {
	outletID := OutletIDOrDefault(req.OutletID)
	outletKey := strconv.Itoa(outletID)

	items, ok := s.cached(ctx, outletKey, req.Category)
	if !ok {
		raw, err := s.food.GetOutletFood(ctx, foodieos.OutletFoodRequest{
			Platform:     "web",
			Country:      "India",
			City:         req.Location.City,
			State:        req.Location.State,
			Lat:          req.Location.Lat,
			Lon:          req.Location.Lon,
			OutletID:     outletID,
			FoodCategory: req.Category,
			Date:         s.now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}
		items = Dedupe(decodeItems(raw))

		if s.cache != nil {
			if err := s.cache.SetMenu(ctx, outletKey, req.Category, items); err != nil {
				log.Warn().Err(err).Str("outlet", outletKey).Msg("menu cache write failed")
			}
		}
	}

	s.markBestsellers(ctx, outletKey, items)
	return items, nil
}

func (s *MenuService) cached(ctx context.Context, outletID, category string) ([]domain.MenuItem, bool) {
	if s.cache == nil {
		return nil, false
	}
	items, ok, err := s.cache.GetMenu(ctx, outletID, category)
	if err != nil {
		log.Warn().Err(err).Str("outlet", outletID).Msg("menu cache read failed")
		return nil, false
	}
	return items, ok
}

func (s *MenuService) markBestsellers(ctx context.Context, outletID string, items []domain.MenuItem) {
	if s.popularity == nil || len(items) == 0 {
		return
	}
	top, err := s.popularity.TopItems(ctx, outletID, s.topN)
	if err != nil {
		log.Warn().Err(err).Str("outlet", outletID).Msg("popularity lookup failed")
		return
	}
	popular := make(map[string]bool, len(top))
	for _, id := range top {
		popular[id] = true
	}
	for i := range items {
		if popular[items[i].ID] {
			items[i].BestSeller = true
		}
	}
}

func decodeItems(raw []json.RawMessage) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(raw))
	for _, r := range raw {
		var item domain.MenuItem
		if err := json.Unmarshal(r, &item); err != nil || item.ID == "" {
			log.Debug().Err(err).Msg("skipping malformed menu item")
			continue
		}
		items = append(items, item)
	}
	return items
}

// Dedupe keeps one item per id at its first position, with the data of the
// last occurrence.
func Dedupe(items []domain.MenuItem) []domain.MenuItem {
	index := make(map[string]int, len(items))
	out := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.ID]; ok {
			out[i] = item
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// Filter applies the storefront filters. Veg and non-veg only apply when no
// category is selected.
func Filter(items []domain.MenuItem, f domain.MenuFilter) []domain.MenuItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	categories := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		categories[c] = true
	}
	noCategory := len(categories) == 0

	out := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if !noCategory && !categories[item.Category] {
			continue
		}
		if noCategory && f.Veg && !item.Veg {
			continue
		}
		if noCategory && f.NonVeg && item.Veg {
			continue
		}
		if f.Bestseller && !item.BestSeller {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func Categories(items []domain.MenuItem) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

func OutletIDOrDefault(outletID string) int {
	id, err := strconv.Atoi(strings.TrimSpace(outletID))
	if err != nil || id <= 0 {
		return DefaultOutletID
	}
	return id
}
