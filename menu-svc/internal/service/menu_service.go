package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"foodie-storefront/menu-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

// SeedItems is loaded into an empty menu in development.
var SeedItems = []domain.MenuItem{
	{
		ID:       "M001",
		Name:     "Butter Chicken",
		Price:    45000,
		Category: "MAIN COURSE",
		Veg:      false,
		Weight:   "500 g",
		Energy:   "600 kcal",
		Image:    "https://source.unsplash.com/400x300/?butter-chicken",
	},
	{
		ID:       "D001",
		Name:     "Gulab Jamun",
		Price:    12000,
		Category: "DESSERTS",
		Veg:      true,
		Weight:   "2 pcs",
		Energy:   "250 kcal",
		Image:    "https://source.unsplash.com/400x300/?gulab-jamun",
	},
}

type MenuService struct {
	repo MenuRepository
	// serializes id generation with the write that claims it
	mu sync.Mutex
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.Get(ctx, id)
}

// Save creates or replaces an item. Items without an id get the next free
// id for their category prefix.
func (s *MenuService) Save(ctx context.Context, item *domain.MenuItem) (*domain.SaveResult, error) {
	if err := validate(item); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		id, err := s.nextID(ctx, item.Category)
		if err != nil {
			return nil, err
		}
		item.ID = id
	}

	created, err := s.repo.Upsert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("save menu item %s: %w", item.ID, err)
	}

	log.Info().Str("id", item.ID).Bool("created", created).Msg("menu item saved")
	return &domain.SaveResult{Success: true, ID: item.ID, IsNew: created}, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}
	if rows == 0 {
		log.Debug().Str("id", id).Msg("delete of unknown menu item ignored")
	}
	return nil
}

func (s *MenuService) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := range SeedItems {
		item := SeedItems[i]
		if _, err := s.repo.Upsert(ctx, &item); err != nil {
			return fmt.Errorf("seed menu item %s: %w", item.ID, err)
		}
	}
	log.Info().Int("items", len(SeedItems)).Msg("seeded development menu")
	return nil
}

func (s *MenuService) nextID(ctx context.Context, category string) (string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}

	prefix := category[:1]
	taken := make(map[string]bool, len(items))
	seq := 0
	for _, it := range items {
		taken[it.ID] = true
		if strings.HasPrefix(it.ID, prefix) {
			seq++
		}
	}

	for {
		seq++
		id := fmt.Sprintf("%s%03d", prefix, seq)
		if !taken[id] {
			return id, nil
		}
	}
}

func validate(item *domain.MenuItem) error {
	if item == nil {
		return ErrInvalidItem
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if !domain.IsCategory(item.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, item.Category)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidItem)
	}
	for _, addOn := range item.AddOns {
		if addOn.ID == "" || addOn.Price < 0 {
			return fmt.Errorf("%w: invalid add-on", ErrInvalidItem)
		}
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrItemNotFound)
}
