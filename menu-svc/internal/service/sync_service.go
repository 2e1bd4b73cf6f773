package service

import (
	"context"
	"fmt"

	"foodie-storefront/foodieos"
	"foodie-storefront/menu-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

const defaultSyncMessage = "Data synced successfully"

type SyncService struct {
	repo     MenuRepository
	client   FoodSyncer
	outletID int
}

func NewSyncService(repo MenuRepository, client FoodSyncer, outletID int) *SyncService {
	return &SyncService{repo: repo, client: client, outletID: outletID}
}

// Sync pushes the menu to FoodieOS. Without items in the request the stored
// menu is sent. There is no retry.
func (s *SyncService) Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncResult, error) {
	items := req.Items
	if items == nil {
		stored, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		items = stored
	}
	if items == nil {
		items = []domain.MenuItem{}
	}

	cats := req.Cat
	if len(cats) == 0 {
		cats = domain.Categories
	}

	resp, err := s.client.UpdateOutletFood(ctx, foodieos.UpdateOutletFoodRequest{
		OutletID: s.outletID,
		FoodList: foodieos.FoodList{Cat: cats, R: items},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	log.Info().Int("outlet", s.outletID).Int("items", len(items)).Msg("menu synced")

	message := resp.Message
	if message == "" {
		message = defaultSyncMessage
	}
	return &domain.SyncResult{Message: message}, nil
}
