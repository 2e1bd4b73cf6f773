package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"foodie-storefront/config"
	"foodie-storefront/foodieos"
	httpapi "foodie-storefront/storefront-svc/internal/api/http"
	"foodie-storefront/storefront-svc/internal/service"
	"foodie-storefront/storefront-svc/internal/service/checkout"
	"foodie-storefront/storefront-svc/internal/service/geo"
	"foodie-storefront/storefront-svc/internal/service/qr"
	"foodie-storefront/storefront-svc/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

func main() {
	config.LoadEnv()
	config.SetupLogger("storefront-svc")
	cfg := Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		sessions  service.SessionStore
		menuCache service.MenuCache
		geoCache  geo.Cache
		popular   service.PopularityReader
		publisher service.OrderPublisher
	)
	if cfg.Redis {
		store := storage.NewRedisStore(config.MustInitRedis(), cfg.SessionTTL, cfg.MenuTTL)
		sessions, menuCache, geoCache, popular = store, store, store, store

		writer := config.NewKafkaWriter(cfg.OrdersTopic)
		writer.Balancer = &kafka.Hash{}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Error().Err(err).Msg("failed to flush order writer")
			}
		}()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Info().Msg("using in-memory cart sessions, carts are lost on restart")
		sessions = storage.NewMemorySessionStore()
	}

	flow := checkout.NewFlow(checkout.Payee{
		Address: cfg.PayeeAddress,
		Name:    cfg.PayeeName,
		Note:    cfg.PayeeNote,
	})
	flow.OTPDelay = cfg.OTPDelay

	scanner := qr.NewScanner(qr.NewZXingDecoder())
	scanner.MaxAttempts = cfg.ScanAttempts

	handler := &httpapi.Handler{
		Menu:    service.NewMenuService(foodieos.NewClient(cfg.FoodieOSURL, nil), menuCache, popular),
		Cart:    service.NewCartService(sessions, flow, publisher),
		Locator: geo.NewLocator(cfg.NominatimURL, nil, geoCache),
		Scanner: scanner,
	}

	httpapi.StartServer(ctx, ":"+cfg.Port, httpapi.NewRouter(handler))
}
