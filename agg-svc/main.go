package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"foodie-storefront/agg-svc/internal/service"
	"foodie-storefront/agg-svc/internal/storage"
	"foodie-storefront/config"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()
	config.SetupLogger("agg-svc")

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.GetEnv("ORDERS_TOPIC", "orders"), config.GetEnv("KAFKA_GROUP_ID", "agg-svc-consumer"))
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service.NewConsumer(reader, storage.NewStore(rdb)).Start(ctx)
	log.Info().Msg("agg service stopped")
}
