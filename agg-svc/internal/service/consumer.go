package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodie-storefront/agg-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads until ctx is cancelled. Malformed messages are logged and
// skipped.
func (c *Consumer) Start(ctx context.Context) {
	log.Info().Msg("popularity consumer starting")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info().Msg("popularity consumer stopped")
				return
			}
			log.Error().Err(err).Msg("error reading message")
			continue
		}

		var msg domain.OrderMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Warn().Err(err).Int64("offset", message.Offset).Msg("error unmarshaling message")
			continue
		}

		c.ProcessOrder(ctx, msg)
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, msg domain.OrderMessage) {
	if msg.Type != domain.OrderConfirmed {
		log.Debug().Str("type", msg.Type).Msg("ignoring message")
		return
	}
	if msg.OutletID == "" {
		log.Warn().Str("order", msg.OrderID).Msg("order without outlet")
		return
	}

	lines := make([]domain.OrderLine, 0, len(msg.Items))
	for _, line := range msg.Items {
		if line.ItemID == "" || line.Quantity <= 0 {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}

	logger := log.With().Str("order", msg.OrderID).Str("outlet", msg.OutletID).Logger()

	if err := c.Store.IncrementPopularity(ctx, msg.OutletID, lines); err != nil {
		logger.Error().Err(err).Msg("error updating popularity")
		return
	}

	day := msg.Timestamp
	if day.IsZero() {
		day = time.Now()
	}
	if err := c.Store.RecordDaily(ctx, msg.OutletID, day, lines); err != nil {
		logger.Error().Err(err).Msg("error updating daily popularity")
		return
	}

	logger.Info().Int("lines", len(lines)).Msg("order counted")
}
