package booking

import (
	"context"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer keeps derived data in step with booking lifecycle events.
type Consumer struct {
	client kafka.Client
	cache  cache.RedisCache
	cfg    *config.Config
}

func New(client kafka.Client, cache cache.RedisCache, cfg *config.Config) *Consumer {
	return &Consumer{
		client: client,
		cache:  cache,
		cfg:    cfg,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	log.Info().Str("topic", c.cfg.App.Booking.EventTopic).Str("group", c.cfg.Kafka.ConsumerGroup).Msg("Booking event consumer started.")

	c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.App.Booking.EventTopic, c.Handle)
}

// Handle drops the cached reports, which aggregate over bookings.
func (c *Consumer) Handle(ctx context.Context, message kafkaGo.Message) {
	_, event, err := kafka.DecodeKafkaMessage[model.Event](message)
	if err != nil {
		log.Error().Err(err).Int64("offset", message.Offset).Msg("skipping malformed booking event")

		return
	}

	shared.InvalidateCaches(ctx, c.cache, constant.CachePrefixReport)

	log.Info().
		Str("type", event.Type).
		Str("booking", event.BookingID).
		Str("room", event.RoomID).
		Msg("booking event handled")
}
