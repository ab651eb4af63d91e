package event

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	"guesthouse/internal/domains/booking/model"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const breakerName = "booking-events"

// ErrPublisherUnavailable is returned while the breaker is open.
var ErrPublisherUnavailable = errors.New("booking event publisher is unavailable")

type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

type publisherImpl struct {
	client  kafka.Client
	topic   string
	breaker *gobreaker.CircuitBreaker
}

// New returns a Kafka publisher guarded by a circuit breaker that opens after
// cfg.Kafka.Breaker.MaxFailures consecutive failures.
func New(client kafka.Client, cfg *config.Config) Publisher {
	maxFailures := cfg.Kafka.Breaker.MaxFailures

	return &publisherImpl{
		client: client,
		topic:  cfg.App.Booking.EventTopic,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    breakerName,
			Timeout: time.Duration(cfg.Kafka.Breaker.TimeoutSeconds) * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return maxFailures > 0 && counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		}),
	}
}

func (p *publisherImpl) Publish(ctx context.Context, event model.Event) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.BookingID, Value: event})
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrPublisherUnavailable
	}

	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}
