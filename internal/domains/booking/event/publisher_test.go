package event_test

import (
	"context"
	"errors"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	kafkaMocks "guesthouse/infras/kafka/mocks"
	"guesthouse/internal/domains/booking/event"
	"guesthouse/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Booking.EventTopic = "guesthouse.bookings"
	cfg.Kafka.Breaker.MaxFailures = 2
	cfg.Kafka.Breaker.TimeoutSeconds = 60

	return cfg
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	publisher := event.New(client, newConfig())

	created := model.Event{Type: model.EventCreated, BookingID: "b1"}

	client.EXPECT().SendMessages(gomock.Any(), "guesthouse.bookings", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)
			assert.Equal(t, "b1", messages[0].Key)
			assert.Equal(t, created, messages[0].Value)

			return nil
		})

	assert.NoError(t, publisher.Publish(context.Background(), created))
}

func TestPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	publisher := event.New(client, newConfig())

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(2)

	for range 2 {
		err := publisher.Publish(context.Background(), model.Event{Type: model.EventCancelled})
		assert.ErrorContains(t, err, "broker down")
	}

	err := publisher.Publish(context.Background(), model.Event{Type: model.EventCancelled})
	assert.ErrorIs(t, err, event.ErrPublisherUnavailable)
}
