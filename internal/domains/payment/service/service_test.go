package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	bookingDto "guesthouse/internal/domains/booking/model/dto"
	bookingServiceMocks "guesthouse/internal/domains/booking/service/mocks"
	paymentMocks "guesthouse/internal/domains/payment/mocks"
	"guesthouse/internal/domains/payment/model"
	"guesthouse/internal/domains/payment/model/dto"
	"guesthouse/internal/domains/payment/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const bookingID = "6f2a4a61-6b53-4c8e-9a64-0d1c7e3c5b21"

type fixture struct {
	svc      service.Payment
	repo     *paymentMocks.MockPayment
	bookings *bookingServiceMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     paymentMocks.NewMockPayment(ctrl),
		bookings: bookingServiceMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) expectInvalidate() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestPaymentService_Create(t *testing.T) {
	validRequest := dto.CreatePaymentRequest{
		BookingID:     bookingID,
		Amount:        decimal.NewFromInt(4500),
		PaymentMethod: model.MethodCard,
	}

	tests := []struct {
		name     string
		req      dto.CreatePaymentRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "success",
			req:  validRequest,
			setup: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p model.Payment) error {
					assert.Equal(t, model.StatusPending, p.Status)
					assert.Equal(t, bookingID, p.BookingID)

					return nil
				})
				f.expectInvalidate()
			},
		},
		{
			name: "zero amount",
			req: dto.CreatePaymentRequest{
				BookingID:     bookingID,
				Amount:        decimal.Zero,
				PaymentMethod: model.MethodCash,
			},
			setup:    func(f fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			req:  validRequest,
			setup: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{}, failure.NotFound("booking not found"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking of another guest",
			req:  validRequest,
			setup: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{}, failure.Forbidden("forbidden"))
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "repository error",
			req:  validRequest,
			setup: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(context.Background(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestPaymentService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "payment:get:p-1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "p-1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		_, err := f.svc.Get(context.Background(), "p-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("from repository", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{ID: "p-1", BookingID: bookingID, Amount: decimal.NewFromInt(100)}, nil)
		f.cache.EXPECT().Save(gomock.Any(), "payment:get:p-1", gomock.Any(), 3600).Return(nil)

		res, err := f.svc.Get(context.Background(), "p-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, bookingID, res.BookingID)
	})
}

func TestPaymentService_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{ID: "p-1"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])

				return nil
			})
		f.expectInvalidate()

		err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{Status: model.StatusCompleted}, "p-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("nothing to update", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{}, "p-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{Status: model.StatusCompleted}, "p-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_Delete(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{ID: "p-1"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.expectInvalidate()

	err := f.svc.Delete(context.Background(), "p-1")
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestPaymentService_ByBooking(t *testing.T) {
	t.Run("lists payments of a visible booking", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{ID: bookingID}, nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "payments.booking_id")
			assert.Len(t, args, 1)

			return 1, nil
		})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Payment, error) {
				assert.Equal(t, model.FieldPaymentDate, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.Payment{{ID: "p-1", BookingID: bookingID}}, nil
			})
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.ByBooking(context.Background(), bookingID, gDto.QueryParams{Page: 1, Limit: 10})
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Payments, 1)
	})

	t.Run("hidden booking", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), bookingID).Return(bookingDto.BookingResponse{}, failure.Forbidden("forbidden"))

		_, err := f.svc.ByBooking(context.Background(), bookingID, gDto.QueryParams{})
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
