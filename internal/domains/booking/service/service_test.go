package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	eventMocks "guesthouse/internal/domains/booking/event/mocks"
	bookingMocks "guesthouse/internal/domains/booking/mocks"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/service"
	guestMocks "guesthouse/internal/domains/guest/mocks"
	guestModel "guesthouse/internal/domains/guest/model"
	roomMocks "guesthouse/internal/domains/room/mocks"
	roomModel "guesthouse/internal/domains/room/model"
	roomOfferModel "guesthouse/internal/domains/roomoffer/model"
	roomOfferMocks "guesthouse/internal/domains/roomoffer/service/mocks"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	userID  = "user-1"
	guestID = "guest-1"
	roomID  = "0b0b1f7e-53a4-4d0e-9d7a-3f0b6b1a2c11"
)

type fixture struct {
	svc       service.Booking
	repo      *bookingMocks.MockBooking
	rooms     *roomMocks.MockRoom
	guests    *guestMocks.MockGuest
	offers    *roomOfferMocks.MockRoomOffer
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	cfg       *config.Config
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		guests:    guestMocks.NewMockGuest(ctrl),
		offers:    roomOfferMocks.NewMockRoomOffer(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Booking.CancellationWindowHours = 24

	f.cfg = cfg
	f.svc = service.New(f.repo, f.rooms, f.guests, f.offers, f.publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func guestContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func staffContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func (f fixture) withGuest() {
	f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: guestID, UserID: userID}, nil).AnyTimes()
}

func (f fixture) allowSideEffects() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f fixture) runLocked() {
	f.repo.EXPECT().WithRoomLock(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func room() roomModel.Room {
	return roomModel.Room{ID: roomID, RoomNumber: "101", PricePerNight: decimal.RequireFromString("2000"), MaxOccupancy: 2, IsAvailable: true}
}

func future(days int) string {
	return timezone.Today().AddDate(0, 0, days).Format(constant.DateOnlyFormat)
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateBookingRequest
		setup    func(f fixture)
		wantCode int
		check    func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "priced at the room rate",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(13), GuestsCount: 2},
			setup: func(f fixture) {
				f.withGuest()
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
				f.runLocked()
				f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), roomID, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
						assert.Equal(t, guestID, b.GuestID)
						assert.Equal(t, model.StatusPending, b.Status)

						return nil
					})
				f.allowSideEffects()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, 3, res.Nights)
				assert.Equal(t, "101", res.RoomNumber)
				assert.True(t, res.TotalPrice.Equal(decimal.RequireFromString("6000")))
			},
		},
		{
			name: "priced with best offer when offers apply",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(13), GuestsCount: 2},
			setup: func(f fixture) {
				f.cfg.App.Booking.ApplyOffers = true
				f.withGuest()
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
				f.offers.EXPECT().BestForRoom(gomock.Any(), roomID, gomock.Any()).
					Return(roomOfferModel.RoomSpecialOffer{DiscountPercentage: decimal.RequireFromString("10")}, true, nil)
				f.runLocked()
				f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), roomID, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.allowSideEffects()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.True(t, res.TotalPrice.Equal(decimal.RequireFromString("5400")))
			},
		},
		{
			name: "overlapping confirmed booking",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(12), GuestsCount: 1},
			setup: func(f fixture) {
				f.withGuest()
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
				f.runLocked()
				f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "more guests than the room holds",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(12), GuestsCount: 3},
			setup: func(f fixture) {
				f.withGuest()
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room flagged unavailable",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(12), GuestsCount: 1},
			setup: func(f fixture) {
				f.withGuest()

				closed := room()
				closed.IsAvailable = false
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "check out not after check in",
			req:      dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(10), GuestsCount: 1},
			setup:    func(f fixture) { f.withGuest() },
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room does not exist",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(11), GuestsCount: 1},
			setup: func(f fixture) {
				f.withGuest()
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "no guest profile",
			req:  dto.CreateBookingRequest{RoomID: roomID, CheckIn: future(10), CheckOut: future(11), GuestsCount: 1},
			setup: func(f fixture) {
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(guestContext(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestBookingService_Modify(t *testing.T) {
	existing := model.Booking{
		ID:          "b1",
		GuestID:     guestID,
		RoomID:      roomID,
		CheckIn:     timezone.Today().AddDate(0, 0, 5),
		CheckOut:    timezone.Today().AddDate(0, 0, 7),
		Status:      model.StatusConfirmed,
		GuestsCount: 1,
	}
	guests := 2

	t.Run("reprices the new stay", func(t *testing.T) {
		f := newFixture(t)
		f.withGuest()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
		f.runLocked()
		f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), roomID, gomock.Any(), gomock.Any(), "b1").Return(false, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, guests, fields[model.FieldGuestsCount])
				assert.True(t, fields[model.FieldTotalPrice].(decimal.Decimal).Equal(decimal.RequireFromString("8000")))

				return nil
			})
		f.allowSideEffects()

		res, err := f.svc.Modify(guestContext(), dto.ModifyBookingRequest{CheckOut: future(9), GuestsCount: &guests}, "b1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 4, res.Nights)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		f := newFixture(t)
		f.withGuest()

		other := existing
		other.GuestID = "guest-2"
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(other, nil)

		_, err := f.svc.Modify(guestContext(), dto.ModifyBookingRequest{GuestsCount: &guests}, "b1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("cancelled booking", func(t *testing.T) {
		f := newFixture(t)
		f.withGuest()

		cancelled := existing
		cancelled.Status = model.StatusCancelled
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		_, err := f.svc.Modify(guestContext(), dto.ModifyBookingRequest{GuestsCount: &guests}, "b1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("room flagged unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.withGuest()

		closed := room()
		closed.IsAvailable = false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil)

		_, err := f.svc.Modify(guestContext(), dto.ModifyBookingRequest{CheckOut: future(9)}, "b1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	pending := model.Booking{ID: "b1", RoomID: roomID, Status: model.StatusPending}

	tests := []struct {
		name     string
		booking  model.Booking
		overlap  bool
		wantCode int
	}{
		{name: "confirmed", booking: pending},
		{name: "overlaps a confirmed stay", booking: pending, overlap: true, wantCode: http.StatusConflict},
		{name: "already confirmed", booking: model.Booking{ID: "b1", Status: model.StatusConfirmed}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.booking.Status == model.StatusPending {
				f.runLocked()
				f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), roomID, gomock.Any(), gomock.Any(), "b1").Return(tt.overlap, nil)
			}

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])

						return nil
					})
				f.allowSideEffects()
			}

			err := f.svc.Confirm(staffContext(), "b1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	inDays := func(days int) time.Time { return timezone.Today().AddDate(0, 0, days) }

	tests := []struct {
		name     string
		ctx      context.Context
		booking  model.Booking
		wantCode int
	}{
		{
			name:    "owner cancels early",
			ctx:     guestContext(),
			booking: model.Booking{ID: "b1", GuestID: guestID, Status: model.StatusConfirmed, CheckIn: inDays(3)},
		},
		{
			name:    "staff cancels any booking",
			ctx:     staffContext(),
			booking: model.Booking{ID: "b1", GuestID: "guest-9", Status: model.StatusPending, CheckIn: inDays(5)},
		},
		{
			name:     "check-in is tomorrow",
			ctx:      guestContext(),
			booking:  model.Booking{ID: "b1", GuestID: guestID, Status: model.StatusConfirmed, CheckIn: inDays(1)},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "already cancelled",
			ctx:      guestContext(),
			booking:  model.Booking{ID: "b1", GuestID: guestID, Status: model.StatusCancelled, CheckIn: inDays(5)},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "another guest's booking",
			ctx:      guestContext(),
			booking:  model.Booking{ID: "b1", GuestID: "guest-9", Status: model.StatusConfirmed, CheckIn: inDays(5)},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withGuest()

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

						return nil
					})
				f.allowSideEffects()
			}

			err := f.svc.Cancel(tt.ctx, "b1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Get_ChecksOwnerOnCacheHit(t *testing.T) {
	f := newFixture(t)
	f.withGuest()

	f.cache.EXPECT().Get(gomock.Any(), "booking:get:b1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) error {
			dest.(*dto.BookingResponse).GuestID = "guest-9"

			return nil
		})

	_, err := f.svc.Get(guestContext(), "b1")

	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestBookingService_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.Get(staffContext(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_LongStays_RejectsNonPositiveNights(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.LongStays(staffContext(), gDto.QueryParams{}, 0)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_FutureByRoom(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(), nil)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, model.FieldCheckIn, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Equal(t, roomID, args["room_id"])
			assert.Equal(t, model.StatusCancelled, args["not_status"])

			return []model.Booking{{ID: "b1"}}, nil
		})

	res, err := f.svc.FutureByRoom(staffContext(), roomID, gDto.QueryParams{Page: 1, Limit: 10})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
}
