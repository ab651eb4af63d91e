package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	guestMocks "guesthouse/internal/domains/guest/mocks"
	guestModel "guesthouse/internal/domains/guest/model"
	reviewMocks "guesthouse/internal/domains/review/mocks"
	"guesthouse/internal/domains/review/model"
	"guesthouse/internal/domains/review/model/dto"
	"guesthouse/internal/domains/review/service"
	roomMocks "guesthouse/internal/domains/room/mocks"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	userID  = "user-1"
	guestID = "guest-1"
	roomID  = "0b0b1f7e-53a4-4d0e-9d7a-3f0b6b1a2c11"
)

type fixture struct {
	svc    service.Review
	repo   *reviewMocks.MockReview
	rooms  *roomMocks.MockRoom
	guests *guestMocks.MockGuest
	cache  *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   reviewMocks.NewMockReview(ctrl),
		rooms:  roomMocks.NewMockRoom(ctrl),
		guests: guestMocks.NewMockGuest(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.rooms, f.guests, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) expectInvalidate() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f fixture) expectGuest(id string) {
	f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: id, UserID: userID}, nil)
}

func guestContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func staffContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestReviewService_Create(t *testing.T) {
	req := dto.CreateReviewRequest{RoomID: roomID, Rating: 5, Comment: "lovely"}

	tests := []struct {
		name     string
		ctx      context.Context
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "success",
			ctx:  guestContext(),
			setup: func(f fixture) {
				f.expectGuest(guestID)
				f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r model.Review) error {
					assert.Equal(t, guestID, r.GuestID)
					assert.Equal(t, 5, r.Rating)

					return nil
				})
				f.expectInvalidate()
			},
		},
		{
			name:     "anonymous",
			ctx:      context.Background(),
			setup:    func(f fixture) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "without guest profile",
			ctx:  guestContext(),
			setup: func(f fixture) {
				f.expectGuest(constant.Empty)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown room",
			ctx:  guestContext(),
			setup: func(f fixture) {
				f.expectGuest(guestID)
				f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "second review of the same room",
			ctx:  guestContext(),
			setup: func(f fixture) {
				f.expectGuest(guestID)
				f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(tt.ctx, req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, roomID, res.RoomID)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	rating := 2

	t.Run("author", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r-1", GuestID: guestID}, nil)
		f.expectGuest(guestID)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectInvalidate()

		err := f.svc.Update(guestContext(), dto.UpdateReviewRequest{Rating: &rating}, "r-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("someone else", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r-1", GuestID: "guest-2"}, nil)
		f.expectGuest(guestID)

		err := f.svc.Update(guestContext(), dto.UpdateReviewRequest{Rating: &rating}, "r-1")
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{}, nil)

		err := f.svc.Update(guestContext(), dto.UpdateReviewRequest{Rating: &rating}, "r-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReviewService_Delete(t *testing.T) {
	t.Run("staff skips the ownership check", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r-1", GuestID: "guest-2"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.expectInvalidate()

		err := f.svc.Delete(staffContext(), "r-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("guest cannot delete another review", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r-1", GuestID: "guest-2"}, nil)
		f.expectGuest(guestID)

		err := f.svc.Delete(guestContext(), "r-1")
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r-1", GuestID: guestID}, nil)
		f.expectGuest(guestID)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := f.svc.Delete(guestContext(), "r-1")
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestReviewService_ByRoom(t *testing.T) {
	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.ByRoom(context.Background(), roomID, gDto.QueryParams{})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("served from cache", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.ByRoom(context.Background(), roomID, gDto.QueryParams{Page: 1, Limit: 10})
		assert.NoError(t, err)
	})
}

func TestRatingRange(t *testing.T) {
	low, high := 2, 4

	filters, err := service.RatingRange(&low, &high)
	assert.NoError(t, err)

	group := gDto.NewFilterGroup(filters...)
	where, args := group.GetWhereClause()
	assert.Equal(t, "(reviews.rating >= :min_rating AND reviews.rating <= :max_rating)", where)
	assert.Equal(t, 2, args["min_rating"])

	_, err = service.RatingRange(&high, &low)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	filters, err = service.RatingRange(nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, filters)
}
