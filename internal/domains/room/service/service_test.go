package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	s3Mocks "guesthouse/infras/s3/mocks"
	roomMocks "guesthouse/internal/domains/room/mocks"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/service"
	roomOfferModel "guesthouse/internal/domains/roomoffer/model"
	roomOfferMocks "guesthouse/internal/domains/roomoffer/service/mocks"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc    service.Room
	repo   *roomMocks.MockRoom
	offers *roomOfferMocks.MockRoomOffer
	cache  *cacheMocks.MockRedisCache
	s3     *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   roomMocks.NewMockRoom(ctrl),
		offers: roomOfferMocks.NewMockRoomOffer(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		s3:     s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.offers, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) allowInvalidation() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f fixture) missCache() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestRoomService_Create(t *testing.T) {
	price := decimal.RequireFromString("2500")
	negative := decimal.RequireFromString("-10")
	photo := &multipart.FileHeader{Filename: "room.PNG"}
	photoURL := "https://cdn.example.com/rooms/photos/a.png"

	tests := []struct {
		name     string
		req      dto.CreateRoomRequest
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "created without files",
			req:  dto.CreateRoomRequest{RoomNumber: "101", RoomType: "Double", PricePerNight: &price, MaxOccupancy: 2},
			setup: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, "101", room.RoomNumber)
					assert.True(t, room.IsAvailable)
					assert.Empty(t, room.Photo)

					return nil
				})
				f.allowInvalidation()
			},
		},
		{
			name: "created with photo",
			req:  dto.CreateRoomRequest{RoomNumber: "102", RoomType: "Suite", PricePerNight: &price, MaxOccupancy: 3, Photo: photo},
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), "", model.PhotoDirectory, gomock.Any(), photo, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
						assert.Contains(t, name, ".png")

						return photoURL, nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, photoURL, room.Photo)

					return nil
				})
				f.allowInvalidation()
			},
		},
		{
			name:     "negative price",
			req:      dto.CreateRoomRequest{RoomNumber: "103", RoomType: "Single", PricePerNight: &negative, MaxOccupancy: 1},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name: "duplicate room number removes upload",
			req:  dto.CreateRoomRequest{RoomNumber: "101", RoomType: "Double", PricePerNight: &price, MaxOccupancy: 2, Photo: photo},
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(photoURL, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
				f.s3.EXPECT().GetObjectNameFromURL("", photoURL).Return("rooms/photos/a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "rooms/photos/a.png").Return(nil)
			},
			wantCode: http.StatusConflict,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(context.Background(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.RoomNumber, res.RoomNumber)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:r1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				dest.(*dto.RoomResponse).ID = "r1"

				return nil
			})

		res, err := f.svc.Get(context.Background(), "r1")

		assert.NoError(t, err)
		assert.Equal(t, "r1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.missCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update_ReplacesPhoto(t *testing.T) {
	f := newFixture(t)
	photo := &multipart.FileHeader{Filename: "new.jpg"}
	oldURL := "https://cdn.example.com/rooms/photos/old.jpg"
	newURL := "https://cdn.example.com/rooms/photos/new.jpg"
	roomType := "Deluxe"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Photo: oldURL}, nil)
	f.s3.EXPECT().UploadFile(gomock.Any(), "", model.PhotoDirectory, gomock.Any(), photo, gomock.Any()).Return(newURL, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, newURL, fields[model.FieldPhoto])
			assert.Equal(t, roomType, fields[model.FieldRoomType])

			return nil
		})
	f.s3.EXPECT().GetObjectNameFromURL("", oldURL).Return("rooms/photos/old.jpg")
	f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "rooms/photos/old.jpg").Return(nil)
	f.allowInvalidation()

	err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{RoomType: roomType, Photo: photo}, "r1")
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("removes row and files", func(t *testing.T) {
		f := newFixture(t)
		floorPlan := "https://cdn.example.com/rooms/floor_plans/p.pdf"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", FloorPlan: floorPlan}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("", floorPlan).Return("rooms/floor_plans/p.pdf")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "rooms/floor_plans/p.pdf").Return(nil)
		f.allowInvalidation()

		err := f.svc.Delete(context.Background(), "r1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Available(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantCode int
		wantArgs []string
	}{
		{name: "no dates", wantArgs: []string{}},
		{name: "date range", checkIn: "2025-08-01", checkOut: "2025-08-04", wantArgs: []string{"free_check_in", "free_check_out"}},
		{name: "only check in", checkIn: "2025-08-01", wantCode: http.StatusBadRequest},
		{name: "check out before check in", checkIn: "2025-08-04", checkOut: "2025-08-01", wantCode: http.StatusBadRequest},
		{name: "same day", checkIn: "2025-08-04", checkOut: "2025-08-04", wantCode: http.StatusBadRequest},
		{name: "bad date", checkIn: "04/08/2025", checkOut: "2025-08-05", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.wantCode == 0 {
				f.missCache()
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
						assert.Equal(t, model.FieldPricePerNight, params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)

						_, args := filter.GetWhereClause()
						for _, name := range tt.wantArgs {
							assert.Contains(t, args, name)
						}

						return []model.Room{{ID: "r1"}}, nil
					})
			}

			res, err := f.svc.Available(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, tt.checkIn, tt.checkOut)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Rooms, 1)
		})
	}
}

func TestRoomService_WithAmenities_RequiresNames(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.WithAmenities(context.Background(), gDto.QueryParams{}, []string{" ", ""})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRoomService_ByDiscount(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantCode int
	}{
		{name: "valid band", min: "10", max: "30"},
		{name: "inverted band", min: "40", max: "10", wantCode: http.StatusBadRequest},
		{name: "above hundred", min: "10", max: "150", wantCode: http.StatusBadRequest},
		{name: "negative", min: "-5", max: "10", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.wantCode == 0 {
				f.missCache()
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			}

			_, err := f.svc.ByDiscount(context.Background(), gDto.QueryParams{},
				decimal.RequireFromString(tt.min), decimal.RequireFromString(tt.max))
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Pricing(t *testing.T) {
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	room := dto.RoomResponse{ID: "r1", PricePerNight: decimal.RequireFromString("2000")}

	hitRoom := func(f fixture) {
		f.cache.EXPECT().Get(gomock.Any(), "room:get:r1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				*dest.(*dto.RoomResponse) = room

				return nil
			})
	}

	t.Run("best offer applied", func(t *testing.T) {
		f := newFixture(t)
		hitRoom(f)

		f.offers.EXPECT().BestForRoom(gomock.Any(), "r1", day).Return(roomOfferModel.RoomSpecialOffer{
			ID:                 "o1",
			DiscountPercentage: decimal.RequireFromString("15"),
			StartDate:          day,
			EndDate:            day,
		}, true, nil)

		res, err := f.svc.Pricing(context.Background(), "r1", day)

		assert.NoError(t, err)
		assert.Equal(t, "2025-07-10", res.Date)
		assert.True(t, res.FinalPrice.Equal(decimal.RequireFromString("1700")))
		assert.NotNil(t, res.Offer)
	})

	t.Run("no offer keeps base price", func(t *testing.T) {
		f := newFixture(t)
		hitRoom(f)

		f.offers.EXPECT().BestForRoom(gomock.Any(), "r1", day).Return(roomOfferModel.RoomSpecialOffer{}, false, nil)

		res, err := f.svc.Pricing(context.Background(), "r1", day)

		assert.NoError(t, err)
		assert.True(t, res.FinalPrice.Equal(room.PricePerNight))
		assert.True(t, res.DiscountPercentage.IsZero())
		assert.Nil(t, res.Offer)
	})
}
