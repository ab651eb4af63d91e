package service_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	amenityMocks "guesthouse/internal/domains/amenity/mocks"
	"guesthouse/internal/domains/amenity/model"
	"guesthouse/internal/domains/amenity/model/dto"
	"guesthouse/internal/domains/amenity/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Amenity, *amenityMocks.MockAmenity, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := amenityMocks.NewMockAmenity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestAmenityService_Create(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		req       dto.CreateAmenityRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "created",
			req:  dto.CreateAmenityRequest{Name: "  Wi-Fi "},
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, amenity model.Amenity) error {
					assert.Equal(t, "Wi-Fi", amenity.Name)
					assert.NotEmpty(t, amenity.ID)

					return nil
				})
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate name",
			req:  dto.CreateAmenityRequest{Name: "wi-fi"},
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Wi-Fi", res.Name)
		})
	}
}

func TestAmenityService_Get(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), "amenity:get:missing", gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Amenity{}, nil)

	_, err := svc.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAmenityService_UpdateAndDelete(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("update missing amenity", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateAmenityRequest{Name: "Sauna"}, "a-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("update renames", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Update(context.Background(), dto.UpdateAmenityRequest{Name: "Sauna"}, "a-1"))
	})

	t.Run("delete", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "a-1"))
	})

	time.Sleep(10 * time.Millisecond)
}

func TestAmenityService_SetRoomAmenities(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.SetRoomAmenitiesRequest
		setupMock func()
		wantCode  int
		wantLen   int
	}{
		{
			name: "duplicates collapse",
			req:  dto.SetRoomAmenitiesRequest{AmenityIDs: []string{"a-1", "a-2", "a-1"}},
			setupMock: func() {
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				mockRepo.EXPECT().ReplaceRoomAmenities(gomock.Any(), "room-1", []string{"a-1", "a-2"}).Return(nil)
				mockRepo.EXPECT().GetByRoom(gomock.Any(), "room-1").
					Return([]model.Amenity{{ID: "a-1", Name: "Balcony"}, {ID: "a-2", Name: "Wi-Fi"}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "unknown amenity",
			req:  dto.SetRoomAmenitiesRequest{AmenityIDs: []string{"a-1", "a-9"}},
			setupMock: func() {
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "empty list clears",
			req:  dto.SetRoomAmenitiesRequest{},
			setupMock: func() {
				mockRepo.EXPECT().ReplaceRoomAmenities(gomock.Any(), "room-1", []string{}).Return(nil)
				mockRepo.EXPECT().GetByRoom(gomock.Any(), "room-1").Return([]model.Amenity{}, nil)
			},
		},
		{
			name: "missing room",
			req:  dto.SetRoomAmenitiesRequest{AmenityIDs: []string{"a-1"}},
			setupMock: func() {
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				mockRepo.EXPECT().ReplaceRoomAmenities(gomock.Any(), "room-1", []string{"a-1"}).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.SetRoomAmenities(context.Background(), "room-1", tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res, tt.wantLen)
		})
	}
}

// clearedPatterns records every Clear pattern the service issues from its background invalidation.
func clearedPatterns(mockCache *cacheMocks.MockRedisCache) func() []string {
	var (
		mu       sync.Mutex
		patterns []string
	)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pattern string) error {
		mu.Lock()
		defer mu.Unlock()

		patterns = append(patterns, pattern)

		return nil
	}).AnyTimes()

	return func() []string {
		mu.Lock()
		defer mu.Unlock()

		return slices.Clone(patterns)
	}
}

func TestAmenityService_ChangesClearRoomCaches(t *testing.T) {
	roomPattern := constant.CachePrefixRoom + constant.Asterix

	t.Run("set room amenities", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)
		cleared := clearedPatterns(mockCache)

		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		mockRepo.EXPECT().ReplaceRoomAmenities(gomock.Any(), "room-1", []string{"a-1"}).Return(nil)
		mockRepo.EXPECT().GetByRoom(gomock.Any(), "room-1").Return([]model.Amenity{{ID: "a-1", Name: "Balcony"}}, nil)

		_, err := svc.SetRoomAmenities(context.Background(), "room-1", dto.SetRoomAmenitiesRequest{AmenityIDs: []string{"a-1"}})
		assert.NoError(t, err)

		assert.Eventually(t, func() bool { return slices.Contains(cleared(), roomPattern) }, time.Second, 5*time.Millisecond)
	})

	t.Run("rename", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)
		cleared := clearedPatterns(mockCache)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Update(context.Background(), dto.UpdateAmenityRequest{Name: "Sauna"}, "a-1"))

		assert.Eventually(t, func() bool { return slices.Contains(cleared(), roomPattern) }, time.Second, 5*time.Millisecond)
	})
}
