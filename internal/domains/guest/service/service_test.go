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
	"guesthouse/internal/domains/guest/model"
	"guesthouse/internal/domains/guest/model/dto"
	"guesthouse/internal/domains/guest/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func signedIn(userID, email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func strPtr(s string) *string {
	return &s
}

func TestGuestService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpsertGuestRequest
		setupMock func()
		wantCode  int
		wantPhone string
	}{
		{
			name: "creates profile with normalised phone",
			ctx:  signedIn("user-1", "anna@example.com"),
			req:  dto.UpsertGuestRequest{FirstName: "Anna", LastName: "Petrova", PhoneNumber: "8 (912) 345-67-89"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, guest model.Guest) error {
					assert.Equal(t, "user-1", guest.UserID)
					assert.Equal(t, "anna@example.com", guest.Email)
					assert.Equal(t, "+79123456789", guest.PhoneNumber)

					return nil
				})
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantPhone: "+79123456789",
		},
		{
			name: "updates existing profile using country as phone region",
			ctx:  signedIn("user-2", "john@example.com"),
			req: dto.UpsertGuestRequest{
				FirstName: "John", LastName: "Smith", PhoneNumber: "(650) 253-0000", Country: strPtr("us"),
			},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "guest-2", UserID: "user-2"}, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "+16502530000", fields[model.FieldPhoneNumber])
						assert.Equal(t, "john@example.com", fields[constant.FieldModifiedBy])

						return nil
					})
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantPhone: "+16502530000",
		},
		{
			name:      "invalid phone",
			ctx:       signedIn("user-1", "anna@example.com"),
			req:       dto.UpsertGuestRequest{FirstName: "Anna", LastName: "Petrova", PhoneNumber: "12"},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "anonymous caller",
			ctx:       context.Background(),
			req:       dto.UpsertGuestRequest{FirstName: "Anna", LastName: "Petrova", PhoneNumber: "+79123456789"},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "email used by another guest",
			ctx:  signedIn("user-3", "dup@example.com"),
			req:  dto.UpsertGuestRequest{FirstName: "Ivan", LastName: "Ivanov", PhoneNumber: "+79123456789"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Upsert(tt.ctx, tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPhone, res.PhoneNumber)
		})
	}
}

func TestGuestService_Mine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	svc := service.New(mockRepo, &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Guest{ID: "guest-1", FirstName: "Anna", LastName: "Petrova"}, nil)

		res, err := svc.Mine(signedIn("user-1", "anna@example.com"))

		assert.NoError(t, err)
		assert.Equal(t, "Anna Petrova", res.FullName)
	})

	t.Run("no profile yet", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		_, err := svc.Mine(signedIn("user-1", "anna@example.com"))

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("api key caller has no profile", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleSuperAdmin)

		_, err := svc.Mine(ctx)

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestGuestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss then repository",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "guest:get:guest-1", gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "guest-1"}, nil)
				mockCache.EXPECT().Save(gomock.Any(), "guest:get:guest-1", gomock.Any(), 3600).Return(nil)
			},
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "guest-1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "guest-1", res.ID)
		})
	}
}

func TestGuestService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Guest{{ID: "g1"}, {ID: "g2"}}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).Times(2)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.NewFilterGroup())
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Guests, 2)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
}
