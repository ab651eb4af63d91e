package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	userMocks "guesthouse/internal/domains/user/mocks"
	"guesthouse/internal/domains/user/model"
	"guesthouse/internal/domains/user/model/dto"
	"guesthouse/internal/domains/user/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func withRole(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, userID+"@guesthouse.local")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "admin creates a user",
			ctx:  withRole("admin-1", constant.RoleAdmin),
			req:  dto.CreateUserRequest{Email: "New@Example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, "new@example.com", user.Email)
					assert.Equal(t, constant.RoleUser, user.Level)
					assert.NotEqual(t, "password123", user.Password)

					return nil
				})
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "admin cannot grant superadmin",
			ctx:       withRole("admin-1", constant.RoleAdmin),
			req:       dto.CreateUserRequest{Email: "boss@example.com", Password: "password123", Level: constant.RoleSuperAdmin},
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "duplicate email",
			ctx:  withRole("root", constant.RoleSuperAdmin),
			req:  dto.CreateUserRequest{Email: "taken@example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			ctx:  withRole("root", constant.RoleSuperAdmin),
			req:  dto.CreateUserRequest{Email: "x@example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(tt.ctx, tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	lastLogin := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache miss then repository",
			id:   "user-1",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "user:get:user-1", gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{
					ID: "user-1", Email: "guest@example.com", Level: constant.RoleUser, Active: true, LastLogin: &lastLogin,
				}, nil)
				mockCache.EXPECT().Save(gomock.Any(), "user:get:user-1", gomock.Any(), 3600).Return(nil)
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			id:   "user-1",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, res.ID)
				assert.NotNil(t, res.LastLogin)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	params := gDto.QueryParams{Page: 1, Limit: 2}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{{ID: "a"}, {ID: "b"}}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).Times(2)

	res, err := svc.GetAll(context.Background(), params, gDto.NewFilterGroup())

	assert.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)

	time.Sleep(10 * time.Millisecond)
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	active := false
	admin := constant.RoleAdmin

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "deactivate and promote",
			req:  dto.UpdateUserRequest{Active: &active, Level: &admin},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, model.FieldActive)
						assert.Contains(t, fields, model.FieldLevel)
						assert.NotContains(t, fields, model.FieldFullName)

						return nil
					})
				mockCache.EXPECT().Delete(gomock.Any(), "user:get:user-1").Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name: "missing user",
			req:  dto.UpdateUserRequest{Active: &active},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(withRole("root", constant.RoleSuperAdmin), tt.req, "user-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	err := svc.Delete(withRole("root", constant.RoleSuperAdmin), "root")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), "user:get:user-2").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	err = svc.Delete(withRole("root", constant.RoleSuperAdmin), "user-2")
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
}
