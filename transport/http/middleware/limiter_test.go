package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	"guesthouse/shared/cache"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	"guesthouse/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		setupMock     func(m *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:     "disabled",
			enable:   false,
			wantCode: http.StatusOK,
		},
		{
			name:   "first request in window",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), "limiter:203.0.113.7:tests", gomock.Any()).Return(fmt.Errorf("get: %w", cache.Nil))
				m.EXPECT().Save(gomock.Any(), "limiter:203.0.113.7:tests", 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "2",
		},
		{
			name:   "over the limit",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
					*value.(*int) = 3

					return nil
				})
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "cache down lets traffic through",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(redisCache)
			}

			app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(tt.enable), redisCache)
			handler := app.RateLimit()(http.HandlerFunc(ok))

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.RemoteAddr = "203.0.113.7:52311"
			req.Header.Set(constant.RequestHeaderUserAgent, "tests")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
