package jwt_test

import (
	"context"
	"testing"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "guesthouse"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "guest@example.com", "user")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "guest@example.com", "admin")
	assert.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty", header: "", wantErr: jwt.ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: jwt.ErrBearerFormat},
		{name: "prefix only", header: "Bearer ", wantErr: jwt.ErrBearerFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
