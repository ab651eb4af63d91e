package dto_test

import (
	"testing"

	"guesthouse/infras/jwt"
	"guesthouse/internal/domains/auth/model/dto"
	"guesthouse/shared/constant"
	"guesthouse/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	fullName := "Anna Petrova"
	req := dto.RegisterRequest{
		Email:    "  Anna@Example.COM ",
		Password: "password123",
		FullName: &fullName,
	}

	user := req.ToUserModel(constant.RoleUser, "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.True(t, user.Active)
	assert.Equal(t, "anna@example.com", user.CreatedBy)
}

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  dto.RegisterRequest{Email: "a@example.com", Password: "password123", ConfirmPassword: "password123"},
		},
		{
			name:    "passwords differ",
			req:     dto.RegisterRequest{Email: "a@example.com", Password: "password123", ConfirmPassword: "password124"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     dto.RegisterRequest{Email: "a@example.com", Password: "short", ConfirmPassword: "short"},
			wantErr: true,
		},
		{
			name:    "bad email",
			req:     dto.RegisterRequest{Email: "not-an-email", Password: "password123", ConfirmPassword: "password123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	same := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"}
	assert.Error(t, validator.ValidateStruct(&same))

	changed := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}
	assert.NoError(t, validator.ValidateStruct(&changed))
}
