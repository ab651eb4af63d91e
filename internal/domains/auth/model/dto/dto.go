package dto

import (
	"strings"
	"time"

	"guesthouse/infras/jwt"
	userModel "guesthouse/internal/domains/user/model"
	userDto "guesthouse/internal/domains/user/model/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email           string  `json:"email"               validate:"required,email,max=255"`
	Password        string  `json:"password"            validate:"required,min=8,max=72"`
	ConfirmPassword string  `json:"confirm_password"    validate:"required,eqfield=Password"`
	FullName        *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=200"`
}

func (r *RegisterRequest) ToUserModel(level string, hashedPassword string) userModel.User {
	email := strings.ToLower(strings.TrimSpace(r.Email))

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashedPassword,
		Level:    level,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.NewMetadata(email, timezone.Now()),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse = LoginResponse

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

// MeResponse is the account of the signed-in user.
type MeResponse = userDto.UserResponse
