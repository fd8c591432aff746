package dto

import (
	"time"

	"github.com/homestay/rental-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned by POST /api/auth/register.
type RegisterResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone     *string   `json:"phone"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ProfileResponse is the full profile plus the caller's token.
type ProfileResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Gender  *string `json:"gender"`
	Dob     *string `json:"dob"`
	Address *string `json:"address"`
	Avatar    *string   `json:"avatar"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewRegisterResponse never includes the password hash.
func NewRegisterResponse(user *domain.User, token string, expiresAt time.Time) RegisterResponse {
	return RegisterResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Token:     token,
		ExpiresAt: expiresAt,
	}
}

// NewProfileResponse never includes the password hash.
func NewProfileResponse(user *domain.User, token string, expiresAt time.Time) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Gender:    user.Gender,
		Dob:       user.Dob,
		Address:   user.Address,
		Avatar:    user.Avatar,
		Token:     token,
		ExpiresAt: expiresAt,
	}
}
