package dto

import (
	"time"

	"github.com/OzanKEreal/EndlleesTube/internal/auth/domain"
)

// UserOutput is the public account view. It never carries the password hash.
type UserOutput struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}

// AuthResult is what register and login hand back to the transport layer.
type AuthResult struct {
	User   *UserOutput
	Tokens TokenPair
}
