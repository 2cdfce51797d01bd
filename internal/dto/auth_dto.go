package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	Name               string `json:"name" validate:"required"`
	SoftwareBackground string `json:"software_background,omitempty"`
	HardwareBackground string `json:"hardware_background,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty"`
	Picture            *string `json:"picture,omitempty"`
	SoftwareBackground *string `json:"software_background,omitempty"`
	HardwareBackground *string `json:"hardware_background,omitempty"`
}

type UserResponse struct {
	Id                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Picture            *string    `json:"picture,omitempty"`
	SoftwareBackground *string    `json:"software_background,omitempty"`
	HardwareBackground *string    `json:"hardware_background,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLoginAt        *time.Time `json:"last_login,omitempty"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
