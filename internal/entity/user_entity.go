package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                 uuid.UUID
	Email              string
	FullName           string
	Picture            *string
	PasswordHash       *string
	SoftwareBackground *string
	HardwareBackground *string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	LastLoginAt        *time.Time
}
