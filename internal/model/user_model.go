package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName           string    `gorm:"type:varchar(255);not null"`
	Picture            *string   `gorm:"type:text"`
	PasswordHash       *string   `gorm:"type:text"`
	SoftwareBackground *string   `gorm:"type:text"`
	HardwareBackground *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
	LastLoginAt        *time.Time
}

func (User) TableName() string {
	return "users"
}
