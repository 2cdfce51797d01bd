package mapper

import (
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(e *entity.User) *model.User {
	return &model.User{
		Id:                 e.Id,
		Email:              e.Email,
		FullName:           e.FullName,
		Picture:            e.Picture,
		PasswordHash:       e.PasswordHash,
		SoftwareBackground: e.SoftwareBackground,
		HardwareBackground: e.HardwareBackground,
		CreatedAt:          e.CreatedAt,
		LastLoginAt:        e.LastLoginAt,
	}
}

func (m *UserMapper) ToEntity(mo *model.User) *entity.User {
	updatedAt := mo.UpdatedAt
	return &entity.User{
		Id:                 mo.Id,
		Email:              mo.Email,
		FullName:           mo.FullName,
		Picture:            mo.Picture,
		PasswordHash:       mo.PasswordHash,
		SoftwareBackground: mo.SoftwareBackground,
		HardwareBackground: mo.HardwareBackground,
		CreatedAt:          mo.CreatedAt,
		UpdatedAt:          &updatedAt,
		LastLoginAt:        mo.LastLoginAt,
	}
}
