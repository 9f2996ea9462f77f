package models

import (
	"github.com/pahanaedu/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'USER'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
	}
}

// UserModelFromDomain converts a domain User to its persistence model
func UserModelFromDomain(user *identity.User) *UserModel {
	model := &UserModel{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
	}
	model.FromDomainBaseEntity(user.BaseEntity)
	return model
}
