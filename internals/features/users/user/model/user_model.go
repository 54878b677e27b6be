package model

import (
	"time"
)

// UserModel represents the login accounts table. These are back-office
// operators (admin, receipt creators, report viewers), not donors.
type UserModel struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserName string `gorm:"size:50;uniqueIndex;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"not null" json:"-" validate:"required,min=8"`
	Role     string `gorm:"type:varchar(30);not null;default:'user'" json:"role"`

	// No column default on purpose: GORM omits zero-value fields that carry
	// a default tag on insert, which would turn IsActive: false into true
	// and make a deactivated account impossible to create.
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
