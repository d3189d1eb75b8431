package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is an account; email is stored lowercased.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	FirstName       string    `gorm:"size:50;not null" json:"first_name"`
	LastName        string    `gorm:"size:50;not null" json:"last_name"`
	Role            string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	ProfilePhotoURL *string   `gorm:"size:255" json:"profile_photo_url,omitempty"`
	GoogleID        *string   `gorm:"size:255;uniqueIndex" json:"-"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func (u UserModel) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
