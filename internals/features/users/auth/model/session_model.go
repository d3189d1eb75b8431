package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionModel is a server-side login session. Only the HMAC of the
// opaque session id is stored; the id itself lives in the client cookie.
type SessionModel struct {
	ID     uuid.UUID `gorm:"column:session_id;type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"column:session_user_id;type:uuid;not null;index" json:"user_id"`

	TokenHash string         `gorm:"column:session_token_hash;size:64;not null;uniqueIndex" json:"-"`
	Data      datatypes.JSON `gorm:"column:session_data" json:"data"`

	ExpiresAt time.Time `gorm:"column:session_expires_at;not null;index" json:"expires_at"`
	UserAgent *string   `gorm:"column:session_user_agent" json:"user_agent,omitempty"`
	IP        *string   `gorm:"column:session_ip;size:64" json:"ip,omitempty"`

	CreatedAt time.Time `gorm:"column:session_created_at;autoCreateTime" json:"created_at"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

func (s *SessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
