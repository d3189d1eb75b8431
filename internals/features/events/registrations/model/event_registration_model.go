package model

import (
	"time"

	eventModel "campus_events_backend/internals/features/events/events/model"
	userModel "campus_events_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusRegistered = "registered"
	StatusCancelled  = "cancelled"
)

// ActiveUniqueIndexSQL backs "one active registration per (event, user)".
const ActiveUniqueIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS ux_event_registrations_active
ON event_registrations (event_registration_event_id, event_registration_user_id)
WHERE event_registration_status = 'registered'`

type EventRegistrationModel struct {
	ID      uuid.UUID `gorm:"column:event_registration_id;type:uuid;primaryKey" json:"event_registration_id"`
	EventID uuid.UUID `gorm:"column:event_registration_event_id;type:uuid;not null;index" json:"event_registration_event_id"`
	UserID  uuid.UUID `gorm:"column:event_registration_user_id;type:uuid;not null;index" json:"event_registration_user_id"`

	Status       string    `gorm:"column:event_registration_status;type:varchar(20);not null" json:"event_registration_status"`
	RegisteredAt time.Time `gorm:"column:event_registration_date;not null" json:"event_registration_date"`
	UpdatedAt    time.Time `gorm:"column:event_registration_updated_at;autoUpdateTime" json:"event_registration_updated_at"`

	Event *eventModel.EventModel `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	User  *userModel.UserModel   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}

func (r *EventRegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusRegistered
	}
	return nil
}
