package model

import (
	"time"

	categoryModel "campus_events_backend/internals/features/events/categories/model"
	userModel "campus_events_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	ID uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`

	Title       string  `gorm:"column:event_title;size:100;not null" json:"event_title"`
	Description *string `gorm:"column:event_description;type:text" json:"event_description,omitempty"`
	Location    string  `gorm:"column:event_location;size:100;not null" json:"event_location"`

	StartDatetime time.Time `gorm:"column:event_start_datetime;not null;index" json:"event_start_datetime"`
	EndDatetime   time.Time `gorm:"column:event_end_datetime;not null" json:"event_end_datetime"`

	CategoryID   *uint     `gorm:"column:event_category_id;index" json:"event_category_id"`
	OrganizerID  uuid.UUID `gorm:"column:event_organizer_id;type:uuid;not null;index" json:"event_organizer_id"`
	MaxAttendees *int      `gorm:"column:event_max_attendees" json:"event_max_attendees,omitempty"`
	IsPublic     bool      `gorm:"column:event_is_public;not null" json:"event_is_public"`
	ImageURL     *string   `gorm:"column:event_image_url;size:255" json:"event_image_url,omitempty"`

	CreatedAt time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	UpdatedAt time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`

	Category  *categoryModel.CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Organizer *userModel.UserModel         `gorm:"foreignKey:OrganizerID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (EventModel) TableName() string {
	return "events"
}

func (e *EventModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// HasCapacity reports whether a bound is configured.
func (e *EventModel) HasCapacity() bool {
	return e.MaxAttendees != nil && *e.MaxAttendees > 0
}
