package repository

import (
	"context"
	"strings"
	"time"

	"campus_events_backend/internals/features/events/events/dto"
	"campus_events_backend/internals/features/events/events/model"
	regModel "campus_events_backend/internals/features/events/registrations/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// attendeesSQL counts the active registrations of e.
const attendeesSQL = `(SELECT COUNT(*) FROM event_registrations r
WHERE r.event_registration_event_id = e.event_id
AND r.event_registration_status = 'registered')`

const listColumns = `e.event_id AS id, e.event_title AS title, e.event_description AS description,
e.event_location AS location, e.event_start_datetime AS date, e.event_end_datetime AS end_datetime,
e.event_is_public AS is_public, e.event_image_url AS event_image_url,
e.event_category_id AS category_id, c.category_name AS category, c.category_color AS category_color,
e.event_organizer_id AS organizer_id, u.first_name AS organizer_first_name, u.last_name AS organizer_last_name,
e.event_max_attendees AS max_attendees, ` + attendeesSQL + ` AS attendees`

func listBase(db *gorm.DB) *gorm.DB {
	return db.Table("events AS e").
		Joins("LEFT JOIN categories c ON c.category_id = e.event_category_id").
		Joins("LEFT JOIN users u ON u.id = e.event_organizer_id")
}

/* ====================== CRUD ====================== */

func FindEventByID(db *gorm.DB, id uuid.UUID) (*model.EventModel, error) {
	var ev model.EventModel
	if err := db.Preload("Category").Where("event_id = ?", id).First(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func CreateEvent(db *gorm.DB, ev *model.EventModel) error {
	return db.Create(ev).Error
}

// SaveEvent writes every column except the owner and creation time.
// SaveEvent writes the editable columns; 0 rows means the event is gone.
func SaveEvent(db *gorm.DB, ev *model.EventModel) (int64, error) {
	res := db.Model(ev).
		Select("Title", "Description", "Location", "StartDatetime", "EndDatetime",
			"CategoryID", "MaxAttendees", "IsPublic", "ImageURL", "UpdatedAt").
		Updates(ev)
	return res.RowsAffected, res.Error
}

func DeleteEvent(db *gorm.DB, id uuid.UUID) (int64, error) {
	res := db.Where("event_id = ?", id).Delete(&model.EventModel{})
	return res.RowsAffected, res.Error
}

// CountRegistrationRows counts every registration row (any status) of an event.
func CountRegistrationRows(db *gorm.DB, eventID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&regModel.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", eventID).
		Count(&n).Error
	return n, err
}

func CountActiveRegistrations(db *gorm.DB, eventID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&regModel.EventRegistrationModel{}).
		Where("event_registration_event_id = ? AND event_registration_status = ?", eventID, regModel.StatusRegistered).
		Count(&n).Error
	return n, err
}

/* ====================== LISTING ====================== */

// ListFilter is a normalized ListQuery resolved against the clock and the caller's day.
type ListFilter struct {
	CategoryID *uint
	Search   string
	Sort     string
	Now      time.Time
	DayStart *time.Time
	DayEnd   *time.Time
	Offset   int
	Limit    int
}

// ListPublicEvents returns one page of upcoming public events and the filtered total.
func ListPublicEvents(ctx context.Context, db *gorm.DB, f ListFilter) ([]dto.EventListItem, int64, error) {
	q := listBase(db.WithContext(ctx)).
		Where("e.event_is_public = ?", true).
		Where("e.event_start_datetime >= ?", f.Now)

	if f.CategoryID != nil {
		q = q.Where("e.event_category_id = ?", *f.CategoryID)
	}
	if f.DayStart != nil && f.DayEnd != nil {
		q = q.Where("e.event_start_datetime >= ? AND e.event_start_datetime < ?", *f.DayStart, *f.DayEnd)
	}
	if f.Search != "" {
		like := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		q = q.Where(`(LOWER(e.event_title) LIKE ? ESCAPE '!'
OR LOWER(COALESCE(e.event_description, '')) LIKE ? ESCAPE '!'
OR LOWER(COALESCE(c.category_name, '')) LIKE ? ESCAPE '!'
OR LOWER(e.event_location) LIKE ? ESCAPE '!')`, like, like, like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []dto.EventListItem{}
	if total == 0 {
		return items, 0, nil
	}

	switch f.Sort {
	case dto.SortNewest:
		q = q.Order("e.event_start_datetime DESC")
	case dto.SortPopular:
		q = q.Order("attendees DESC").Order("e.event_start_datetime ASC")
	default:
		q = q.Order("e.event_start_datetime ASC")
	}
	err := q.Order("e.event_id ASC").
		Select(listColumns).
		Offset(f.Offset).
		Limit(f.Limit).
		Scan(&items).Error
	return items, total, err
}

// ListEventsByOrganizer returns every event (public or not) owned by organizerID, soonest first.
func ListEventsByOrganizer(ctx context.Context, db *gorm.DB, organizerID uuid.UUID) ([]dto.EventListItem, error) {
	items := []dto.EventListItem{}
	err := listBase(db.WithContext(ctx)).
		Select(listColumns).
		Where("e.event_organizer_id = ?", organizerID).
		Order("e.event_start_datetime ASC").
		Scan(&items).Error
	return items, err
}

// ListEventsAttendedBy returns events where userID holds an active registration.
func ListEventsAttendedBy(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]dto.EventListItem, error) {
	items := []dto.EventListItem{}
	err := listBase(db.WithContext(ctx)).
		Select(listColumns).
		Joins(`JOIN event_registrations mine ON mine.event_registration_event_id = e.event_id
AND mine.event_registration_user_id = ? AND mine.event_registration_status = ?`, userID, regModel.StatusRegistered).
		Order("e.event_start_datetime ASC").
		Scan(&items).Error
	return items, err
}

// ListAttendees returns the registrations of an event with user names, oldest first.
func ListAttendees(ctx context.Context, db *gorm.DB, eventID uuid.UUID) ([]dto.AttendeeResponse, error) {
	out := []dto.AttendeeResponse{}
	err := db.WithContext(ctx).
		Table("event_registrations AS r").
		Select(`r.event_registration_id AS registration_id, r.event_registration_user_id AS user_id,
u.first_name, u.last_name, u.email, r.event_registration_status AS status,
r.event_registration_date AS registration_date`).
		Joins("JOIN users u ON u.id = r.event_registration_user_id").
		Where("r.event_registration_event_id = ?", eventID).
		Order("r.event_registration_date ASC").
		Scan(&out).Error
	return out, err
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
