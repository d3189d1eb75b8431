package repository

import (
	"campus_events_backend/internals/features/events/registrations/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func HasActiveRegistration(db *gorm.DB, eventID, userID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ? AND event_registration_user_id = ? AND event_registration_status = ?",
			eventID, userID, model.StatusRegistered).
		Count(&n).Error
	return n > 0, err
}

func CountActive(db *gorm.DB, eventID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ? AND event_registration_status = ?", eventID, model.StatusRegistered).
		Count(&n).Error
	return n, err
}

func CreateRegistration(db *gorm.DB, r *model.EventRegistrationModel) error {
	return db.Create(r).Error
}

// CancelActive flips the active row of (event, user) to cancelled.
func CancelActive(db *gorm.DB, eventID, userID uuid.UUID) (int64, error) {
	res := db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ? AND event_registration_user_id = ? AND event_registration_status = ?",
			eventID, userID, model.StatusRegistered).
		Update("event_registration_status", model.StatusCancelled)
	return res.RowsAffected, res.Error
}
