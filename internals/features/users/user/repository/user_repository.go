package repository

import (
	"context"

	"campus_events_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func FindUserByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailTakenByOther reports whether another account already uses email.
func EmailTakenByOther(ctx context.Context, db *gorm.DB, email string, self uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.UserModel{}).
		Where("email = ? AND id <> ?", model.NormalizeEmail(email), self).
		Count(&n).Error
	return n > 0, err
}

func UpdateUserProfile(ctx context.Context, db *gorm.DB, u *model.UserModel) error {
	return db.WithContext(ctx).Model(u).
		Select("FirstName", "LastName", "Email", "Role", "ProfilePhotoURL", "UpdatedAt").
		Updates(u).Error
}

func CountEventsCreated(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Table("events").
		Where("event_organizer_id = ?", userID).
		Count(&n).Error
	return n, err
}

func CountEventsAttended(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Table("event_registrations").
		Where("event_registration_user_id = ? AND event_registration_status = ?", userID, "registered").
		Count(&n).Error
	return n, err
}
