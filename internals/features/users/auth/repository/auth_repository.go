// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"time"

	authModel "campus_events_backend/internals/features/users/auth/model"
	userModel "campus_events_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", userModel.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func LinkGoogleID(db *gorm.DB, userID uuid.UUID, googleID string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("google_id", googleID).Error
}

/* ====================== SESSION ====================== */

func CreateSession(db *gorm.DB, s *authModel.SessionModel) error {
	return db.Create(s).Error
}

// FindLiveSession returns the session for hash if it has not expired at now.
func FindLiveSession(db *gorm.DB, tokenHash string, now time.Time) (*authModel.SessionModel, error) {
	var s authModel.SessionModel
	if err := db.Where("session_token_hash = ? AND session_expires_at > ?", tokenHash, now).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func DeleteSessionByHash(db *gorm.DB, tokenHash string) (int64, error) {
	res := db.Where("session_token_hash = ?", tokenHash).Delete(&authModel.SessionModel{})
	return res.RowsAffected, res.Error
}

func UpdateSessionData(db *gorm.DB, userID uuid.UUID, data datatypes.JSON) error {
	return db.Model(&authModel.SessionModel{}).
		Where("session_user_id = ?", userID).
		Update("session_data", data).Error
}

func DeleteExpiredSessions(db *gorm.DB, before time.Time, limit int) (int64, error) {
	sub := db.Model(&authModel.SessionModel{}).
		Select("session_id").
		Where("session_expires_at <= ?", before).
		Limit(limit)
	res := db.Where("session_id IN (?)", sub).Delete(&authModel.SessionModel{})
	return res.RowsAffected, res.Error
}
