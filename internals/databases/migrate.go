package database

import (
	"fmt"
	"log"

	categoryModel "campus_events_backend/internals/features/events/categories/model"
	eventModel "campus_events_backend/internals/features/events/events/model"
	registrationModel "campus_events_backend/internals/features/events/registrations/model"
	authModel "campus_events_backend/internals/features/users/auth/model"
	userModel "campus_events_backend/internals/features/users/user/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every table plus the indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.SessionModel{},
		&categoryModel.CategoryModel{},
		&eventModel.EventModel{},
		&registrationModel.EventRegistrationModel{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(registrationModel.ActiveUniqueIndexSQL).Error; err != nil {
		return fmt.Errorf("create active registration index: %w", err)
	}

	log.Println("✅ Migrations applied.")
	return nil
}
