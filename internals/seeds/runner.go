package seeds

import (
	"log"
	"path/filepath"

	"campus_events_backend/internals/seeds/events/categories"
	"campus_events_backend/internals/seeds/users/users"

	"gorm.io/gorm"
)

// DefaultDir is where the JSON fixtures live relative to the repo root.
const DefaultDir = "internals/seeds"

// RunAllSeeds is idempotent: rows are matched by category name and user email.
func RunAllSeeds(db *gorm.DB, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}

	//* Category
	if _, err := categories.SeedCategoriesFromJSON(db, filepath.Join(dir, "events", "categories", "data_categories.json")); err != nil {
		log.Printf("[SEED] categories failed: %v", err)
		return err
	}

	//* User
	if _, err := users.SeedUsersFromJSON(db, filepath.Join(dir, "users", "users", "data_users.json")); err != nil {
		log.Printf("[SEED] users failed: %v", err)
		return err
	}
	return nil
}
