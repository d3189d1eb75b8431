package users

import (
	"errors"
	"fmt"
	"log"
	"os"

	authService "campus_events_backend/internals/features/users/auth/service"
	"campus_events_backend/internals/features/users/user/model"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

type UserSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// SeedUsersFromJSON creates demo accounts, skipping emails that already exist.
func SeedUsersFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Reading users:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []UserSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, s := range seeds {
		email := model.NormalizeEmail(s.Email)
		var existing model.UserModel
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			log.Printf("ℹ️ User '%s' already exists, skipped.", email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("find %s: %w", email, err)
		}

		hash, err := authService.HashPassword(s.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", email, err)
		}
		u := model.UserModel{
			Email:     email,
			Password:  hash,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Role:      s.Role,
			IsActive:  true,
		}
		if err := db.Create(&u).Error; err != nil {
			return created, fmt.Errorf("create %s: %w", email, err)
		}
		created++
	}
	log.Printf("✅ Inserted %d users", created)
	return created, nil
}
