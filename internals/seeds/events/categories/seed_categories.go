package categories

import (
	"fmt"
	"log"
	"os"
	"strings"

	"campus_events_backend/internals/features/events/categories/model"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

type CategorySeed struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// SeedCategoriesFromJSON inserts categories whose name is not present yet.
func SeedCategoriesFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Reading categories:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []CategorySeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	var existing []string
	if err := db.Model(&model.CategoryModel{}).Pluck("category_name", &existing).Error; err != nil {
		return 0, fmt.Errorf("load categories: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[strings.ToLower(name)] = true
	}

	var fresh []model.CategoryModel
	for _, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if name == "" || have[strings.ToLower(name)] {
			continue
		}
		have[strings.ToLower(name)] = true
		c := model.CategoryModel{Name: name, Color: s.Color}
		if c.Color == "" {
			c.Color = "#6c757d"
		}
		if d := strings.TrimSpace(s.Description); d != "" {
			c.Description = &d
		}
		fresh = append(fresh, c)
	}

	if len(fresh) == 0 {
		log.Println("ℹ️ No new categories to insert.")
		return 0, nil
	}
	if err := db.Create(&fresh).Error; err != nil {
		return 0, fmt.Errorf("insert categories: %w", err)
	}
	log.Printf("✅ Inserted %d categories", len(fresh))
	return len(fresh), nil
}
