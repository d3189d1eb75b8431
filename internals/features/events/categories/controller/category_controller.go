package controller

import (
	"log"

	"campus_events_backend/internals/features/events/categories/dto"
	"campus_events_backend/internals/features/events/categories/repository"
	"campus_events_backend/internals/features/events/categories/service"
	helper "campus_events_backend/internals/helpers"
	"campus_events_backend/internals/helpers/dberr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB        *gorm.DB
	Directory service.Directory
	Validate  *validator.Validate
}

func NewCategoryController(db *gorm.DB, dir service.Directory) *CategoryController {
	return &CategoryController{DB: db, Directory: dir, Validate: helper.NewValidator()}
}

// GET /api/categories
func (ctl *CategoryController) List(c *fiber.Ctx) error {
	items, err := ctl.Directory.All(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", items)
}

// POST /api/categories (admin)
func (ctl *CategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(ctl.Validate, req, helper.FieldMessages{
		"color.hexcolor": "Color must be a hex value such as #1e88e5.",
	}); len(fe) > 0 {
		return helper.JsonValidationError(c, fe)
	}

	m := req.ToModel()
	if err := repository.CreateCategory(c.UserContext(), ctl.DB, &m); err != nil {
		if dberr.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A category with this name already exists.")
		}
		return helper.FromServiceError(c, err)
	}
	ctl.Directory.Invalidate()
	log.Printf("[INFO] category created id=%d name=%s", m.ID, m.Name)

	return helper.JsonCreated(c, "Category created", m)
}
