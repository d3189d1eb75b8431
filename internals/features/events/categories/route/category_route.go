package route

import (
	"campus_events_backend/internals/constants"
	"campus_events_backend/internals/features/events/categories/controller"
	authMiddleware "campus_events_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func CategoryPublicRoutes(api fiber.Router, ctl *controller.CategoryController) {
	api.Get("/categories", ctl.List)
}

func CategoryAdminRoutes(api fiber.Router, ctl *controller.CategoryController, requireSession fiber.Handler) {
	api.Post("/categories",
		requireSession,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("category management"), constants.AdminOnly...),
		ctl.Create,
	)
}
