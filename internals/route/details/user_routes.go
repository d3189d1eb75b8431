package details

import (
	userController "campus_events_backend/internals/features/users/user/controller"
	userRoute "campus_events_backend/internals/features/users/user/route"
	userService "campus_events_backend/internals/features/users/user/service"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(api fiber.Router, d Deps, requireSession fiber.Handler) {
	profiles := userService.NewProfileService(d.DB, d.Images, d.Sessions)
	userRoute.UserRoutes(api, userController.NewProfileController(profiles), requireSession)
}
