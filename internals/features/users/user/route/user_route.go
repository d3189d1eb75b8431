package route

import (
	"campus_events_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(api fiber.Router, ctl *controller.ProfileController, requireSession fiber.Handler) {
	profile := api.Group("/user", requireSession)
	profile.Get("/profile", ctl.Get)
	profile.Put("/profile", ctl.Update)
}
