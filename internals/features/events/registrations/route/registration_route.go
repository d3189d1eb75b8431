package route

import (
	"campus_events_backend/internals/features/events/registrations/controller"

	"github.com/gofiber/fiber/v2"
)

func RegistrationRoutes(api fiber.Router, ctl *controller.RegistrationController, requireSession fiber.Handler) {
	api.Post("/events/:id/register", requireSession, ctl.Register)
	api.Delete("/events/:id/register", requireSession, ctl.Cancel)
}
