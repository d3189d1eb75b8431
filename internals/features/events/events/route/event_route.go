package route

import (
	"campus_events_backend/internals/features/events/events/controller"

	"github.com/gofiber/fiber/v2"
)

func EventPublicRoutes(api fiber.Router, ctl *controller.EventController, optionalSession fiber.Handler) {
	api.Get("/events", ctl.List)
	api.Get("/events/:id", optionalSession, ctl.Get)
}

func EventUserRoutes(api fiber.Router, ctl *controller.EventController, requireSession fiber.Handler) {
	api.Post("/events", requireSession, ctl.Create)
	api.Put("/events/:id", requireSession, ctl.Update)
	api.Delete("/events/:id", requireSession, ctl.Delete)
	api.Get("/events/:id/registrations", requireSession, ctl.Attendees)
	api.Get("/my-events", requireSession, ctl.MyEvents)
}
