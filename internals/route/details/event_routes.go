package details

import (
	catController "campus_events_backend/internals/features/events/categories/controller"
	catRoute "campus_events_backend/internals/features/events/categories/route"
	eventController "campus_events_backend/internals/features/events/events/controller"
	eventRoute "campus_events_backend/internals/features/events/events/route"
	eventService "campus_events_backend/internals/features/events/events/service"
	regController "campus_events_backend/internals/features/events/registrations/controller"
	regRoute "campus_events_backend/internals/features/events/registrations/route"
	regService "campus_events_backend/internals/features/events/registrations/service"

	"github.com/gofiber/fiber/v2"
)

// EventsRoutes mounts categories, events and registrations under api.
func EventsRoutes(api fiber.Router, d Deps, requireSession, optionalSession fiber.Handler) {
	categories := catController.NewCategoryController(d.DB, d.Categories)
	catRoute.CategoryPublicRoutes(api, categories)
	catRoute.CategoryAdminRoutes(api, categories, requireSession)

	events := eventController.NewEventController(eventService.NewEventService(d.DB, d.Categories, d.Images))
	eventRoute.EventPublicRoutes(api, events, optionalSession)
	eventRoute.EventUserRoutes(api, events, requireSession)

	registrations := regController.NewRegistrationController(regService.NewRegistrationService(d.DB))
	regRoute.RegistrationRoutes(api, registrations, requireSession)
}
