package controller

import (
	"campus_events_backend/internals/features/events/registrations/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegistrationController struct {
	Registrations *service.RegistrationService
}

func NewRegistrationController(s *service.RegistrationService) *RegistrationController {
	return &RegistrationController{Registrations: s}
}

// POST /api/events/:id/register
func (ctl *RegistrationController) Register(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromServiceError(c, service.ErrEventNotFound)
	}
	actor := helperAuth.ActorFrom(c)

	reg, err := ctl.Registrations.Register(c.UserContext(), eventID, actor.UserID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Successfully registered for the event!", reg)
}

// DELETE /api/events/:id/register
func (ctl *RegistrationController) Cancel(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromServiceError(c, service.ErrEventNotFound)
	}
	actor := helperAuth.ActorFrom(c)

	if err := ctl.Registrations.Cancel(c.UserContext(), eventID, actor.UserID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Your registration has been cancelled.", fiber.Map{"event_id": eventID})
}
