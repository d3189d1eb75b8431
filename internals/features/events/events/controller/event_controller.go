package controller

import (
	"mime/multipart"
	"strings"

	"campus_events_backend/internals/features/events/events/dto"
	"campus_events_backend/internals/features/events/events/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"
	"campus_events_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventController struct {
	Events *service.EventService
}

func NewEventController(s *service.EventService) *EventController {
	return &EventController{Events: s}
}

// GET /api/events?page=&limit=&category=&date=&sort=&search=
func (ctl *EventController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, service.DefaultPageSize, service.MaxPageSize)
	q := dto.ListQuery{
		Category: c.Query("category"),
		Date:     c.Query("date"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     paging.Page,
		PerPage:  paging.PerPage,
	}

	items, total, err := ctl.Events.List(c.UserContext(), q, dbtime.GetClientLocation(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(items)
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "ok",
		"events":     items,
		"totalCount": total,
		"pagination": pagination,
	})
}

// GET /api/events/:id
func (ctl *EventController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromServiceError(c, service.ErrEventNotFound)
	}
	ev, err := ctl.Events.Get(c.UserContext(), helperAuth.ActorFrom(c), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", ev)
}

// POST /api/events (JSON or multipart with event_logo_file)
func (ctl *EventController) Create(c *fiber.Ctx) error {
	req, image, err := parseEventRequest(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ev, err := ctl.Events.Create(c.UserContext(), helperAuth.ActorFrom(c), req, dbtime.GetClientLocation(c), image)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Event created successfully!",
		"eventId": ev.ID,
		"data":    dto.ToEventResponse(ev, 0),
	})
}

// PUT /api/events/:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromServiceError(c, service.ErrEventNotFound)
	}
	req, image, err := parseEventRequest(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	actor := helperAuth.ActorFrom(c)
	if _, err := ctl.Events.Update(c.UserContext(), actor, id, req, dbtime.GetClientLocation(c), image); err != nil {
		return helper.FromServiceError(c, err)
	}
	ev, err := ctl.Events.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event updated successfully!",
		"eventId": id,
		"data":    ev,
	})
}

// DELETE /api/events/:id
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromServiceError(c, service.ErrEventNotFound)
	}
	if err := ctl.Events.Delete(c.UserContext(), helperAuth.ActorFrom(c), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Event deleted successfully.", fiber.Map{"event_id": id})
}

// GET /api/events/:id/registrations (owner or admin)
func (ctl *EventController) Attendees(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromServiceError(c, service.ErrEventNotFound)
	}
	rows, err := ctl.Events.Attendees(c.UserContext(), helperAuth.ActorFrom(c), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/my-events
func (ctl *EventController) MyEvents(c *fiber.Ctx) error {
	out, err := ctl.Events.MyEvents(c.UserContext(), helperAuth.ActorFrom(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// parseEventRequest accepts multipart, urlencoded or JSON bodies.
func parseEventRequest(c *fiber.Ctx) (dto.EventRequest, *multipart.FileHeader, error) {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return dto.EventRequest{}, nil, err
		}
		var image *multipart.FileHeader
		if files := form.File[service.ImageField]; len(files) > 0 && files[0].Filename != "" && files[0].Size > 0 {
			image = files[0]
		}
		return dto.EventRequestFromForm(form.Value), image, nil

	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		values := map[string][]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = append(values[string(k)], string(v))
		})
		return dto.EventRequestFromForm(values), nil, nil

	default:
		var req dto.EventRequest
		if err := c.BodyParser(&req); err != nil {
			return dto.EventRequest{}, nil, err
		}
		return req, nil, nil
	}
}
