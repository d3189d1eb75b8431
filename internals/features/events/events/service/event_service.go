// internals/features/events/events/service/event_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"time"

	catService "campus_events_backend/internals/features/events/categories/service"
	"campus_events_backend/internals/features/events/events/dto"
	"campus_events_backend/internals/features/events/events/model"
	"campus_events_backend/internals/features/events/events/repository"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"
	"campus_events_backend/internals/helpers/dberr"
	"campus_events_backend/internals/helpers/dbtime"
	"campus_events_backend/internals/helpers/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ImageFolder = "event_images"
	ImageField  = "event_logo_file"
)

// EventMessages are the user-facing texts for the event form.
var EventMessages = helper.FieldMessages{
	"title.required":          "Title is required (max 100 chars).",
	"title.max":               "Title is required (max 100 chars).",
	"description.max":         "Description cannot exceed 5000 characters.",
	"location.required":       "Location is required (max 100 chars).",
	"location.max":            "Location is required (max 100 chars).",
	"start_datetime.required": "Valid start date/time is required.",
	"end_datetime.required":   "Valid end date/time is required.",
	"category_id.required":    "Category is required.",
	"category_id.number":      "Invalid category ID.",
	"max_attendees.min":       "Max attendees must be a number between 1 and 100,000.",
	"max_attendees.max":       "Max attendees must be a number between 1 and 100,000.",
}

var (
	ErrEventNotFound         = fiber.NewError(fiber.StatusNotFound, "Event not found.")
	ErrEventHasRegistrations = fiber.NewError(fiber.StatusConflict, "Cannot delete event: it has existing registrations.")
	ErrImagesDisabled        = fiber.NewError(fiber.StatusServiceUnavailable, "Image uploads are not available.")
)

type EventService struct {
	DB         *gorm.DB
	Categories catService.Directory
	Images     storage.ImageStore
	Validate   *validator.Validate
	Now        func() time.Time
}

func NewEventService(db *gorm.DB, categories catService.Directory, images storage.ImageStore) *EventService {
	return &EventService{
		DB:         db,
		Categories: categories,
		Images:     images,
		Validate:   helper.NewValidator(),
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

// eventValues is a request that passed validation.
type eventValues struct {
	Title        string
	Description  *string
	Location     string
	Start        time.Time
	End          time.Time
	CategoryID   uint
	MaxAttendees *int
	IsPublic     bool
}

func (v eventValues) apply(ev *model.EventModel) {
	catID := v.CategoryID
	ev.Title = v.Title
	ev.Description = v.Description
	ev.Location = v.Location
	ev.StartDatetime = v.Start
	ev.EndDatetime = v.End
	ev.CategoryID = &catID
	ev.MaxAttendees = v.MaxAttendees
	ev.IsPublic = v.IsPublic
}

// ========================== CREATE ==========================
// Create validates req and stores a new event owned by actor.
// Zone-less datetimes are read in loc.
func (s *EventService) Create(ctx context.Context, actor helperAuth.Actor, req dto.EventRequest, loc *time.Location, image *multipart.FileHeader) (*model.EventModel, error) {
	if actor.IsZero() {
		return nil, helperAuth.ErrForbidden
	}
	vals, err := s.validate(ctx, req, loc, image, nil)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	ev := model.EventModel{OrganizerID: actor.UserID}
	vals.apply(&ev)
	if imageURL != "" {
		ev.ImageURL = &imageURL
	}

	if err := repository.CreateEvent(s.DB.WithContext(ctx), &ev); err != nil {
		s.releaseImage(ctx, imageURL)
		if dberr.IsForeignKeyViolation(err) {
			return nil, helper.FieldErrors{{Field: "category_id", Message: "Selected category does not exist."}}
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.attachCategory(ctx, &ev)

	log.Printf("[INFO] event created id=%s organizer=%s", ev.ID, actor.UserID)
	return &ev, nil
}

// ========================== UPDATE ==========================
// Update replaces every editable field. The start must be in the future only when it changes.
func (s *EventService) Update(ctx context.Context, actor helperAuth.Actor, id uuid.UUID, req dto.EventRequest, loc *time.Location, image *multipart.FileHeader) (*model.EventModel, error) {
	ev, err := repository.FindEventByID(s.DB.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	if err := helperAuth.EnsureCanModify(actor, ev.OrganizerID); err != nil {
		return nil, err
	}

	vals, err := s.validate(ctx, req, loc, image, ev)
	if err != nil {
		return nil, err
	}

	newURL, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	var oldURL string
	if ev.ImageURL != nil {
		oldURL = *ev.ImageURL
	}
	vals.apply(ev)
	if newURL != "" {
		ev.ImageURL = &newURL
	}
	ev.Category = nil
	ev.UpdatedAt = s.Now()

	rows, err := repository.SaveEvent(s.DB.WithContext(ctx), ev)
	if err != nil {
		s.releaseImage(ctx, newURL)
		if dberr.IsForeignKeyViolation(err) {
			return nil, helper.FieldErrors{{Field: "category_id", Message: "Selected category does not exist."}}
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	if rows == 0 {
		// deleted after it was read
		s.releaseImage(ctx, newURL)
		return nil, ErrEventNotFound
	}
	if newURL != "" && oldURL != "" && oldURL != newURL {
		s.releaseImage(ctx, oldURL)
	}
	s.attachCategory(ctx, ev)

	log.Printf("[INFO] event updated id=%s by=%s", ev.ID, actor.UserID)
	return ev, nil
}

// ========================== DELETE ==========================
// Delete refuses to cascade: any registration row, active or cancelled, blocks it.
func (s *EventService) Delete(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) error {
	var imageURL string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev model.EventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", id).
			First(&ev).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("find event: %w", err)
		}
		if err := helperAuth.EnsureCanModify(actor, ev.OrganizerID); err != nil {
			return err
		}

		n, err := repository.CountRegistrationRows(tx, id)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if n > 0 {
			return ErrEventHasRegistrations
		}

		if _, err := repository.DeleteEvent(tx, id); err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return ErrEventHasRegistrations
			}
			return fmt.Errorf("delete event: %w", err)
		}
		if ev.ImageURL != nil {
			imageURL = *ev.ImageURL
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.releaseImage(ctx, imageURL)
	log.Printf("[INFO] event deleted id=%s by=%s", id, actor.UserID)
	return nil
}

// ========================== GET ==========================
// Get returns an event with its attendee count. Private events are
// visible only to their organizer and admins; everyone else gets ErrEventNotFound.
func (s *EventService) Get(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (dto.EventResponse, error) {
	db := s.DB.WithContext(ctx)
	ev, err := repository.FindEventByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, fmt.Errorf("find event: %w", err)
	}
	if !ev.IsPublic && !helperAuth.CanModify(actor, ev.OrganizerID) {
		return dto.EventResponse{}, ErrEventNotFound
	}

	n, err := repository.CountActiveRegistrations(db, id)
	if err != nil {
		return dto.EventResponse{}, fmt.Errorf("count attendees: %w", err)
	}
	return dto.ToEventResponse(ev, n), nil
}

// ========================== ATTENDEES ==========================
func (s *EventService) Attendees(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) ([]dto.AttendeeResponse, error) {
	ev, err := repository.FindEventByID(s.DB.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	if err := helperAuth.EnsureCanModify(actor, ev.OrganizerID); err != nil {
		return nil, err
	}
	return repository.ListAttendees(ctx, s.DB, id)
}

// ========================== MY EVENTS ==========================
func (s *EventService) MyEvents(ctx context.Context, actor helperAuth.Actor) (dto.MyEventsResponse, error) {
	registered, err := repository.ListEventsAttendedBy(ctx, s.DB, actor.UserID)
	if err != nil {
		return dto.MyEventsResponse{}, fmt.Errorf("registered events: %w", err)
	}
	created, err := repository.ListEventsByOrganizer(ctx, s.DB, actor.UserID)
	if err != nil {
		return dto.MyEventsResponse{}, fmt.Errorf("created events: %w", err)
	}
	return dto.MyEventsResponse{Registered: registered, Created: created}, nil
}

/* ========================== validation ========================== */

// validate runs the struct rules, then the checks that depend on loc and the category directory.
func (s *EventService) validate(ctx context.Context, req dto.EventRequest, loc *time.Location, image *multipart.FileHeader, current *model.EventModel) (eventValues, error) {
	f := req.Fields()
	now := s.Now()
	fe := helper.ValidateStruct(s.Validate, f, EventMessages)
	if fe == nil {
		fe = helper.FieldErrors{}
	}

	v := eventValues{
		Title:        f.Title,
		Location:     f.Location,
		MaxAttendees: f.MaxAttendees,
		IsPublic:     f.IsPublic,
	}
	if f.Description != "" {
		d := f.Description
		v.Description = &d
	}

	var errStart error
	if !fe.Has("start_datetime") {
		v.Start, errStart = dbtime.ParseDateTime(f.StartDatetime, loc)
		switch {
		case errStart != nil:
			fe.Add("start_datetime", "Valid start date/time is required.")
		case current != nil && v.Start.Equal(current.StartDatetime.UTC()):
			// unchanged start may already be in the past
		case !v.Start.After(now):
			fe.Add("start_datetime", "Start date must be in the future.")
		}
	}

	if !fe.Has("end_datetime") {
		end, err := dbtime.ParseDateTime(f.EndDatetime, loc)
		switch {
		case err != nil:
			fe.Add("end_datetime", "Valid end date/time is required.")
		case errStart == nil && !v.Start.IsZero() && !end.After(v.Start):
			fe.Add("end_datetime", "End date must be after start date.")
		}
		v.End = end
	}

	if !fe.Has("category_id") {
		id, err := strconv.ParseUint(f.CategoryID, 10, 32)
		if err != nil || id == 0 {
			fe.Add("category_id", "Invalid category ID.")
		} else {
			ok, err := s.Categories.Exists(ctx, uint(id))
			if err != nil {
				return eventValues{}, fmt.Errorf("check category: %w", err)
			}
			if !ok {
				fe.Add("category_id", "Selected category does not exist.")
			}
			v.CategoryID = uint(id)
		}
	}

	if msg := storage.CheckImageHeader(image); msg != "" {
		fe.Add(ImageField, msg)
	}

	if err := fe.OrNil(); err != nil {
		return eventValues{}, err
	}
	return v, nil
}

/* ========================== images ========================== */

func (s *EventService) saveImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", nil
	}
	if s.Images == nil {
		return "", ErrImagesDisabled
	}
	url, err := s.Images.Save(ctx, ImageFolder, image)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return "", helper.FieldErrors{{Field: ImageField, Message: "The uploaded file is not a valid image."}}
		}
		return "", fmt.Errorf("save event image: %w", err)
	}
	return url, nil
}

// releaseImage tolerates an already-absent object.
func (s *EventService) releaseImage(ctx context.Context, url string) {
	if url == "" || s.Images == nil {
		return
	}
	if err := s.Images.Delete(ctx, url); err != nil {
		log.Printf("[WARN] release image %s: %v", url, err)
	}
}

func (s *EventService) attachCategory(ctx context.Context, ev *model.EventModel) {
	if ev.CategoryID == nil {
		return
	}
	if cat, ok, err := s.Categories.Get(ctx, *ev.CategoryID); err == nil && ok {
		ev.Category = cat
	}
}
