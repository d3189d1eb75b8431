// internals/features/events/registrations/service/registration_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	eventModel "campus_events_backend/internals/features/events/events/model"
	"campus_events_backend/internals/features/events/registrations/model"
	"campus_events_backend/internals/features/events/registrations/repository"
	"campus_events_backend/internals/helpers/dberr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound     = fiber.NewError(fiber.StatusNotFound, "Event not found or not available for registration.")
	ErrEventStarted      = fiber.NewError(fiber.StatusBadRequest, "This event has already started and registrations are closed.")
	ErrAlreadyRegistered = fiber.NewError(fiber.StatusConflict, "You are already registered for this event.")
	ErrEventFull         = fiber.NewError(fiber.StatusBadRequest, "Sorry, this event is currently full.")
	ErrNotRegistered     = fiber.NewError(fiber.StatusNotFound, "You are not registered for this event.")
)

// RegistrationService is the only writer of registration status.
type RegistrationService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{
		DB:  db,
		Now: func() time.Time { return time.Now().UTC() },
	}
}

// ========================== REGISTER ==========================
// Register checks, in order: public event exists, not started, not already
// registered, capacity left. The event row stays locked until the insert commits,
// so concurrent attempts for one event are serialized.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.Now()

		ev, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if !ev.IsPublic {
			return ErrEventNotFound
		}
		if !ev.StartDatetime.After(now) {
			return ErrEventStarted
		}

		exists, err := repository.HasActiveRegistration(tx, eventID, userID)
		if err != nil {
			return fmt.Errorf("check registration: %w", err)
		}
		if exists {
			return ErrAlreadyRegistered
		}

		if ev.HasCapacity() {
			n, err := repository.CountActive(tx, eventID)
			if err != nil {
				return fmt.Errorf("count registrations: %w", err)
			}
			if n >= int64(*ev.MaxAttendees) {
				return ErrEventFull
			}
		}

		reg = model.EventRegistrationModel{
			EventID:      eventID,
			UserID:       userID,
			Status:       model.StatusRegistered,
			RegisteredAt: now,
		}
		if err := repository.CreateRegistration(tx, &reg); err != nil {
			if dberr.IsUniqueViolation(err) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("create registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] registration created event=%s user=%s", eventID, userID)
	return &reg, nil
}

// Count is the number of active registrations.
func (s *RegistrationService) Count(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return repository.CountActive(s.DB.WithContext(ctx), eventID)
}

// ========================== CANCEL ==========================
// Cancel releases the caller's seat. Registrations of started events are kept as history.
func (s *RegistrationService) Cancel(ctx context.Context, eventID, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if !ev.StartDatetime.After(s.Now()) {
			return ErrEventStarted
		}

		n, err := repository.CancelActive(tx, eventID, userID)
		if err != nil {
			return fmt.Errorf("cancel registration: %w", err)
		}
		if n == 0 {
			return ErrNotRegistered
		}
		log.Printf("[INFO] registration cancelled event=%s user=%s", eventID, userID)
		return nil
	})
}

func lockEvent(tx *gorm.DB, eventID uuid.UUID) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", eventID).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return &ev, nil
}
