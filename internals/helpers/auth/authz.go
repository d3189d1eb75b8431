package auth

import (
	"strings"

	"campus_events_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Actor is the authenticated caller as seen by services.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool {
	return strings.EqualFold(a.Role, constants.RoleAdmin)
}

func (a Actor) IsZero() bool {
	return a.UserID == uuid.Nil
}

var ErrForbidden = fiber.NewError(fiber.StatusForbidden, "You do not have permission to modify this resource.")

// CanModify: owner or admin.
func CanModify(actor Actor, ownerID uuid.UUID) bool {
	if actor.IsZero() {
		return false
	}
	return actor.IsAdmin() || actor.UserID == ownerID
}

func EnsureCanModify(actor Actor, ownerID uuid.UUID) error {
	if !CanModify(actor, ownerID) {
		return ErrForbidden
	}
	return nil
}
