package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const LocSession = "session"

// Session is the per-request view of an authenticated session.
type Session struct {
	ID        uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Actor() Actor {
	return Actor{UserID: s.UserID, Role: s.Role}
}

// SessionFrom returns the session attached by the session middleware.
func SessionFrom(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(LocSession).(Session)
	return s, ok
}

func ActorFrom(c *fiber.Ctx) Actor {
	if s, ok := SessionFrom(c); ok {
		return s.Actor()
	}
	return Actor{}
}
