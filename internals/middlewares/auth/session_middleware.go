package auth

import (
	"context"
	"errors"
	"strings"

	authService "campus_events_backend/internals/features/users/auth/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (helperAuth.Session, error)
}

// RequireSession: API paths get a 401 JSON, page paths are redirected to /login.
func RequireSession(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Resolve(c.UserContext(), c.Cookies(authService.CookieName))
		if err != nil {
			if !errors.Is(err, authService.ErrAuthRequired) {
				return helper.FromServiceError(c, err)
			}
			if isAPIRequest(c) {
				return helper.JsonError(c, fiber.StatusUnauthorized, authService.ErrAuthRequired.Message)
			}
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(helperAuth.LocSession, sess)
		return c.Next()
	}
}

// OptionalSession attaches the session when present and never rejects.
func OptionalSession(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(authService.CookieName); token != "" {
			if sess, err := sessions.Resolve(c.UserContext(), token); err == nil {
				c.Locals(helperAuth.LocSession, sess)
			}
		}
		return c.Next()
	}
}

// GuestOnly sends already-authenticated callers home.
func GuestOnly(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(authService.CookieName); token != "" {
			if _, err := sessions.Resolve(c.UserContext(), token); err == nil {
				return c.Redirect("/", fiber.StatusFound)
			}
		}
		return c.Next()
	}
}

func isAPIRequest(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) ||
		c.XHR()
}
