package auth

import (
	"log"
	"strings"

	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

// RoleMiddlewareWithCustomError: must run after RequireSession.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := helperAuth.SessionFrom(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Authentication required. Please log in.")
		}

		for _, allowed := range allowedRoles {
			if strings.EqualFold(sess.Role, allowed) {
				return c.Next()
			}
		}

		log.Printf("[WARN] role %q denied on %s %s", sess.Role, c.Method(), c.Path())
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
