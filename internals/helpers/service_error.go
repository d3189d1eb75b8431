package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromServiceError is the single place where service errors become HTTP responses.
// Field errors → 400 list, *fiber.Error → its code and message, anything else → generic 500.
func FromServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var fe FieldErrors
	if errors.As(err, &fe) {
		return JsonValidationError(c, fe)
	}

	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		if fErr.Code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.Path(), err)
			return JsonError(c, fErr.Code, "Something went wrong. Please try again later.")
		}
		return JsonError(c, fErr.Code, fErr.Message)
	}

	log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again later.")
}
