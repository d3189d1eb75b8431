package middlewares

import (
	"context"
	"errors"
	"log"
	"time"

	"campus_events_backend/internals/configs"
	helper "campus_events_backend/internals/helpers"
	"campus_events_backend/internals/middlewares/logger"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

// ServerConfig is the fiber config for the app. X-Forwarded-For is honored
// only from TRUSTED_PROXIES; with none configured c.IP() is the socket peer.
func ServerConfig() fiber.Config {
	return fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               configs.GetEnvInt("BODY_LIMIT_MB", 8) * 1024 * 1024, // 5MB images + form fields
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.TrustedProxies,
	}
}

// SetupMiddlewares installs the app-wide chain (order matters: recover first).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
}

// RequestID propagates X-Request-ID and bounds the handler context.
func RequestID() fiber.Handler {
	timeout := configs.GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second)
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// ErrorHandler renders errors that escape handlers in the standard envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again later."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError || !configs.IsProduction() {
			msg = fe.Message
		}
	} else if !configs.IsProduction() {
		msg = err.Error()
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.Path(), err)
	}
	return helper.JsonError(c, code, msg)
}
