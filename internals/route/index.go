package routes

import (
	"log"
	"time"

	"campus_events_backend/internals/configs"
	rateLimiter "campus_events_backend/internals/middlewares"
	authMiddleware "campus_events_backend/internals/middlewares/auth"
	routeDetails "campus_events_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
)

type Deps = routeDetails.Deps

var startTime time.Time

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, d.DB)

	// uploaded images when the local disk store is active
	if configs.UploadURLPrefix != "" && configs.UploadDir != "" {
		app.Static(configs.UploadURLPrefix, configs.UploadDir, fiber.Static{MaxAge: 3600})
	}

	requireSession := authMiddleware.RequireSession(d.Sessions)
	optionalSession := authMiddleware.OptionalSession(d.Sessions)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, d)

	api := app.Group("/api", rateLimiter.GlobalRateLimiter())

	log.Println("[INFO] Mounting Events routes...")
	routeDetails.EventsRoutes(api, d, requireSession, optionalSession)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, d, requireSession)
}
