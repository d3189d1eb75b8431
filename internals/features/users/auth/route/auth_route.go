// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"campus_events_backend/internals/features/users/auth/controller"
	rateLimiter "campus_events_backend/internals/middlewares"
	authMiddleware "campus_events_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, ctl *controller.AuthController) {
	guest := authMiddleware.GuestOnly(ctl.Sessions)
	// one counter per concern, shared by every path that reaches it
	loginLimit := rateLimiter.LoginRateLimiter()
	registerLimit := rateLimiter.RegisterRateLimiter()

	// form-style endpoints kept at the root like the web app
	app.Post("/login", loginLimit, guest, ctl.Login)
	app.Post("/register", registerLimit, guest, ctl.Register)
	app.Post("/logout", ctl.Logout)
	app.Get("/logout", ctl.Logout)

	// Base: /api/auth
	api := app.Group("/api/auth")
	api.Post("/login", loginLimit, guest, ctl.Login)
	api.Post("/register", registerLimit, guest, ctl.Register)
	api.Post("/google", loginLimit, ctl.LoginGoogle)
	api.Post("/logout", ctl.Logout)
	api.Get("/me", authMiddleware.RequireSession(ctl.Sessions), ctl.Me)
}
