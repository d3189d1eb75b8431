package details

import (
	authController "campus_events_backend/internals/features/users/auth/controller"
	authRoute "campus_events_backend/internals/features/users/auth/route"
	authService "campus_events_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, d Deps) {
	accounts := authService.NewAccountService(d.DB, d.Sessions, d.Google)
	ctl := authController.NewAuthController(d.Sessions, accounts, d.SecureCookie)
	authRoute.AuthRoutes(app, ctl)
}
