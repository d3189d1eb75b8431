package details

import (
	catService "campus_events_backend/internals/features/events/categories/service"
	authService "campus_events_backend/internals/features/users/auth/service"
	"campus_events_backend/internals/helpers/storage"

	"gorm.io/gorm"
)

// Deps are the shared singletons every feature router builds on.
type Deps struct {
	DB           *gorm.DB
	Sessions     *authService.SessionService
	Categories   *catService.Cache
	Images       storage.ImageStore
	Google       authService.GoogleVerifier
	SecureCookie bool
}
