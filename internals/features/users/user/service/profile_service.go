// internals/features/users/user/service/profile_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"campus_events_backend/internals/features/users/user/dto"
	"campus_events_backend/internals/features/users/user/model"
	"campus_events_backend/internals/features/users/user/repository"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"
	"campus_events_backend/internals/helpers/dberr"
	"campus_events_backend/internals/helpers/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	PhotoFolder = "profile_photos"
	PhotoField  = "profile_photo"
)

var (
	ErrUserNotFound   = fiber.NewError(fiber.StatusNotFound, "User not found.")
	ErrEmailInUse     = fiber.NewError(fiber.StatusConflict, "Email is already in use.")
	ErrPhotosDisabled = fiber.NewError(fiber.StatusServiceUnavailable, "Image uploads are not available.")
)

// SessionRefresher rewrites the identity cached in live sessions.
type SessionRefresher interface {
	RefreshUser(ctx context.Context, user *model.UserModel) error
}

type ProfileService struct {
	DB       *gorm.DB
	Images   storage.ImageStore
	Sessions SessionRefresher
	Validate *validator.Validate
	Now      func() time.Time
}

func NewProfileService(db *gorm.DB, images storage.ImageStore, sessions SessionRefresher) *ProfileService {
	return &ProfileService{
		DB:       db,
		Images:   images,
		Sessions: sessions,
		Validate: NewValidator(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProfileService) Get(ctx context.Context, actor helperAuth.Actor) (dto.ProfileResponse, error) {
	user, err := repository.FindUserByID(ctx, s.DB, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, fmt.Errorf("find user: %w", err)
	}

	var stats dto.ProfileStats
	if stats.EventsCreated, err = repository.CountEventsCreated(ctx, s.DB, user.ID); err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("count created: %w", err)
	}
	if stats.EventsAttended, err = repository.CountEventsAttended(ctx, s.DB, user.ID); err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("count attended: %w", err)
	}
	return dto.ProfileResponse{User: user, Stats: stats}, nil
}

// Update edits the caller's own profile. A requested role is applied only for admins.
// A new photo replaces the old one, which is released once the row is saved.
func (s *ProfileService) Update(ctx context.Context, actor helperAuth.Actor, req dto.UpdateProfileRequest, photo *multipart.FileHeader) (*model.UserModel, error) {
	req.Normalize()
	fe := helper.ValidateStruct(s.Validate, req, AccountMessages)
	if msg := storage.CheckImageHeader(photo); msg != "" {
		fe.Add(PhotoField, msg)
	}
	if len(fe) > 0 {
		return nil, fe
	}

	user, err := repository.FindUserByID(ctx, s.DB, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if req.Email != user.Email {
		taken, err := repository.EmailTakenByOther(ctx, s.DB, req.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailInUse
		}
	}

	newURL, err := s.savePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	var oldURL string
	if user.ProfilePhotoURL != nil {
		oldURL = *user.ProfilePhotoURL
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	if req.Role != "" && actor.IsAdmin() {
		user.Role = req.Role
	}
	if newURL != "" {
		user.ProfilePhotoURL = &newURL
	}
	user.UpdatedAt = s.Now()

	if err := repository.UpdateUserProfile(ctx, s.DB, user); err != nil {
		s.releasePhoto(ctx, newURL)
		if dberr.IsUniqueViolation(err) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if newURL != "" && oldURL != "" && oldURL != newURL {
		s.releasePhoto(ctx, oldURL)
	}

	if s.Sessions != nil {
		if err := s.Sessions.RefreshUser(ctx, user); err != nil {
			log.Printf("[WARN] refresh sessions for user %s: %v", user.ID, err)
		}
	}
	log.Printf("[INFO] profile updated user=%s", user.ID)
	return user, nil
}

func (s *ProfileService) savePhoto(ctx context.Context, photo *multipart.FileHeader) (string, error) {
	if photo == nil {
		return "", nil
	}
	if s.Images == nil {
		return "", ErrPhotosDisabled
	}
	url, err := s.Images.Save(ctx, PhotoFolder, photo)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return "", helper.FieldErrors{{Field: PhotoField, Message: "The uploaded file is not a valid image."}}
		}
		return "", fmt.Errorf("save profile photo: %w", err)
	}
	return url, nil
}

func (s *ProfileService) releasePhoto(ctx context.Context, url string) {
	if url == "" || s.Images == nil {
		return
	}
	if err := s.Images.Delete(ctx, url); err != nil {
		log.Printf("[WARN] release photo %s: %v", url, err)
	}
}
