// internals/features/users/auth/service/account_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"campus_events_backend/internals/constants"
	"campus_events_backend/internals/features/users/auth/dto"
	authRepo "campus_events_backend/internals/features/users/auth/repository"
	userModel "campus_events_backend/internals/features/users/user/model"
	userService "campus_events_backend/internals/features/users/user/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"
	"campus_events_backend/internals/helpers/dberr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = fiber.NewError(fiber.StatusConflict, "An account with this email already exists.")
	ErrGoogleDisabled  = fiber.NewError(fiber.StatusNotImplemented, "Google sign-in is not configured.")
	ErrGoogleToken     = fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID token.")
	ErrNotUniversityID = fiber.NewError(fiber.StatusForbidden, "Please sign in with your university Google account.")
)

type AccountService struct {
	DB       *gorm.DB
	Sessions *SessionService
	Google   GoogleVerifier
	Validate *validator.Validate
}

func NewAccountService(db *gorm.DB, sessions *SessionService, google GoogleVerifier) *AccountService {
	return &AccountService{
		DB:       db,
		Sessions: sessions,
		Google:   google,
		Validate: userService.NewValidator(),
	}
}

// ========================== REGISTER ==========================
// Register creates a student or faculty account; it does not log in.
func (s *AccountService) Register(ctx context.Context, req dto.RegisterRequest) (*userModel.UserModel, error) {
	req.Normalize()
	if fe := helper.ValidateStruct(s.Validate, req, userService.AccountMessages); len(fe) > 0 {
		return nil, fe
	}

	db := s.DB.WithContext(ctx)
	if _, err := authRepo.FindUserByEmail(db, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := userModel.UserModel{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.Printf("[INFO] user registered id=%s role=%s", user.ID, user.Role)
	return &user, nil
}

// ========================== LOGIN GOOGLE ==========================
// LoginGoogle verifies an ID token, links or creates the account, then starts a session.
func (s *AccountService) LoginGoogle(ctx context.Context, idToken, previousToken string, meta ClientMeta) (helperAuth.Session, string, error) {
	if s.Google == nil {
		return helperAuth.Session{}, "", ErrGoogleDisabled
	}
	ident, err := s.Google.Verify(strings.TrimSpace(idToken))
	if err != nil {
		log.Printf("[WARN] google token rejected: %v", err)
		return helperAuth.Session{}, "", ErrGoogleToken
	}
	email := userModel.NormalizeEmail(ident.Email)
	if !userService.IsUniversityEmail(email) {
		return helperAuth.Session{}, "", ErrNotUniversityID
	}

	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByGoogleID(db, ident.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.linkOrCreateGoogleUser(db, ident, email)
	}
	if err != nil {
		return helperAuth.Session{}, "", err
	}
	if !user.IsActive {
		return helperAuth.Session{}, "", ErrAccountDisabled
	}

	return s.Sessions.Regenerate(ctx, user, previousToken, meta)
}

func (s *AccountService) linkOrCreateGoogleUser(db *gorm.DB, ident GoogleIdentity, email string) (*userModel.UserModel, error) {
	existing, err := authRepo.FindUserByEmail(db, email)
	if err == nil {
		if err := authRepo.LinkGoogleID(db, existing.ID, ident.Subject); err != nil {
			return nil, fmt.Errorf("link google id: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	pw, err := randomID()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(pw)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	first, last := splitName(ident.Name, email)
	sub := ident.Subject
	user := userModel.UserModel{
		Email:     email,
		Password:  hash,
		FirstName: first,
		LastName:  last,
		Role:      constants.RoleStudent,
		GoogleID:  &sub,
		IsActive:  true,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create google user: %w", err)
	}
	log.Printf("[INFO] user created via google id=%s", user.ID)
	return &user, nil
}

func splitName(name, email string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		local := email
		if at := strings.Index(email, "@"); at > 0 {
			local = email[:at]
		}
		return local, "-"
	case 1:
		return parts[0], "-"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
