package controller

import (
	"time"

	"campus_events_backend/internals/features/users/auth/dto"
	"campus_events_backend/internals/features/users/auth/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Sessions     *service.SessionService
	Accounts     *service.AccountService
	SecureCookie bool
}

func NewAuthController(sessions *service.SessionService, accounts *service.AccountService, secureCookie bool) *AuthController {
	return &AuthController{Sessions: sessions, Accounts: accounts, SecureCookie: secureCookie}
}

// POST /login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	sess, token, err := ctl.Sessions.Login(c.UserContext(), req.Email, req.Password, c.Cookies(service.CookieName), clientMeta(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	ctl.setSessionCookie(c, token, sess.ExpiresAt)

	return helper.JsonOK(c, "Login successful", toSessionUser(sess))
}

// POST /api/auth/google
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	sess, token, err := ctl.Accounts.LoginGoogle(c.UserContext(), req.IDToken, c.Cookies(service.CookieName), clientMeta(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	ctl.setSessionCookie(c, token, sess.ExpiresAt)

	return helper.JsonOK(c, "Login successful", toSessionUser(sess))
}

// POST /register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := ctl.Accounts.Register(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Registration successful! Please log in.", user)
}

// POST /logout (JSON) and GET /logout (redirect)
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	if err := ctl.Sessions.Logout(c.UserContext(), c.Cookies(service.CookieName)); err != nil {
		return helper.FromServiceError(c, err)
	}
	ctl.clearSessionCookie(c)

	if c.Method() == fiber.MethodGet {
		return c.Redirect("/", fiber.StatusFound)
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	sess, ok := helperAuth.SessionFrom(c)
	if !ok {
		return helper.FromServiceError(c, service.ErrAuthRequired)
	}
	return helper.JsonOK(c, "ok", toSessionUser(sess))
}

/* ========================== cookies ========================== */

func (ctl *AuthController) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     service.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HTTPOnly: true,
		Secure:   ctl.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (ctl *AuthController) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     service.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   ctl.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clientMeta(c *fiber.Ctx) service.ClientMeta {
	return service.ClientMeta{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

func toSessionUser(s helperAuth.Session) dto.SessionUserResponse {
	return dto.SessionUserResponse{
		ID:        s.UserID.String(),
		Email:     s.Email,
		Role:      s.Role,
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}
