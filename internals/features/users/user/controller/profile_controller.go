package controller

import (
	"mime/multipart"
	"strings"

	"campus_events_backend/internals/features/users/user/dto"
	"campus_events_backend/internals/features/users/user/service"
	helper "campus_events_backend/internals/helpers"
	helperAuth "campus_events_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Profiles *service.ProfileService
}

func NewProfileController(s *service.ProfileService) *ProfileController {
	return &ProfileController{Profiles: s}
}

// GET /api/user/profile
func (ctl *ProfileController) Get(c *fiber.Ctx) error {
	out, err := ctl.Profiles.Get(c.UserContext(), helperAuth.ActorFrom(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /api/user/profile (JSON or multipart with profile_photo)
func (ctl *ProfileController) Update(c *fiber.Ctx) error {
	var (
		req   dto.UpdateProfileRequest
		photo *multipart.FileHeader
	)
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form data")
		}
		req = dto.ProfileRequestFromForm(form.Value)
		if files := form.File[service.PhotoField]; len(files) > 0 && files[0].Filename != "" && files[0].Size > 0 {
			photo = files[0]
		}
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := ctl.Profiles.Update(c.UserContext(), helperAuth.ActorFrom(c), req, photo)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Profile updated successfully!", user)
}
