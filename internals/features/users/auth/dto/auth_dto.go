package dto

import (
	"strings"

	userModel "campus_events_backend/internals/features/users/user/model"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RegisterRequest struct {
	FirstName       string `json:"first_name" form:"firstName" validate:"required,min=2,max=50"`
	LastName        string `json:"last_name" form:"lastName" validate:"required,min=2,max=50"`
	Email           string `json:"email" form:"email" validate:"required,email,max=100,university_email"`
	Password        string `json:"password" form:"password" validate:"required,min=8,max=100,letter_digit"`
	ConfirmPassword string `json:"confirm_password" form:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" form:"role" validate:"required,oneof=student faculty"`
}

func (r *RegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = userModel.NormalizeEmail(r.Email)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" form:"id_token"`
}

type SessionUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
