package dto

import (
	"strings"

	"campus_events_backend/internals/features/users/user/model"
)

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email,max=100,university_email"`
	Role      string `json:"role" validate:"omitempty,oneof=student faculty admin"`
}

func ProfileRequestFromForm(values map[string][]string) UpdateProfileRequest {
	get := func(k string) string {
		if vs := values[k]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	return UpdateProfileRequest{
		FirstName: get("first_name"),
		LastName:  get("last_name"),
		Email:     get("email"),
		Role:      get("role"),
	}
}

func (r *UpdateProfileRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = model.NormalizeEmail(r.Email)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type ProfileStats struct {
	EventsCreated  int64 `json:"events_created"`
	EventsAttended int64 `json:"events_attended"`
}

type ProfileResponse struct {
	User  *model.UserModel `json:"user"`
	Stats ProfileStats     `json:"stats"`
}
