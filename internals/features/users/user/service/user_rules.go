package service

import (
	"strings"

	helper "campus_events_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
)

// IsUniversityEmail: .edu suffix or an academic (".ac.") domain.
func IsUniversityEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	return strings.HasSuffix(domain, ".edu") || strings.Contains(domain, ".ac.")
}

// NewValidator returns a validator with the account rules registered.
func NewValidator() *validator.Validate {
	v := helper.NewValidator()
	_ = v.RegisterValidation("university_email", func(fl validator.FieldLevel) bool {
		return IsUniversityEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("letter_digit", func(fl validator.FieldLevel) bool {
		return hasLetterAndDigit(fl.Field().String())
	})
	return v
}

// AccountMessages are the user-facing texts for account forms.
var AccountMessages = helper.FieldMessages{
	"first_name.required":       "First name is required.",
	"first_name.min":            "First name must be between 2 and 50 characters.",
	"first_name.max":            "First name must be between 2 and 50 characters.",
	"last_name.required":        "Last name is required.",
	"last_name.min":             "Last name must be between 2 and 50 characters.",
	"last_name.max":             "Last name must be between 2 and 50 characters.",
	"email.required":            "Email is required.",
	"email.email":               "Please provide a valid email address.",
	"email.max":                 "Email cannot exceed 100 characters.",
	"email.university_email":    "Please use your university email address.",
	"password.required":         "Password is required.",
	"password.min":              "Password must be between 8 and 100 characters.",
	"password.max":              "Password must be between 8 and 100 characters.",
	"password.letter_digit":     "Password must contain at least one letter and one number.",
	"confirm_password.required": "Please confirm your password.",
	"confirm_password.eqfield":  "Passwords do not match.",
	"role.required":             "Please select a valid role.",
	"role.oneof":                "Please select a valid role.",
}

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
			letter = true
		}
	}
	return letter && digit
}
