package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned by services when input fails validation.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fe[0].Message
}

func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Has reports whether field already carries an error.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// NewValidator reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldMessages overrides the generated text per "field.tag".
type FieldMessages map[string]string

// ValidateStruct runs the validator and converts failures into FieldErrors keyed by json name.
func ValidateStruct(v *validator.Validate, s any, msgs FieldMessages) FieldErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return FieldErrors{{Field: "_", Message: err.Error()}}
	}

	out := FieldErrors{}
	for _, e := range ves {
		field := e.Field()
		if out.Has(field) {
			continue
		}
		if m, ok := msgs[field+"."+e.Tag()]; ok {
			out.Add(field, m)
			continue
		}
		out.Add(field, defaultMessage(e))
	}
	return out
}

func defaultMessage(e validator.FieldError) string {
	name := strings.ReplaceAll(e.Field(), "_", " ")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", name)
	case "email":
		return "Please provide a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", name, e.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", name, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", name, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s.", name, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", name, e.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match.", name)
	default:
		return fmt.Sprintf("%s is invalid.", name)
	}
}
