package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("phone", validatePhone)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Digits with optional leading +, spaces, dashes, dots and brackets.
var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-.]{7,20}$`)

func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	if !phonePattern.MatchString(phone) {
		return false
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// FirstError turns a validation failure into the offending field's name and a
// short message. field is empty when err is not a validation error.
func FirstError(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "Invalid request body"
	}

	fe := verrs[0]
	field = strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", field)
	case "phone":
		msg = fmt.Sprintf("%s must be a valid phone number", field)
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return field, msg
}
