package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/yatube/internal/apperrors"
)

// Field error messages shown next to form inputs.
const (
	msgRequired        = "This field is required."
	msgInvalidChoice   = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage    = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgUsernameTaken   = "A user with that username already exists."
	msgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgPasswordMatch   = "The two password fields didn't match."
	msgBadCredentials  = "Please enter a correct username and password."
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so errors line up with inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return v
}

// validateForm runs struct validation and converts failures into a ValidationError.
func validateForm(form any) *apperrors.ValidationError {
	verr := apperrors.NewValidationError()

	err := validate.Struct(form)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return verr.Add("form", err.Error())
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "eqfield":
		return msgPasswordMatch
	case "username":
		return msgInvalidUsername
	default:
		return "Enter a valid value."
	}
}
