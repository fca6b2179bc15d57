package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// EmailRegex matches the address pattern the signup contract requires.
	EmailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

	passwordLen   = regexp.MustCompile(`^.{6,20}$`)
	passwordDigit = regexp.MustCompile(`\d`)
	passwordLower = regexp.MustCompile(`[a-z]`)
	passwordUpper = regexp.MustCompile(`[A-Z]`)
)

// ValidPassword reports whether the password is 6-20 characters with at
// least one digit, one lowercase and one uppercase letter.
func ValidPassword(pw string) bool {
	return passwordLen.MatchString(pw) &&
		passwordDigit.MatchString(pw) &&
		passwordLower.MatchString(pw) &&
		passwordUpper.MatchString(pw)
}

// Init configures the global validator used by Gin's binding: JSON tag names
// in errors plus a "pwd" tag for the password complexity rule.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("pwd", func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
	}
}

// ToDetails converts binding errors into a field->message map for logs.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = messageFor(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "pwd":
		return "must be 6 to 20 characters with a digit, a lowercase and an uppercase letter"
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}
