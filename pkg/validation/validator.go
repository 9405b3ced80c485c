package validation

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New builds the validator instance used for signup input.
// - Field names in errors come from the json tag.
// - "passwd" requires at least one uppercase letter, one lowercase
//   letter and one digit, in any positions.
//
// The validator stops at the first failing tag per field, which gives
// the per-field bail semantics the API contract expects.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("passwd", hasUpperLowerDigit)
	return v
}

func hasUpperLowerDigit(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Message maps a failed rule to the human-readable message the API
// returns for that field. Unknown combinations fall back to a generic
// message so new tags never leak validator internals to clients.
func Message(field, tag string) string {
	switch field {
	case "username":
		switch tag {
		case "required":
			return "Username cannot be null"
		case "min", "max":
			return "Must have min 4 and max 32 characters"
		}
	case "email":
		switch tag {
		case "required":
			return "Email cannot be null"
		case "email":
			return "Email is not valid"
		}
	case "password":
		switch tag {
		case "required":
			return "Password cannot be null"
		case "min":
			return "Password must be at least 6 characters"
		case "passwd":
			return "Password must have at least one uppercase, 1 lowercase letter and one number"
		}
	}
	return "Invalid value"
}
