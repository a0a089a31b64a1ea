// Package forms holds the input forms of the client and their validation
// rules, checked with go-playground/validator before anything is sent to
// the backend.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError is one failed rule, keyed by the field's user-facing name.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists the failed fields in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Message returns the error reported for field, or "".
func (v ValidationErrors) Message(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var (
	once     sync.Once
	instance *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name, _, _ := strings.Cut(f.Tag.Get("form"), ","); name != "" && name != "-" {
				return name
			}
			return strings.ToLower(f.Name)
		})
		_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// trimlen is len applied to the trimmed value.
		_ = v.RegisterValidation("trimlen", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			return err == nil && utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) == n
		})
		v.RegisterStructValidation(priceRangeRule, PriceRange{})
		instance = v
	})
	return instance
}

// Validate checks form against its rules and returns ValidationErrors, or
// nil when the form is valid.
func Validate(form any) error {
	err := validate().Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(ValidationErrors, 0, len(ve))
	seen := make(map[string]bool, len(ve))
	for _, fe := range ve {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "simpleemail":
		return "must be a valid email address"
	case "notblank":
		return "must not be blank"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len", "trimlen":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "eqfield":
		return "does not match " + strings.ToLower(fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "gtefield":
		return "must not be less than " + strings.ToLower(fe.Param())
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
