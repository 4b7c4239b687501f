package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call
// c.Validate(req). Failures come back as a *domain.ValidationError so the
// central error handler renders the full structured list, one entry per
// violated constraint.
type echoValidator struct {
	v      *validator.Validate
	object string
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator. Field names in errors follow the json tags.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v, object: "event"}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fieldErrs := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fieldErrs = append(fieldErrs, domain.NewFieldError(
			ev.object, fe.Field(), fe.Tag(), constraintMessage(fe), fe.Value(),
		))
	}
	return &domain.ValidationError{Errors: fieldErrs}
}

// constraintMessage converts a single constraint violation into a
// human-readable message.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
