package service

import (
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

const eventObjectName = "event"

// ValidateEvent runs the business rules over an event payload. Every rule
// is evaluated, no short-circuit, so the caller sees all failures at once.
// An empty slice means the payload is valid.
//
// Known gap, kept deliberately: there is no ordering check between
// beginEventDateTime and the enrollment window.
func ValidateEvent(in ports.EventInput) []domain.FieldError {
	var errs []domain.FieldError

	// Either price could be "the wrong one", so this is a global error
	// rather than a field error on one of them.
	if in.BasePrice > in.MaxPrice && in.MaxPrice > 0 {
		errs = append(errs, domain.GlobalError(eventObjectName, "wrongPrices", "values of prices are wrong"))
	}

	end := in.EndEventDateTime
	if end.Before(in.BeginEventDateTime) {
		errs = append(errs, domain.NewFieldError(eventObjectName, "endEventDateTime", "wrongValue",
			"endEventDateTime is before beginEventDateTime", end))
	}
	if end.Before(in.CloseEnrollmentDateTime) {
		errs = append(errs, domain.NewFieldError(eventObjectName, "endEventDateTime", "wrongValue",
			"endEventDateTime is before closeEnrollmentDateTime", end))
	}
	if end.Before(in.BeginEnrollmentDateTime) {
		errs = append(errs, domain.NewFieldError(eventObjectName, "endEventDateTime", "wrongValue",
			"endEventDateTime is before beginEnrollmentDateTime", end))
	}

	return errs
}
