package handler

import (
	"time"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// eventRequest is the inbound payload for create and update. The wire
// contract uses camelCase; derived fields (free, offline, eventStatus) are
// never accepted from the caller.
type eventRequest struct {
	Name                    string    `json:"name"                    validate:"required"`
	Description             string    `json:"description"             validate:"required"`
	BeginEnrollmentDateTime time.Time `json:"beginEnrollmentDateTime" validate:"required"`
	CloseEnrollmentDateTime time.Time `json:"closeEnrollmentDateTime" validate:"required"`
	BeginEventDateTime      time.Time `json:"beginEventDateTime"      validate:"required"`
	EndEventDateTime        time.Time `json:"endEventDateTime"        validate:"required"`
	Location                string    `json:"location,omitempty"`
	BasePrice               int       `json:"basePrice"               validate:"gte=0"`
	MaxPrice                int       `json:"maxPrice"                validate:"gte=0"`
	LimitOfEnrollment       int       `json:"limitOfEnrollment"       validate:"gte=0"`
}

type linkRef struct {
	Href string `json:"href"`
}

type eventLinks map[string]linkRef

// eventResponse is the canonical event representation.
type eventResponse struct {
	ID                      int64      `json:"id"`
	Name                    string     `json:"name"`
	Description             string     `json:"description"`
	BeginEnrollmentDateTime time.Time  `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime time.Time  `json:"closeEnrollmentDateTime"`
	BeginEventDateTime      time.Time  `json:"beginEventDateTime"`
	EndEventDateTime        time.Time  `json:"endEventDateTime"`
	Location                string     `json:"location,omitempty"`
	BasePrice               int        `json:"basePrice"`
	MaxPrice                int        `json:"maxPrice"`
	LimitOfEnrollment       int        `json:"limitOfEnrollment"`
	Offline                 bool       `json:"offline"`
	Free                    bool       `json:"free"`
	EventStatus             string     `json:"eventStatus"`
	Links                   eventLinks `json:"_links"`
}

// pageSummary is the page block attached to list responses.
type pageSummary struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type listEventsResponse struct {
	Data  []eventResponse `json:"data"`
	Page  pageSummary     `json:"page"`
	Links eventLinks      `json:"_links"`
}

// Error envelopes rendered by the central error handler, mirrored here so
// the generated docs can resolve them from this package.

// errorBody is the OAuth-style error envelope.
type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// validationBody carries the full list of violated rules plus a link back
// to the API index.
type validationBody struct {
	Errors []domain.FieldError `json:"errors"`
	Links  eventLinks          `json:"_links"`
}
