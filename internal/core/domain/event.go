package domain

import "time"

// EventStatus represents the lifecycle state of an event.
type EventStatus string

const (
	StatusDraft           EventStatus = "DRAFT"
	StatusPublished       EventStatus = "PUBLISHED"
	StatusBeganEnrollment EventStatus = "BEGAN_ENROLLMENT"
)

// Event is the core aggregate root. Every event carries four ordered
// timestamps (enrollment window, then the event window), an optional
// location, and two derived flags computed at construction time.
type Event struct {
	ID                      int64       `json:"id" bson:"_id"`
	Name                    string      `json:"name" bson:"name"`
	Description             string      `json:"description" bson:"description"`
	BeginEnrollmentDateTime time.Time   `json:"begin_enrollment_date_time" bson:"begin_enrollment_date_time"`
	CloseEnrollmentDateTime time.Time   `json:"close_enrollment_date_time" bson:"close_enrollment_date_time"`
	BeginEventDateTime      time.Time   `json:"begin_event_date_time" bson:"begin_event_date_time"`
	EndEventDateTime        time.Time   `json:"end_event_date_time" bson:"end_event_date_time"`
	Location                string      `json:"location,omitempty" bson:"location,omitempty"`
	BasePrice               int         `json:"base_price" bson:"base_price"`
	MaxPrice                int         `json:"max_price" bson:"max_price"`
	LimitOfEnrollment       int         `json:"limit_of_enrollment" bson:"limit_of_enrollment"`
	Offline                 bool        `json:"offline" bson:"offline"`
	Free                    bool        `json:"free" bson:"free"`
	Status                  EventStatus `json:"status" bson:"status"`
	CreatedAt               time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at" bson:"updated_at"`
}

// EventFields carries the caller-supplied attributes of an event.
// Derived flags and identity are never part of it.
type EventFields struct {
	Name                    string
	Description             string
	BeginEnrollmentDateTime time.Time
	CloseEnrollmentDateTime time.Time
	BeginEventDateTime      time.Time
	EndEventDateTime        time.Time
	Location                string
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
}

// NewEvent builds a draft event from its fields, computing the derived
// flags atomically so no Event ever exists with stale free/offline values.
func NewEvent(f EventFields, now time.Time) *Event {
	e := &Event{
		Name:                    f.Name,
		Description:             f.Description,
		BeginEnrollmentDateTime: f.BeginEnrollmentDateTime,
		CloseEnrollmentDateTime: f.CloseEnrollmentDateTime,
		BeginEventDateTime:      f.BeginEventDateTime,
		EndEventDateTime:        f.EndEventDateTime,
		Location:                f.Location,
		BasePrice:               f.BasePrice,
		MaxPrice:                f.MaxPrice,
		LimitOfEnrollment:       f.LimitOfEnrollment,
		Status:                  StatusDraft,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	e.refreshDerived()
	return e
}

// Apply overwrites the mutable fields of an existing event and recomputes
// the derived flags. Identity and status are untouched.
func (e *Event) Apply(f EventFields, now time.Time) {
	e.Name = f.Name
	e.Description = f.Description
	e.BeginEnrollmentDateTime = f.BeginEnrollmentDateTime
	e.CloseEnrollmentDateTime = f.CloseEnrollmentDateTime
	e.BeginEventDateTime = f.BeginEventDateTime
	e.EndEventDateTime = f.EndEventDateTime
	e.Location = f.Location
	e.BasePrice = f.BasePrice
	e.MaxPrice = f.MaxPrice
	e.LimitOfEnrollment = f.LimitOfEnrollment
	e.UpdatedAt = now
	e.refreshDerived()
}

func (e *Event) refreshDerived() {
	e.Offline = e.Location != ""
	e.Free = e.BasePrice == 0 && e.MaxPrice == 0
}

// Equal compares events by identity alone. Owned collections and relations
// must never participate in equality, or cyclic references blow up on
// traversal once relations are added.
func (e *Event) Equal(other *Event) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.ID == other.ID
}
