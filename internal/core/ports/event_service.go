package ports

import (
	"context"
	"time"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// EventInput is the DTO passed from the transport layer to EventService.
type EventInput struct {
	Name                    string
	Description             string
	BeginEnrollmentDateTime time.Time
	CloseEnrollmentDateTime time.Time
	BeginEventDateTime      time.Time
	EndEventDateTime        time.Time
	Location                string // empty = online event
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
}

// EventPage is a single page of events plus its summary block.
type EventPage struct {
	Items         []*domain.Event
	TotalElements int64
	TotalPages    int
	Number        int // 0-based page index
	Size          int
}

// EventService defines use-case operations over events. Create and Update
// run the business validator before any write; Get and List are
// pass-through reads.
type EventService interface {
	Create(ctx context.Context, actor string, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, actor string, id int64, in EventInput) (*domain.Event, error)
	Get(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context, filter ListEventsFilter) (*EventPage, error)
}
