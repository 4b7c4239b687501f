package ports

import (
	"context"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// ListEventsFilter carries the query parameters for listing events.
type ListEventsFilter struct {
	Page     int    // 0-based
	Size     int    // rows per page (capped by the service)
	SortBy   string // whitelisted field name; empty = id
	SortDesc bool
}

// EventRepository defines persistence operations for events. Insert assigns
// the identity; identifiers are never reused.
type EventRepository interface {
	Insert(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	// List returns a page of events plus the total count.
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, int64, error)
	// DeleteAll is a maintenance operation for test setups only; it is not
	// reachable from any API route.
	DeleteAll(ctx context.Context) error
}
