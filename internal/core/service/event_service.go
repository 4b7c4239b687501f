package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/api/metrics"
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EventService orchestrates the event lifecycle: validate, derive, persist.
type EventService struct {
	repo   ports.EventRepository
	audit  ports.AuditTrail
	logger zerolog.Logger
}

func NewEventService(repo ports.EventRepository, audit ports.AuditTrail, logger zerolog.Logger) *EventService {
	return &EventService{repo: repo, audit: audit, logger: logger}
}

// Create validates the payload, builds a draft event with its derived
// flags, persists it, and returns the stored entity with its identity.
func (s *EventService) Create(ctx context.Context, actor string, in ports.EventInput) (*domain.Event, error) {
	if errs := ValidateEvent(in); len(errs) > 0 {
		metrics.EventValidationFailuresTotal.Add(float64(len(errs)))
		return nil, &domain.ValidationError{Errors: errs}
	}

	event := domain.NewEvent(toFields(in), time.Now().UTC())
	created, err := s.repo.Insert(ctx, event)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to persist event")
		return nil, fmt.Errorf("create event: %w", err)
	}

	metrics.EventsCreatedTotal.Inc()
	s.audit.Record(auditNow(actor, domain.AuditEventCreated, strconv.FormatInt(created.ID, 10)))
	s.logger.Info().
		Int64("event_id", created.ID).
		Str("name", created.Name).
		Bool("free", created.Free).
		Bool("offline", created.Offline).
		Msg("event created")

	return created, nil
}

// Update overwrites the mutable fields of an existing event. Identity and
// status are never touched by this operation; no partial update is ever
// applied on failure.
func (s *EventService) Update(ctx context.Context, actor string, id int64, in ports.EventInput) (*domain.Event, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := ValidateEvent(in); len(errs) > 0 {
		metrics.EventValidationFailuresTotal.Add(float64(len(errs)))
		return nil, &domain.ValidationError{Errors: errs}
	}

	existing.Apply(toFields(in), time.Now().UTC())
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Int64("event_id", id).Msg("failed to update event")
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.audit.Record(auditNow(actor, domain.AuditEventUpdated, strconv.FormatInt(id, 10)))
	s.logger.Info().Int64("event_id", id).Msg("event updated")

	return updated, nil
}

// Get is a pass-through read, always allowed anonymously.
func (s *EventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of events plus the page summary block.
func (s *EventService) List(ctx context.Context, filter ports.ListEventsFilter) (*ports.EventPage, error) {
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = defaultPageSize
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	totalPages := int(total) / filter.Size
	if int(total)%filter.Size != 0 {
		totalPages++
	}

	return &ports.EventPage{
		Items:         items,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        filter.Page,
		Size:          filter.Size,
	}, nil
}

func toFields(in ports.EventInput) domain.EventFields {
	return domain.EventFields{
		Name:                    in.Name,
		Description:             in.Description,
		BeginEnrollmentDateTime: in.BeginEnrollmentDateTime,
		CloseEnrollmentDateTime: in.CloseEnrollmentDateTime,
		BeginEventDateTime:      in.BeginEventDateTime,
		EndEventDateTime:        in.EndEventDateTime,
		Location:                in.Location,
		BasePrice:               in.BasePrice,
		MaxPrice:                in.MaxPrice,
		LimitOfEnrollment:       in.LimitOfEnrollment,
	}
}
