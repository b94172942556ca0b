package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
	"github.com/pmathis/travel-planner/backend/internal/repo"
)

// EventService implements business logic for Event operations.
// It holds travels and event-types repos because creating an event requires
// verifying both referenced entities exist. The references are checked by
// bare identifier lookup — a soft-deleted travel or type is still a valid
// reference target.
type EventService struct {
	travels repo.TravelRepo
	types   repo.EventTypeRepo
	events  repo.EventRepo
}

// NewEventService constructs an EventService backed by the provided repos.
func NewEventService(travels repo.TravelRepo, types repo.EventTypeRepo, events repo.EventRepo) *EventService {
	return &EventService{travels: travels, types: types, events: events}
}

// Create validates the event, verifies the parent travel and the referenced
// event type exist (regardless of their deleted state), then persists.
// Returns domain.ErrValidation if input violates business rules and
// domain.ErrNotFound if either referenced entity does not exist; nothing is
// persisted on failure.
func (s *EventService) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}
	if _, err := s.travels.GetByID(ctx, event.TravelID); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: travel: %w", err)
	}
	if _, err := s.types.GetByID(ctx, event.EventTypeID); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: event type: %w", err)
	}
	result, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single event by ID, deleted or not, with type metadata joined.
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	result, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return result, nil
}

// ListActiveByTravel returns one page of non-deleted events for a travel,
// ordered by start datetime ascending. The travel must exist, but its own
// deleted state is irrelevant: the calendar may list events of a travel that
// is itself sitting in the trash.
func (s *EventService) ListActiveByTravel(ctx context.Context, travelID uuid.UUID, f domain.EventFilter, p domain.PaginationParams) ([]domain.Event, int64, error) {
	if _, err := s.travels.GetByID(ctx, travelID); err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListActiveByTravel: travel: %w", err)
	}
	events, total, err := s.events.ListActiveByTravel(ctx, travelID, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListActiveByTravel: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, total, nil
}

// ListDeletedByTravel returns one page of soft-deleted events for a travel,
// most recently deleted first.
func (s *EventService) ListDeletedByTravel(ctx context.Context, travelID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error) {
	if _, err := s.travels.GetByID(ctx, travelID); err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListDeletedByTravel: travel: %w", err)
	}
	events, total, err := s.events.ListDeletedByTravel(ctx, travelID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListDeletedByTravel: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, total, nil
}

// Update applies a partial update to an existing event. A changed event type
// reference is re-verified; changed datetimes are re-checked for ordering
// against the stored values.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error) {
	if patch.IsZero() {
		return domain.Event{}, fmt.Errorf("%w: no fields provided for update", domain.ErrValidation)
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.EventTypeID != nil && *patch.EventTypeID != event.EventTypeID {
		if _, err := s.types.GetByID(ctx, *patch.EventTypeID); err != nil {
			return domain.Event{}, fmt.Errorf("service.EventService.Update: event type: %w", err)
		}
		event.EventTypeID = *patch.EventTypeID
	}
	if patch.StartDatetime != nil {
		event.StartDatetime = *patch.StartDatetime
	}
	if patch.EndDatetime != nil {
		event.EndDatetime = *patch.EndDatetime
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}

	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	result, err := s.events.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	return result, nil
}

// SoftDelete marks an event deleted and returns the deletion timestamp.
// Attachments of the event are NOT cascaded.
func (s *EventService) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	deletedAt, err := s.events.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventService.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears an event's soft-delete envelope.
func (s *EventService) Restore(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	result, err := s.events.Restore(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Restore: %w", err)
	}
	return result, nil
}

// validateEvent enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected) and ≤255 chars.
//   - Both datetimes must be set, with start strictly before end.
func validateEvent(event domain.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(event.Title) > 255 {
		return fmt.Errorf("%w: title must be at most 255 characters", domain.ErrValidation)
	}
	if len(event.Description) > 1000 {
		return fmt.Errorf("%w: description must be at most 1000 characters", domain.ErrValidation)
	}
	if len(event.Location) > 255 {
		return fmt.Errorf("%w: location must be at most 255 characters", domain.ErrValidation)
	}
	if event.StartDatetime.IsZero() {
		return fmt.Errorf("%w: start_datetime is required", domain.ErrValidation)
	}
	if event.EndDatetime.IsZero() {
		return fmt.Errorf("%w: end_datetime is required", domain.ErrValidation)
	}
	if !event.StartDatetime.Before(event.EndDatetime) {
		return fmt.Errorf("%w: start_datetime must be before end_datetime", domain.ErrValidation)
	}
	return nil
}
