// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
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

// TravelService implements business logic for Travel operations.
// It holds the events repo as well because the single-travel read reports an
// active-event count and the comprehensive read embeds the events themselves.
type TravelService struct {
	travels repo.TravelRepo
	events  repo.EventRepo
}

// NewTravelService constructs a TravelService backed by the provided repos.
func NewTravelService(travels repo.TravelRepo, events repo.EventRepo) *TravelService {
	return &TravelService{travels: travels, events: events}
}

// Create validates and persists a new travel.
// Returns domain.ErrValidation if input violates business rules.
func (s *TravelService) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	if err := validateTravel(travel); err != nil {
		return domain.Travel{}, err
	}
	result, err := s.travels.Create(ctx, travel)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single travel by ID — deleted or not — together with the
// number of its active events. Callers that must not show deleted records
// check IsDeleted themselves; a deleted travel is still a valid detail view
// (e.g. for an undo confirmation).
func (s *TravelService) GetByID(ctx context.Context, id uuid.UUID) (domain.Travel, int64, error) {
	travel, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return domain.Travel{}, 0, fmt.Errorf("service.TravelService.GetByID: %w", err)
	}
	count, err := s.events.CountActiveByTravel(ctx, id)
	if err != nil {
		return domain.Travel{}, 0, fmt.Errorf("service.TravelService.GetByID: %w", err)
	}
	return travel, count, nil
}

// ListActive returns one page of non-deleted travels, newest-created first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TravelService) ListActive(ctx context.Context, f domain.TravelFilter, p domain.PaginationParams) ([]domain.Travel, int64, error) {
	travels, total, err := s.travels.ListActive(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TravelService.ListActive: %w", err)
	}
	if travels == nil {
		travels = []domain.Travel{}
	}
	return travels, total, nil
}

// ListDeleted returns one page of soft-deleted travels, most recently deleted first.
func (s *TravelService) ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int64, error) {
	travels, total, err := s.travels.ListDeleted(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TravelService.ListDeleted: %w", err)
	}
	if travels == nil {
		travels = []domain.Travel{}
	}
	return travels, total, nil
}

// Update applies a partial update to an existing travel. Only the fields set
// in the patch change; changed fields are re-validated against the stored
// values (so updating just the end date still enforces start < end).
// The soft-delete envelope is never modified here.
func (s *TravelService) Update(ctx context.Context, id uuid.UUID, patch domain.TravelPatch) (domain.Travel, error) {
	if patch.IsZero() {
		return domain.Travel{}, fmt.Errorf("%w: no fields provided for update", domain.ErrValidation)
	}

	travel, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}

	if patch.Title != nil {
		travel.Title = *patch.Title
	}
	if patch.Description != nil {
		travel.Description = *patch.Description
	}
	if patch.StartDate != nil {
		travel.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		travel.EndDate = *patch.EndDate
	}
	if patch.Destination != nil {
		travel.Destination = *patch.Destination
	}

	if err := validateTravel(travel); err != nil {
		return domain.Travel{}, err
	}

	result, err := s.travels.Update(ctx, travel)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}
	return result, nil
}

// SoftDelete marks a travel deleted and returns the deletion timestamp.
// The travel's events are NOT cascaded — they stay active and remain
// listable under the deleted travel.
// Returns domain.ErrNotFound if unknown, domain.ErrAlreadyDeleted if the
// travel is already soft-deleted.
func (s *TravelService) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	deletedAt, err := s.travels.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.TravelService.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears a travel's soft-delete envelope.
// Returns domain.ErrNotFound if unknown, domain.ErrNotDeleted if the travel
// is not currently soft-deleted.
func (s *TravelService) Restore(ctx context.Context, id uuid.UUID) (domain.Travel, error) {
	result, err := s.travels.Restore(ctx, id)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Restore: %w", err)
	}
	return result, nil
}

// GetComprehensive returns a travel together with all of its active events
// (start datetime ascending, event type metadata joined) and their count.
// Returns domain.ErrNotFound when the id is unknown in the store at all and
// domain.ErrGone when the travel exists but is soft-deleted — callers display
// different messages for the two cases.
func (s *TravelService) GetComprehensive(ctx context.Context, id uuid.UUID) (domain.TravelDetail, error) {
	travel, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return domain.TravelDetail{}, fmt.Errorf("service.TravelService.GetComprehensive: %w", err)
	}
	if travel.IsDeleted {
		return domain.TravelDetail{}, fmt.Errorf("service.TravelService.GetComprehensive: %w", domain.ErrGone)
	}

	events, err := s.events.ListAllActiveByTravel(ctx, id)
	if err != nil {
		return domain.TravelDetail{}, fmt.Errorf("service.TravelService.GetComprehensive: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}

	return domain.TravelDetail{
		Travel:      travel,
		Events:      events,
		EventsCount: len(events),
	}, nil
}

// validateTravel enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected) and ≤255 chars.
//   - Description is capped at 1000 chars, destination at 255.
//   - Both dates must be set, with start_date strictly before end_date.
func validateTravel(travel domain.Travel) error {
	if strings.TrimSpace(travel.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(travel.Title) > 255 {
		return fmt.Errorf("%w: title must be at most 255 characters", domain.ErrValidation)
	}
	if len(travel.Description) > 1000 {
		return fmt.Errorf("%w: description must be at most 1000 characters", domain.ErrValidation)
	}
	if len(travel.Destination) > 255 {
		return fmt.Errorf("%w: destination must be at most 255 characters", domain.ErrValidation)
	}
	if travel.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if travel.EndDate.IsZero() {
		return fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	if !travel.StartDate.Before(travel.EndDate) {
		return fmt.Errorf("%w: start_date must be before end_date", domain.ErrValidation)
	}
	return nil
}
