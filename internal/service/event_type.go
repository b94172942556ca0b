package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
	"github.com/pmathis/travel-planner/backend/internal/repo"
)

// hexColorRe matches a #RRGGBB display color.
var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// EventTypeService implements business logic for EventType operations.
// Event types are a global lookup — deleting one does not touch the events
// referencing it; joined event reads simply stop carrying its metadata.
type EventTypeService struct {
	types repo.EventTypeRepo
}

// NewEventTypeService constructs an EventTypeService backed by the provided repo.
func NewEventTypeService(types repo.EventTypeRepo) *EventTypeService {
	return &EventTypeService{types: types}
}

// Create validates and persists a new event type.
// An omitted color falls back to the default display blue.
func (s *EventTypeService) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	if et.Color == "" {
		et.Color = "#3B82F6"
	}
	if err := validateEventType(et); err != nil {
		return domain.EventType{}, err
	}
	result, err := s.types.Create(ctx, et)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single event type by ID, deleted or not.
func (s *EventTypeService) GetByID(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	result, err := s.types.GetByID(ctx, id)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.GetByID: %w", err)
	}
	return result, nil
}

// ListActive returns one page of non-deleted event types, optionally
// restricted to a category. An unknown category is a validation error rather
// than an empty result, so typos surface instead of hiding data.
func (s *EventTypeService) ListActive(ctx context.Context, category string, p domain.PaginationParams) ([]domain.EventType, int64, error) {
	if category != "" && !domain.ValidCategory(category) {
		return nil, 0, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	types, total, err := s.types.ListActive(ctx, category, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventTypeService.ListActive: %w", err)
	}
	if types == nil {
		types = []domain.EventType{}
	}
	return types, total, nil
}

// ListDeleted returns one page of soft-deleted event types.
func (s *EventTypeService) ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.EventType, int64, error) {
	types, total, err := s.types.ListDeleted(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventTypeService.ListDeleted: %w", err)
	}
	if types == nil {
		types = []domain.EventType{}
	}
	return types, total, nil
}

// Update applies a partial update to an existing event type.
func (s *EventTypeService) Update(ctx context.Context, id uuid.UUID, patch domain.EventTypePatch) (domain.EventType, error) {
	if patch.IsZero() {
		return domain.EventType{}, fmt.Errorf("%w: no fields provided for update", domain.ErrValidation)
	}

	et, err := s.types.GetByID(ctx, id)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Update: %w", err)
	}

	if patch.Name != nil {
		et.Name = *patch.Name
	}
	if patch.Category != nil {
		et.Category = *patch.Category
	}
	if patch.Color != nil {
		et.Color = *patch.Color
	}
	if patch.Icon != nil {
		et.Icon = *patch.Icon
	}

	if err := validateEventType(et); err != nil {
		return domain.EventType{}, err
	}

	result, err := s.types.Update(ctx, et)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Update: %w", err)
	}
	return result, nil
}

// SoftDelete marks an event type deleted. Events referencing it stay active.
func (s *EventTypeService) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	deletedAt, err := s.types.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventTypeService.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears an event type's soft-delete envelope.
func (s *EventTypeService) Restore(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	result, err := s.types.Restore(ctx, id)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Restore: %w", err)
	}
	return result, nil
}

// validateEventType enforces business rules common to both Create and Update.
func validateEventType(et domain.EventType) error {
	if strings.TrimSpace(et.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(et.Name) > 100 {
		return fmt.Errorf("%w: name must be at most 100 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(et.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if !domain.ValidCategory(et.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, et.Category)
	}
	if !hexColorRe.MatchString(et.Color) {
		return fmt.Errorf("%w: color must be a hex code like #1a2b3c", domain.ErrValidation)
	}
	if utf8.RuneCountInString(et.Icon) > 10 {
		return fmt.Errorf("%w: icon must be at most 10 characters", domain.ErrValidation)
	}
	return nil
}
