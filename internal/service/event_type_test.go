package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmathis/travel-planner/backend/internal/domain"
	"github.com/pmathis/travel-planner/backend/internal/repo"
	"github.com/pmathis/travel-planner/backend/internal/service"
)

// mockEventTypeRepo is a hand-written test double for repo.EventTypeRepo.
type mockEventTypeRepo struct {
	create     func(ctx context.Context, et domain.EventType) (domain.EventType, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.EventType, error)
	listActive func(ctx context.Context, category string, p domain.PaginationParams) ([]domain.EventType, int64, error)
	listDel    func(ctx context.Context, p domain.PaginationParams) ([]domain.EventType, int64, error)
	update     func(ctx context.Context, et domain.EventType) (domain.EventType, error)
	softDelete func(ctx context.Context, id uuid.UUID) (time.Time, error)
	restore    func(ctx context.Context, id uuid.UUID) (domain.EventType, error)
}

func (m *mockEventTypeRepo) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	return m.create(ctx, et)
}
func (m *mockEventTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventTypeRepo) ListActive(ctx context.Context, category string, p domain.PaginationParams) ([]domain.EventType, int64, error) {
	return m.listActive(ctx, category, p)
}
func (m *mockEventTypeRepo) ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.EventType, int64, error) {
	return m.listDel(ctx, p)
}
func (m *mockEventTypeRepo) Update(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	return m.update(ctx, et)
}
func (m *mockEventTypeRepo) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockEventTypeRepo) Restore(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	return m.restore(ctx, id)
}

var _ repo.EventTypeRepo = (*mockEventTypeRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validEventType() domain.EventType {
	return domain.EventType{
		ID:       uuid.New(),
		Name:     "Museum",
		Category: "activity",
		Color:    "#FF5733",
		Icon:     "🏛️",
	}
}

func echoEventTypeRepo() *mockEventTypeRepo {
	return &mockEventTypeRepo{
		create: func(_ context.Context, et domain.EventType) (domain.EventType, error) { return et, nil },
		update: func(_ context.Context, et domain.EventType) (domain.EventType, error) { return et, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestEventTypeService_Create_Valid(t *testing.T) {
	svc := service.NewEventTypeService(echoEventTypeRepo())

	got, err := svc.Create(context.Background(), validEventType())

	require.NoError(t, err)
	assert.Equal(t, "Museum", got.Name)
}

func TestEventTypeService_Create_DefaultsColor(t *testing.T) {
	svc := service.NewEventTypeService(echoEventTypeRepo())

	et := validEventType()
	et.Color = ""

	got, err := svc.Create(context.Background(), et)

	require.NoError(t, err)
	assert.Equal(t, "#3B82F6", got.Color)
}

func TestEventTypeService_Create_UnknownCategory(t *testing.T) {
	svc := service.NewEventTypeService(echoEventTypeRepo())

	et := validEventType()
	et.Category = "sightseeing"

	_, err := svc.Create(context.Background(), et)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventTypeService_Create_BadColor(t *testing.T) {
	svc := service.NewEventTypeService(echoEventTypeRepo())

	for _, color := range []string{"FF5733", "#FF573", "#GG5733", "red"} {
		et := validEventType()
		et.Color = color

		_, err := svc.Create(context.Background(), et)

		assert.ErrorIs(t, err, domain.ErrValidation, "color %q should be rejected", color)
	}
}

func TestEventTypeService_Create_IconTooLong(t *testing.T) {
	svc := service.NewEventTypeService(echoEventTypeRepo())

	et := validEventType()
	et.Icon = strings.Repeat("x", 11)

	_, err := svc.Create(context.Background(), et)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Icon length is counted in runes, not bytes — one emoji is one character.
func TestEventTypeService_Create_MultibyteIcon(t *testing.T) {
	svc := service.NewEventTypeService(echoEventTypeRepo())

	et := validEventType()
	et.Icon = "✈️🏨🍽️"

	_, err := svc.Create(context.Background(), et)

	assert.NoError(t, err)
}

// ---- List tests ------------------------------------------------------------

func TestEventTypeService_ListActive_UnknownCategory(t *testing.T) {
	svc := service.NewEventTypeService(&mockEventTypeRepo{})

	_, _, err := svc.ListActive(context.Background(), "sightseeing", domain.PaginationParams{Page: 1, Limit: 20})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventTypeService_ListActive_ValidCategory(t *testing.T) {
	types := &mockEventTypeRepo{
		listActive: func(_ context.Context, category string, _ domain.PaginationParams) ([]domain.EventType, int64, error) {
			assert.Equal(t, "food", category)
			return []domain.EventType{validEventType()}, 1, nil
		},
	}
	svc := service.NewEventTypeService(types)

	got, total, err := svc.ListActive(context.Background(), "food", domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.EqualValues(t, 1, total)
}

// ---- Update tests ----------------------------------------------------------

func TestEventTypeService_Update_PartialPatch(t *testing.T) {
	stored := validEventType()
	types := &mockEventTypeRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.EventType, error) { return stored, nil },
		update:  func(_ context.Context, et domain.EventType) (domain.EventType, error) { return et, nil },
	}
	svc := service.NewEventTypeService(types)

	name := "Gallery"
	got, err := svc.Update(context.Background(), stored.ID, domain.EventTypePatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Gallery", got.Name)
	assert.Equal(t, stored.Category, got.Category)
}

func TestEventTypeService_Update_EmptyPatch(t *testing.T) {
	svc := service.NewEventTypeService(&mockEventTypeRepo{})

	_, err := svc.Update(context.Background(), uuid.New(), domain.EventTypePatch{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventTypeService_Update_BadPatchedCategory(t *testing.T) {
	stored := validEventType()
	types := &mockEventTypeRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.EventType, error) { return stored, nil },
		update:  func(_ context.Context, et domain.EventType) (domain.EventType, error) { return et, nil },
	}
	svc := service.NewEventTypeService(types)

	bad := "vacationing"
	_, err := svc.Update(context.Background(), stored.ID, domain.EventTypePatch{Category: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- SoftDelete / Restore tests --------------------------------------------

func TestEventTypeService_SoftDelete_NotFound(t *testing.T) {
	types := &mockEventTypeRepo{
		softDelete: func(_ context.Context, _ uuid.UUID) (time.Time, error) {
			return time.Time{}, domain.ErrNotFound
		},
	}
	svc := service.NewEventTypeService(types)

	_, err := svc.SoftDelete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventTypeService_Restore_NotDeleted(t *testing.T) {
	types := &mockEventTypeRepo{
		restore: func(_ context.Context, _ uuid.UUID) (domain.EventType, error) {
			return domain.EventType{}, domain.ErrNotDeleted
		},
	}
	svc := service.NewEventTypeService(types)

	_, err := svc.Restore(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotDeleted)
}
