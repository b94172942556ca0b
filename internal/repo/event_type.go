package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// EventTypeRepo defines the persistence operations for EventTypes.
// Event types are global — not owned by any travel or event.
type EventTypeRepo interface {
	// Create inserts a new event type and returns the persisted record.
	Create(ctx context.Context, et domain.EventType) (domain.EventType, error)

	// GetByID retrieves a single event type by its UUID, regardless of its
	// soft-delete state. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.EventType, error)

	// ListActive returns one page of non-deleted event types ordered by
	// created_at descending, plus the total count. A non-empty category
	// restricts the result to that category.
	ListActive(ctx context.Context, category string, p domain.PaginationParams) ([]domain.EventType, int64, error)

	// ListDeleted returns one page of soft-deleted event types ordered by
	// deleted_at descending, plus the total count.
	ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.EventType, int64, error)

	// Update overwrites the mutable fields of an event type.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, et domain.EventType) (domain.EventType, error)

	// SoftDelete marks an event type deleted and returns the deletion timestamp.
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)

	// Restore clears an event type's soft-delete envelope.
	Restore(ctx context.Context, id uuid.UUID) (domain.EventType, error)
}

// pgEventTypeRepo is the Postgres implementation of EventTypeRepo.
type pgEventTypeRepo struct {
	db db
}

// NewEventTypeRepo constructs an EventTypeRepo backed by the provided db connection.
func NewEventTypeRepo(db db) EventTypeRepo {
	return &pgEventTypeRepo{db: db}
}

const eventTypeColumns = `id, name, category, color, icon,
	is_deleted, deleted_at, created_at, updated_at`

func (r *pgEventTypeRepo) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	const q = `
		INSERT INTO event_types (name, category, color, icon)
		VALUES (@name, @category, @color, @icon)
		RETURNING ` + eventTypeColumns

	args := pgx.NamedArgs{
		"name":     et.Name,
		"category": et.Category,
		"color":    et.Color,
		"icon":     et.Icon,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEventType(row)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	const q = `SELECT ` + eventTypeColumns + ` FROM event_types WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEventType(row)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventTypeRepo) ListActive(ctx context.Context, category string, p domain.PaginationParams) ([]domain.EventType, int64, error) {
	const where = `
		WHERE is_deleted = FALSE
		  AND (@category = '' OR category = @category)`

	args := pgx.NamedArgs{
		"category": category,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM event_types`+where, args).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventTypeRepo.ListActive: count: %w", err)
	}

	q := `SELECT ` + eventTypeColumns + ` FROM event_types` + where + `
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	types, err := r.queryEventTypes(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventTypeRepo.ListActive: %w", err)
	}
	return types, total, nil
}

func (r *pgEventTypeRepo) ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.EventType, int64, error) {
	args := pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM event_types WHERE is_deleted = TRUE`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventTypeRepo.ListDeleted: count: %w", err)
	}

	q := `SELECT ` + eventTypeColumns + ` FROM event_types
		WHERE is_deleted = TRUE
		ORDER BY deleted_at DESC
		LIMIT @limit OFFSET @offset`

	types, err := r.queryEventTypes(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventTypeRepo.ListDeleted: %w", err)
	}
	return types, total, nil
}

func (r *pgEventTypeRepo) Update(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	const q = `
		UPDATE event_types
		SET name       = @name,
		    category   = @category,
		    color      = @color,
		    icon       = @icon,
		    updated_at = clock_timestamp()
		WHERE id = @id
		RETURNING ` + eventTypeColumns

	args := pgx.NamedArgs{
		"id":       et.ID,
		"name":     et.Name,
		"category": et.Category,
		"color":    et.Color,
		"icon":     et.Icon,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEventType(row)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventTypeRepo) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	const q = `
		UPDATE event_types
		SET is_deleted = TRUE, deleted_at = clock_timestamp(), updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = FALSE
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = classifySoftDelete(ctx, r.db, "event_types", id)
		}
		return time.Time{}, fmt.Errorf("repo.EventTypeRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

func (r *pgEventTypeRepo) Restore(ctx context.Context, id uuid.UUID) (domain.EventType, error) {
	const q = `
		UPDATE event_types
		SET is_deleted = FALSE, deleted_at = NULL, updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = TRUE
		RETURNING ` + eventTypeColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEventType(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = classifyRestore(ctx, r.db, "event_types", id)
		}
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Restore: %w", err)
	}
	return result, nil
}

func (r *pgEventTypeRepo) queryEventTypes(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.EventType, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []domain.EventType{}
	for rows.Next() {
		et, err := scanEventType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		types = append(types, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return types, nil
}

// scanEventType maps a single database row into a domain.EventType.
func scanEventType(s scanner) (domain.EventType, error) {
	var (
		et        domain.EventType
		id        pgtype.UUID
		deletedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &et.Name, &et.Category, &et.Color, &et.Icon,
		&et.IsDeleted, &deletedAt, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EventType{}, domain.ErrNotFound
		}
		return domain.EventType{}, err
	}

	et.ID = uuid.UUID(id.Bytes)
	if deletedAt.Valid {
		da := deletedAt.Time
		et.DeletedAt = &da
	}

	return et, nil
}
