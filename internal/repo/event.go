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

// EventRepo defines the persistence operations for Events.
// Every read joins the referenced event type (active rows only), so the
// returned events carry the type's display metadata; the join is a left join
// and the metadata fields are nil when the type is missing or soft-deleted.
type EventRepo interface {
	// Create inserts a new event and returns the persisted record with type
	// metadata joined.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetByID retrieves a single event by its UUID, regardless of its
	// soft-delete state. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error)

	// ListActiveByTravel returns one page of non-deleted events for a travel
	// ordered by start_datetime ascending, plus the total count. The parent
	// travel's own deleted state is not consulted.
	ListActiveByTravel(ctx context.Context, travelID uuid.UUID, f domain.EventFilter, p domain.PaginationParams) ([]domain.Event, int64, error)

	// ListDeletedByTravel returns one page of soft-deleted events for a
	// travel ordered by deleted_at descending, plus the total count.
	ListDeletedByTravel(ctx context.Context, travelID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error)

	// ListAllActiveByTravel returns every non-deleted event for a travel
	// ordered by start_datetime ascending, unpaged. Used by the
	// comprehensive travel read.
	ListAllActiveByTravel(ctx context.Context, travelID uuid.UUID) ([]domain.Event, error)

	// CountActiveByTravel returns the number of non-deleted events for a travel.
	CountActiveByTravel(ctx context.Context, travelID uuid.UUID) (int64, error)

	// Update overwrites the mutable fields of an event.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, event domain.Event) (domain.Event, error)

	// SoftDelete marks an event deleted and returns the deletion timestamp.
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)

	// Restore clears an event's soft-delete envelope.
	Restore(ctx context.Context, id uuid.UUID) (domain.Event, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

// eventSelect is the shared SELECT head for all event reads.
// The type join is restricted to active type rows so a soft-deleted type
// yields NULL metadata exactly like a missing one.
const eventSelect = `
	SELECT e.id, e.travel_id, e.title, e.description, e.event_type_id,
	       e.start_datetime, e.end_datetime, e.location,
	       e.is_deleted, e.deleted_at, e.created_at, e.updated_at,
	       et.name, et.color, et.icon
	FROM events e
	LEFT JOIN event_types et ON et.id = e.event_type_id AND et.is_deleted = FALSE`

func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (travel_id, title, description, event_type_id,
		                    start_datetime, end_datetime, location)
		VALUES (@travel_id, @title, @description, @event_type_id,
		        @start_datetime, @end_datetime, @location)
		RETURNING id`

	args := pgx.NamedArgs{
		"travel_id":      event.TravelID,
		"title":          event.Title,
		"description":    event.Description,
		"event_type_id":  event.EventTypeID,
		"start_datetime": event.StartDatetime,
		"end_datetime":   event.EndDatetime,
		"location":       event.Location,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}

	// Fetch back through the shared SELECT so the type metadata is joined.
	result, err := r.GetByID(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: fetch: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	const q = eventSelect + ` WHERE e.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) ListActiveByTravel(ctx context.Context, travelID uuid.UUID, f domain.EventFilter, p domain.PaginationParams) ([]domain.Event, int64, error) {
	const where = `
		WHERE e.travel_id = @travel_id
		  AND e.is_deleted = FALSE
		  AND (@event_type_id::uuid IS NULL OR e.event_type_id = @event_type_id)
		  AND (@location = '' OR e.location ILIKE '%' || @location || '%')
		  AND (@start_date_from::date IS NULL OR e.start_datetime::date >= @start_date_from)
		  AND (@start_date_to::date IS NULL OR e.start_datetime::date <= @start_date_to)`

	args := pgx.NamedArgs{
		"travel_id":       travelID,
		"event_type_id":   f.EventTypeID,
		"location":        f.Location,
		"start_date_from": f.StartDateFrom,
		"start_date_to":   f.StartDateTo,
		"limit":           p.Limit,
		"offset":          p.Offset(),
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM events e`+where, args).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListActiveByTravel: count: %w", err)
	}

	q := eventSelect + where + `
		ORDER BY e.start_datetime ASC
		LIMIT @limit OFFSET @offset`

	events, err := r.queryEvents(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListActiveByTravel: %w", err)
	}
	return events, total, nil
}

func (r *pgEventRepo) ListDeletedByTravel(ctx context.Context, travelID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error) {
	const where = `
		WHERE e.travel_id = @travel_id
		  AND e.is_deleted = TRUE`

	args := pgx.NamedArgs{
		"travel_id": travelID,
		"limit":     p.Limit,
		"offset":    p.Offset(),
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM events e`+where, args).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListDeletedByTravel: count: %w", err)
	}

	q := eventSelect + where + `
		ORDER BY e.deleted_at DESC
		LIMIT @limit OFFSET @offset`

	events, err := r.queryEvents(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListDeletedByTravel: %w", err)
	}
	return events, total, nil
}

func (r *pgEventRepo) ListAllActiveByTravel(ctx context.Context, travelID uuid.UUID) ([]domain.Event, error) {
	q := eventSelect + `
		WHERE e.travel_id = @travel_id
		  AND e.is_deleted = FALSE
		ORDER BY e.start_datetime ASC`

	events, err := r.queryEvents(ctx, q, pgx.NamedArgs{"travel_id": travelID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListAllActiveByTravel: %w", err)
	}
	return events, nil
}

func (r *pgEventRepo) CountActiveByTravel(ctx context.Context, travelID uuid.UUID) (int64, error) {
	const q = `
		SELECT count(*) FROM events
		WHERE travel_id = @travel_id AND is_deleted = FALSE`

	var total int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"travel_id": travelID}).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("repo.EventRepo.CountActiveByTravel: %w", err)
	}
	return total, nil
}

func (r *pgEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		UPDATE events
		SET title          = @title,
		    description    = @description,
		    event_type_id  = @event_type_id,
		    start_datetime = @start_datetime,
		    end_datetime   = @end_datetime,
		    location       = @location,
		    updated_at     = clock_timestamp()
		WHERE id = @id
		RETURNING id`

	args := pgx.NamedArgs{
		"id":             event.ID,
		"title":          event.Title,
		"description":    event.Description,
		"event_type_id":  event.EventTypeID,
		"start_datetime": event.StartDatetime,
		"end_datetime":   event.EndDatetime,
		"location":       event.Location,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrNotFound
		}
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}

	result, err := r.GetByID(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: fetch: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	const q = `
		UPDATE events
		SET is_deleted = TRUE, deleted_at = clock_timestamp(), updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = FALSE
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = classifySoftDelete(ctx, r.db, "events", id)
		}
		return time.Time{}, fmt.Errorf("repo.EventRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

func (r *pgEventRepo) Restore(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	const q = `
		UPDATE events
		SET is_deleted = FALSE, deleted_at = NULL, updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = TRUE
		RETURNING id`

	var restored pgtype.UUID
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&restored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = classifyRestore(ctx, r.db, "events", id)
		}
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Restore: %w", err)
	}

	result, err := r.GetByID(ctx, uuid.UUID(restored.Bytes))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Restore: fetch: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) queryEvents(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return events, nil
}

// scanEvent maps a single joined database row into a domain.Event.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e         domain.Event
		id        pgtype.UUID
		travelID  pgtype.UUID
		typeID    pgtype.UUID
		deletedAt pgtype.Timestamptz
		typeName  pgtype.Text
		typeColor pgtype.Text
		typeIcon  pgtype.Text
	)

	err := s.Scan(&id, &travelID, &e.Title, &e.Description, &typeID,
		&e.StartDatetime, &e.EndDatetime, &e.Location,
		&e.IsDeleted, &deletedAt, &e.CreatedAt, &e.UpdatedAt,
		&typeName, &typeColor, &typeIcon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TravelID = uuid.UUID(travelID.Bytes)
	e.EventTypeID = uuid.UUID(typeID.Bytes)
	if deletedAt.Valid {
		da := deletedAt.Time
		e.DeletedAt = &da
	}
	if typeName.Valid {
		e.TypeName = &typeName.String
	}
	if typeColor.Valid {
		e.TypeColor = &typeColor.String
	}
	if typeIcon.Valid {
		e.TypeIcon = &typeIcon.String
	}

	return e, nil
}
