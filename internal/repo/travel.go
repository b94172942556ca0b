// Package repo contains all database access logic for the Travel Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
//
// Soft-delete and restore are single UPDATE statements guarded by the current
// flag value, so the flag and its timestamp are never observable in an
// inconsistent combination. Mutation stamps use clock_timestamp(), which
// keeps advancing inside a transaction where now() stays frozen, so
// updated_at strictly increases across delete/restore even within one tx.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// deleteState reports whether a row exists in table and whether it is
// currently soft-deleted. table must be a compile-time constant — it is
// interpolated into the query, never user input.
func deleteState(ctx context.Context, db db, table string, id uuid.UUID) (exists, deleted bool, err error) {
	q := fmt.Sprintf(`SELECT is_deleted FROM %s WHERE id = @id`, table)

	err = db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, deleted, nil
}

// classifySoftDelete translates a guarded soft-delete UPDATE that matched no
// rows into the right sentinel: the row is either absent or already deleted.
func classifySoftDelete(ctx context.Context, db db, table string, id uuid.UUID) error {
	exists, deleted, err := deleteState(ctx, db, table, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if deleted {
		return domain.ErrAlreadyDeleted
	}
	return domain.ErrNotFound
}

// classifyRestore is the counterpart of classifySoftDelete for guarded
// restore UPDATEs: the row is either absent or not currently deleted.
func classifyRestore(ctx context.Context, db db, table string, id uuid.UUID) error {
	exists, deleted, err := deleteState(ctx, db, table, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if !deleted {
		return domain.ErrNotDeleted
	}
	return domain.ErrNotFound
}

// TravelRepo defines the persistence operations for Travels.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TravelRepo interface {
	// Create inserts a new travel and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, travel domain.Travel) (domain.Travel, error)

	// GetByID retrieves a single travel by its UUID primary key, regardless
	// of its soft-delete state. Returns domain.ErrNotFound if no travel with
	// that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Travel, error)

	// ListActive returns one page of non-deleted travels matching the filter,
	// ordered by created_at descending, plus the total match count.
	ListActive(ctx context.Context, f domain.TravelFilter, p domain.PaginationParams) ([]domain.Travel, int64, error)

	// ListDeleted returns one page of soft-deleted travels ordered by
	// deleted_at descending, plus the total count.
	ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int64, error)

	// Update overwrites the mutable fields of an existing travel and returns
	// the updated record. The soft-delete envelope is never touched.
	// Returns domain.ErrNotFound if no travel with that ID exists.
	Update(ctx context.Context, travel domain.Travel) (domain.Travel, error)

	// SoftDelete marks a travel deleted and returns the deletion timestamp.
	// Returns domain.ErrNotFound if unknown, domain.ErrAlreadyDeleted if the
	// travel is already soft-deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)

	// Restore clears a travel's soft-delete envelope and returns the record.
	// Returns domain.ErrNotFound if unknown, domain.ErrNotDeleted if the
	// travel is not currently soft-deleted.
	Restore(ctx context.Context, id uuid.UUID) (domain.Travel, error)
}

// pgTravelRepo is the Postgres implementation of TravelRepo.
type pgTravelRepo struct {
	db db
}

// NewTravelRepo constructs a TravelRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelRepo(db db) TravelRepo {
	return &pgTravelRepo{db: db}
}

const travelColumns = `id, title, description, start_date, end_date, destination,
	is_deleted, deleted_at, created_at, updated_at`

// Create inserts a new travel row and returns the full persisted record.
func (r *pgTravelRepo) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	const q = `
		INSERT INTO travels (title, description, start_date, end_date, destination)
		VALUES (@title, @description, @start_date, @end_date, @destination)
		RETURNING ` + travelColumns

	args := pgx.NamedArgs{
		"title":       travel.Title,
		"description": travel.Description,
		"start_date":  travel.StartDate,
		"end_date":    travel.EndDate,
		"destination": travel.Destination,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a travel by primary key, deleted or not.
func (r *pgTravelRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Travel, error) {
	const q = `SELECT ` + travelColumns + ` FROM travels WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListActive returns one page of active travels, newest-created first.
func (r *pgTravelRepo) ListActive(ctx context.Context, f domain.TravelFilter, p domain.PaginationParams) ([]domain.Travel, int64, error) {
	const where = `
		WHERE is_deleted = FALSE
		  AND (@title = '' OR title ILIKE '%' || @title || '%')
		  AND (@destination = '' OR destination ILIKE '%' || @destination || '%')
		  AND (@start_date_from::date IS NULL OR start_date >= @start_date_from)
		  AND (@start_date_to::date IS NULL OR start_date <= @start_date_to)
		  AND (@end_date_from::date IS NULL OR end_date >= @end_date_from)
		  AND (@end_date_to::date IS NULL OR end_date <= @end_date_to)`

	args := pgx.NamedArgs{
		"title":           f.Title,
		"destination":     f.Destination,
		"start_date_from": f.StartDateFrom,
		"start_date_to":   f.StartDateTo,
		"end_date_from":   f.EndDateFrom,
		"end_date_to":     f.EndDateTo,
		"limit":           p.Limit,
		"offset":          p.Offset(),
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM travels`+where, args).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.ListActive: count: %w", err)
	}

	q := `SELECT ` + travelColumns + ` FROM travels` + where + `
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	travels, err := r.queryTravels(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.ListActive: %w", err)
	}
	return travels, total, nil
}

// ListDeleted returns one page of soft-deleted travels, most recently deleted first.
func (r *pgTravelRepo) ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int64, error) {
	args := pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM travels WHERE is_deleted = TRUE`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.ListDeleted: count: %w", err)
	}

	q := `SELECT ` + travelColumns + ` FROM travels
		WHERE is_deleted = TRUE
		ORDER BY deleted_at DESC
		LIMIT @limit OFFSET @offset`

	travels, err := r.queryTravels(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.ListDeleted: %w", err)
	}
	return travels, total, nil
}

// Update overwrites the mutable fields of a travel and returns the updated record.
func (r *pgTravelRepo) Update(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	const q = `
		UPDATE travels
		SET title       = @title,
		    description = @description,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    destination = @destination,
		    updated_at  = clock_timestamp()
		WHERE id = @id
		RETURNING ` + travelColumns

	args := pgx.NamedArgs{
		"id":          travel.ID,
		"title":       travel.Title,
		"description": travel.Description,
		"start_date":  travel.StartDate,
		"end_date":    travel.EndDate,
		"destination": travel.Destination,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Update: %w", err)
	}
	return result, nil
}

// SoftDelete flips the envelope in a single guarded UPDATE.
func (r *pgTravelRepo) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	const q = `
		UPDATE travels
		SET is_deleted = TRUE, deleted_at = clock_timestamp(), updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = FALSE
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = classifySoftDelete(ctx, r.db, "travels", id)
		}
		return time.Time{}, fmt.Errorf("repo.TravelRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears the envelope in a single guarded UPDATE.
func (r *pgTravelRepo) Restore(ctx context.Context, id uuid.UUID) (domain.Travel, error) {
	const q = `
		UPDATE travels
		SET is_deleted = FALSE, deleted_at = NULL, updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = TRUE
		RETURNING ` + travelColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTravel(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = classifyRestore(ctx, r.db, "travels", id)
		}
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Restore: %w", err)
	}
	return result, nil
}

// queryTravels runs a multi-row travel query and scans all results.
func (r *pgTravelRepo) queryTravels(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Travel, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	travels := []domain.Travel{}
	for rows.Next() {
		t, err := scanTravel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		travels = append(travels, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return travels, nil
}

// scanTravel maps a single database row into a domain.Travel.
// It handles the UUID, date, and nullable deleted_at conversions.
func scanTravel(s scanner) (domain.Travel, error) {
	var (
		t         domain.Travel
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		deletedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &t.Title, &t.Description, &startDate, &endDate, &t.Destination,
		&t.IsDeleted, &deletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Travel{}, domain.ErrNotFound
		}
		return domain.Travel{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	if deletedAt.Valid {
		da := deletedAt.Time
		t.DeletedAt = &da
	}

	return t, nil
}
