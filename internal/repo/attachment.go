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

// AttachmentRepo defines the persistence operations for Attachments.
// Only file metadata lives here; the bytes belong to the file-storage layer.
type AttachmentRepo interface {
	// Create inserts a new attachment and returns the persisted record.
	Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error)

	// GetByID retrieves a single attachment by its UUID, regardless of its
	// soft-delete state. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error)

	// ListActiveByEvent returns one page of non-deleted attachments for an
	// event ordered by created_at descending, plus the total count.
	ListActiveByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error)

	// ListDeletedByEvent returns one page of soft-deleted attachments for an
	// event ordered by deleted_at descending, plus the total count.
	ListDeletedByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error)

	// Update overwrites the mutable fields of an attachment.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, a domain.Attachment) (domain.Attachment, error)

	// SoftDelete marks an attachment deleted and returns the deletion timestamp.
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)

	// Restore clears an attachment's soft-delete envelope.
	Restore(ctx context.Context, id uuid.UUID) (domain.Attachment, error)
}

// pgAttachmentRepo is the Postgres implementation of AttachmentRepo.
type pgAttachmentRepo struct {
	db db
}

// NewAttachmentRepo constructs an AttachmentRepo backed by the provided db connection.
func NewAttachmentRepo(db db) AttachmentRepo {
	return &pgAttachmentRepo{db: db}
}

const attachmentColumns = `id, event_id, file_name, file_path, file_type, file_size,
	is_deleted, deleted_at, created_at, updated_at`

func (r *pgAttachmentRepo) Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	const q = `
		INSERT INTO attachments (event_id, file_name, file_path, file_type, file_size)
		VALUES (@event_id, @file_name, @file_path, @file_type, @file_size)
		RETURNING ` + attachmentColumns

	args := pgx.NamedArgs{
		"event_id":  a.EventID,
		"file_name": a.FileName,
		"file_path": a.FilePath,
		"file_type": a.FileType,
		"file_size": a.FileSize,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAttachment(row)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("repo.AttachmentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAttachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAttachment(row)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("repo.AttachmentRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgAttachmentRepo) ListActiveByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error) {
	const where = `
		WHERE event_id = @event_id
		  AND is_deleted = FALSE`

	args := pgx.NamedArgs{
		"event_id": eventID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM attachments`+where, args).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AttachmentRepo.ListActiveByEvent: count: %w", err)
	}

	q := `SELECT ` + attachmentColumns + ` FROM attachments` + where + `
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	attachments, err := r.queryAttachments(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AttachmentRepo.ListActiveByEvent: %w", err)
	}
	return attachments, total, nil
}

func (r *pgAttachmentRepo) ListDeletedByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error) {
	const where = `
		WHERE event_id = @event_id
		  AND is_deleted = TRUE`

	args := pgx.NamedArgs{
		"event_id": eventID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM attachments`+where, args).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AttachmentRepo.ListDeletedByEvent: count: %w", err)
	}

	q := `SELECT ` + attachmentColumns + ` FROM attachments` + where + `
		ORDER BY deleted_at DESC
		LIMIT @limit OFFSET @offset`

	attachments, err := r.queryAttachments(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AttachmentRepo.ListDeletedByEvent: %w", err)
	}
	return attachments, total, nil
}

func (r *pgAttachmentRepo) Update(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	const q = `
		UPDATE attachments
		SET file_name  = @file_name,
		    file_path  = @file_path,
		    file_type  = @file_type,
		    file_size  = @file_size,
		    updated_at = clock_timestamp()
		WHERE id = @id
		RETURNING ` + attachmentColumns

	args := pgx.NamedArgs{
		"id":        a.ID,
		"file_name": a.FileName,
		"file_path": a.FilePath,
		"file_type": a.FileType,
		"file_size": a.FileSize,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAttachment(row)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("repo.AttachmentRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgAttachmentRepo) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	const q = `
		UPDATE attachments
		SET is_deleted = TRUE, deleted_at = clock_timestamp(), updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = FALSE
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = classifySoftDelete(ctx, r.db, "attachments", id)
		}
		return time.Time{}, fmt.Errorf("repo.AttachmentRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

func (r *pgAttachmentRepo) Restore(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	const q = `
		UPDATE attachments
		SET is_deleted = FALSE, deleted_at = NULL, updated_at = clock_timestamp()
		WHERE id = @id AND is_deleted = TRUE
		RETURNING ` + attachmentColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAttachment(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = classifyRestore(ctx, r.db, "attachments", id)
		}
		return domain.Attachment{}, fmt.Errorf("repo.AttachmentRepo.Restore: %w", err)
	}
	return result, nil
}

func (r *pgAttachmentRepo) queryAttachments(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Attachment, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := []domain.Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return attachments, nil
}

// scanAttachment maps a single database row into a domain.Attachment.
func scanAttachment(s scanner) (domain.Attachment, error) {
	var (
		a         domain.Attachment
		id        pgtype.UUID
		eventID   pgtype.UUID
		deletedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &eventID, &a.FileName, &a.FilePath, &a.FileType, &a.FileSize,
		&a.IsDeleted, &deletedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attachment{}, domain.ErrNotFound
		}
		return domain.Attachment{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.EventID = uuid.UUID(eventID.Bytes)
	if deletedAt.Valid {
		da := deletedAt.Time
		a.DeletedAt = &da
	}

	return a, nil
}
