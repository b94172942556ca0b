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

// AttachmentService implements business logic for Attachment metadata.
// The file bytes themselves belong to the file-storage collaborator; this
// service only manages the rows referencing them. Orphaned files from
// soft-deleted attachments are reconciled out of band.
type AttachmentService struct {
	events      repo.EventRepo
	attachments repo.AttachmentRepo
}

// NewAttachmentService constructs an AttachmentService backed by the provided repos.
func NewAttachmentService(events repo.EventRepo, attachments repo.AttachmentRepo) *AttachmentService {
	return &AttachmentService{events: events, attachments: attachments}
}

// Create validates the attachment, verifies the parent event exists
// (regardless of its deleted state), then persists.
func (s *AttachmentService) Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	if err := validateAttachment(a); err != nil {
		return domain.Attachment{}, err
	}
	if _, err := s.events.GetByID(ctx, a.EventID); err != nil {
		return domain.Attachment{}, fmt.Errorf("service.AttachmentService.Create: event: %w", err)
	}
	result, err := s.attachments.Create(ctx, a)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("service.AttachmentService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single attachment by ID, deleted or not.
func (s *AttachmentService) GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	result, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("service.AttachmentService.GetByID: %w", err)
	}
	return result, nil
}

// ListActiveByEvent returns one page of non-deleted attachments for an event.
// The event must exist; its own deleted state is irrelevant.
func (s *AttachmentService) ListActiveByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, 0, fmt.Errorf("service.AttachmentService.ListActiveByEvent: event: %w", err)
	}
	attachments, total, err := s.attachments.ListActiveByEvent(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.AttachmentService.ListActiveByEvent: %w", err)
	}
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return attachments, total, nil
}

// ListDeletedByEvent returns one page of soft-deleted attachments for an event.
func (s *AttachmentService) ListDeletedByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, 0, fmt.Errorf("service.AttachmentService.ListDeletedByEvent: event: %w", err)
	}
	attachments, total, err := s.attachments.ListDeletedByEvent(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.AttachmentService.ListDeletedByEvent: %w", err)
	}
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return attachments, total, nil
}

// Update applies a partial update to an existing attachment's metadata.
func (s *AttachmentService) Update(ctx context.Context, id uuid.UUID, patch domain.AttachmentPatch) (domain.Attachment, error) {
	if patch.IsZero() {
		return domain.Attachment{}, fmt.Errorf("%w: no fields provided for update", domain.ErrValidation)
	}

	a, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("service.AttachmentService.Update: %w", err)
	}

	if patch.FileName != nil {
		a.FileName = *patch.FileName
	}
	if patch.FilePath != nil {
		a.FilePath = *patch.FilePath
	}
	if patch.FileType != nil {
		a.FileType = *patch.FileType
	}
	if patch.FileSize != nil {
		a.FileSize = *patch.FileSize
	}

	if err := validateAttachment(a); err != nil {
		return domain.Attachment{}, err
	}

	result, err := s.attachments.Update(ctx, a)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("service.AttachmentService.Update: %w", err)
	}
	return result, nil
}

// SoftDelete marks an attachment deleted and returns the deletion timestamp.
// The referenced file is left in place for a possible restore.
func (s *AttachmentService) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	deletedAt, err := s.attachments.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.AttachmentService.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears an attachment's soft-delete envelope.
func (s *AttachmentService) Restore(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	result, err := s.attachments.Restore(ctx, id)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("service.AttachmentService.Restore: %w", err)
	}
	return result, nil
}

// validateAttachment enforces business rules common to both Create and Update.
func validateAttachment(a domain.Attachment) error {
	if strings.TrimSpace(a.FileName) == "" {
		return fmt.Errorf("%w: file_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(a.FilePath) == "" {
		return fmt.Errorf("%w: file_path is required", domain.ErrValidation)
	}
	if a.FileSize < 0 {
		return fmt.Errorf("%w: file_size must not be negative", domain.ErrValidation)
	}
	return nil
}
