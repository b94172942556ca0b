package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment represents a file associated with an event. Only metadata is
// stored here; the bytes live with the file-storage collaborator and are
// referenced by FilePath. FileSize is in bytes, zero when unknown.
type Attachment struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	FileName  string
	FilePath  string
	FileType  string
	FileSize  int64
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AttachmentPatch carries a partial update. Nil fields are left unchanged.
type AttachmentPatch struct {
	FileName *string
	FilePath *string
	FileType *string
	FileSize *int64
}

// IsZero reports whether the patch contains no fields at all.
func (p AttachmentPatch) IsZero() bool {
	return p.FileName == nil && p.FilePath == nil && p.FileType == nil && p.FileSize == nil
}
