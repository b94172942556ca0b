package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a scheduled, time-bounded activity within a travel.
// It belongs to one Travel and references one EventType.
//
// TypeName, TypeColor, and TypeIcon are read-only fields populated by joined
// reads (LEFT JOIN against active event types). They are nil when the
// referenced type row is missing or soft-deleted, and are never written back.
type Event struct {
	ID            uuid.UUID
	TravelID      uuid.UUID
	Title         string
	Description   string
	EventTypeID   uuid.UUID
	StartDatetime time.Time
	EndDatetime   time.Time
	Location      string
	IsDeleted     bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	TypeName  *string
	TypeColor *string
	TypeIcon  *string
}

// EventPatch carries a partial update. Nil fields are left unchanged.
type EventPatch struct {
	Title         *string
	Description   *string
	EventTypeID   *uuid.UUID
	StartDatetime *time.Time
	EndDatetime   *time.Time
	Location      *string
}

// IsZero reports whether the patch contains no fields at all.
func (p EventPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.EventTypeID == nil &&
		p.StartDatetime == nil && p.EndDatetime == nil && p.Location == nil
}

// EventFilter narrows event listings under a travel. Location is a
// case-insensitive partial match; the date bounds are inclusive and compared
// against start_datetime at date precision. Nil/empty means "no filter".
type EventFilter struct {
	EventTypeID   *uuid.UUID
	Location      string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
}
