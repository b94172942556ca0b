package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeCategories is the closed set of accepted category values.
// Mirrors the CHECK constraint on event_types.category.
var EventTypeCategories = []string{
	"accommodation", "transportation", "activity", "food", "shopping",
	"entertainment", "health", "business", "education", "other",
}

// ValidCategory reports whether c is one of EventTypeCategories.
func ValidCategory(c string) bool {
	for _, allowed := range EventTypeCategories {
		if c == allowed {
			return true
		}
	}
	return false
}

// EventType represents a category/label attachable to events, independent of
// any travel. Color is a display hex code (#RRGGBB); Icon is an optional
// short string (typically an emoji).
//
// Events keep referencing a soft-deleted type: type deletion does not cascade
// to events, joined reads simply stop surfacing the type's metadata.
type EventType struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Color     string
	Icon      string
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventTypePatch carries a partial update. Nil fields are left unchanged.
type EventTypePatch struct {
	Name     *string
	Category *string
	Color    *string
	Icon     *string
}

// IsZero reports whether the patch contains no fields at all.
func (p EventTypePatch) IsZero() bool {
	return p.Name == nil && p.Category == nil && p.Color == nil && p.Icon == nil
}
