// Package domain contains the core data types for the Travel Planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Travel represents a single trip/itinerary.
// A travel is the top-level aggregate; events belong to a travel.
//
// Every entity in this application carries the same soft-delete envelope:
// IsDeleted and DeletedAt move together (DeletedAt is non-nil exactly when
// IsDeleted is true), and UpdatedAt advances on every mutation including
// soft delete and restore. Rows are never physically removed by the API.
type Travel struct {
	ID          uuid.UUID
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Destination string
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TravelPatch carries a partial update. Nil fields are left unchanged.
type TravelPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Destination *string
}

// IsZero reports whether the patch contains no fields at all.
func (p TravelPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Destination == nil
}

// TravelFilter narrows travel listings. Title and Destination are
// case-insensitive partial matches; empty strings mean "no filter".
// The date bounds are inclusive and compared against start_date/end_date
// at date precision; nil means "no bound".
type TravelFilter struct {
	Title         string
	Destination   string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	EndDateFrom   *time.Time
	EndDateTo     *time.Time
}

// TravelDetail is the comprehensive read: a travel together with all of its
// active events (ordered by start datetime ascending, type metadata joined)
// and the count of those events.
type TravelDetail struct {
	Travel
	Events      []Event
	EventsCount int
}
