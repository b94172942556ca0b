package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// Event is the wire representation of an event. The type_* fields are
// denormalized from the referenced event type and are null when that type is
// soft-deleted or missing.
type Event struct {
	ID            uuid.UUID  `json:"id"`
	TravelID      uuid.UUID  `json:"travel_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	EventTypeID   uuid.UUID  `json:"event_type_id"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   time.Time  `json:"end_datetime"`
	Location      *string    `json:"location,omitempty"`
	IsDeleted     bool       `json:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	TypeName  *string `json:"type_name"`
	TypeColor *string `json:"type_color"`
	TypeIcon  *string `json:"type_icon"`
}

// CreateEventRequest is the POST /travels/{id}/events body. The travel comes
// from the URL, never from the body.
type CreateEventRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	EventTypeID   uuid.UUID  `json:"event_type_id"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Location      *string    `json:"location"`
}

// UpdateEventRequest is the PUT /events/{id} body.
type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	EventTypeID   *uuid.UUID `json:"event_type_id"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Location      *string    `json:"location"`
}

// EventResponse wraps a single event with the success envelope.
type EventResponse struct {
	Success bool   `json:"success"`
	Data    Event  `json:"data"`
	Message string `json:"message,omitempty"`
}

// EventListResponse is the paginated event listing body.
type EventListResponse struct {
	Success    bool       `json:"success"`
	Data       []Event    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// listTravelEvents handles GET /api/travels/{travelID}/events.
// Active events ordered by start time; supports ?event_type_id=, partial-match
// ?location=, and an inclusive YYYY-MM-DD date window on start_datetime.
func (s *Server) listTravelEvents(w http.ResponseWriter, r *http.Request) {
	travelID, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}
	p := pagination(r)

	f := domain.EventFilter{Location: r.URL.Query().Get("location")}
	if raw := r.URL.Query().Get("event_type_id"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			requestError(w, "invalid event_type_id query parameter")
			return
		}
		f.EventTypeID = &typeID
	}
	if f.StartDateFrom, ok = queryDate(w, r, "start_date_from"); !ok {
		return
	}
	if f.StartDateTo, ok = queryDate(w, r, "start_date_to"); !ok {
		return
	}

	events, total, err := s.events.ListActiveByTravel(r.Context(), travelID, f, p)
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	data := make([]Event, len(events))
	for i, e := range events {
		data[i] = eventToResponse(e)
	}
	writeJSON(w, http.StatusOK, EventListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// listDeletedTravelEvents handles GET /api/travels/{travelID}/events/deleted.
func (s *Server) listDeletedTravelEvents(w http.ResponseWriter, r *http.Request) {
	travelID, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}
	p := pagination(r)

	events, total, err := s.events.ListDeletedByTravel(r.Context(), travelID, p)
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	data := make([]Event, len(events))
	for i, e := range events {
		data[i] = eventToResponse(e)
	}
	writeJSON(w, http.StatusOK, EventListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// createTravelEvent handles POST /api/travels/{travelID}/events.
func (s *Server) createTravelEvent(w http.ResponseWriter, r *http.Request) {
	travelID, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}

	var body CreateEventRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	event := domain.Event{
		TravelID:    travelID,
		Title:       body.Title,
		EventTypeID: body.EventTypeID,
	}
	if body.Description != nil {
		event.Description = *body.Description
	}
	if body.StartDatetime != nil {
		event.StartDatetime = *body.StartDatetime
	}
	if body.EndDatetime != nil {
		event.EndDatetime = *body.EndDatetime
	}
	if body.Location != nil {
		event.Location = *body.Location
	}

	created, err := s.events.Create(r.Context(), event)
	if err != nil {
		writeDomainError(w, r, err, eventRefNotFoundMsg(err, "travel not found"))
		return
	}

	writeJSON(w, http.StatusCreated, EventResponse{
		Success: true,
		Data:    eventToResponse(created),
		Message: "Event created successfully",
	})
}

// getEvent handles GET /api/events/{eventID}.
func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := s.events.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{Success: true, Data: eventToResponse(event)})
}

// updateEvent handles PUT /api/events/{eventID}.
func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	var body UpdateEventRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	patch := domain.EventPatch{
		Title:         body.Title,
		Description:   body.Description,
		EventTypeID:   body.EventTypeID,
		StartDatetime: body.StartDatetime,
		EndDatetime:   body.EndDatetime,
		Location:      body.Location,
	}

	updated, err := s.events.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err, eventRefNotFoundMsg(err, "event not found"))
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{
		Success: true,
		Data:    eventToResponse(updated),
		Message: "Event updated successfully",
	})
}

// deleteEvent handles DELETE /api/events/{eventID} (soft delete).
func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	deletedAt, err := s.events.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, SoftDeleteResponse{
		Success:   true,
		Message:   "Event soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// restoreEvent handles POST /api/events/{eventID}/restore.
func (s *Server) restoreEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	restored, err := s.events.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{
		Success: true,
		Data:    eventToResponse(restored),
		Message: "Event restored successfully",
	})
}

// eventRefNotFoundMsg picks the not-found message for event writes, where the
// missing row can be the event itself, its parent travel, or the referenced
// event type. The service tags which lookup failed in the wrapped error text.
func eventRefNotFoundMsg(err error, fallback string) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "event type: "):
		return "event type not found"
	case strings.Contains(msg, "travel: "):
		return "travel not found"
	}
	return fallback
}

// eventToResponse converts a domain.Event into its wire shape.
func eventToResponse(e domain.Event) Event {
	resp := Event{
		ID:            e.ID,
		TravelID:      e.TravelID,
		Title:         e.Title,
		EventTypeID:   e.EventTypeID,
		StartDatetime: e.StartDatetime,
		EndDatetime:   e.EndDatetime,
		IsDeleted:     e.IsDeleted,
		DeletedAt:     e.DeletedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		TypeName:      e.TypeName,
		TypeColor:     e.TypeColor,
		TypeIcon:      e.TypeIcon,
	}
	if e.Description != "" {
		resp.Description = &e.Description
	}
	if e.Location != "" {
		resp.Location = &e.Location
	}
	return resp
}
