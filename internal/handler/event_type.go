package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// EventType is the wire representation of an event type.
type EventType struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Color     string     `json:"color"`
	Icon      *string    `json:"icon,omitempty"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateEventTypeRequest is the POST /event-types body.
type CreateEventTypeRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
}

// UpdateEventTypeRequest is the PUT /event-types/{id} body.
type UpdateEventTypeRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
}

// EventTypeResponse wraps a single event type with the success envelope.
type EventTypeResponse struct {
	Success bool      `json:"success"`
	Data    EventType `json:"data"`
	Message string    `json:"message,omitempty"`
}

// EventTypeListResponse is the paginated event-type listing body.
type EventTypeListResponse struct {
	Success    bool        `json:"success"`
	Data       []EventType `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// listEventTypes handles GET /api/event-types.
// Supports ?page=, ?limit=, and an exact-match ?category= filter; an unknown
// category is rejected as a validation error.
func (s *Server) listEventTypes(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)
	category := r.URL.Query().Get("category")

	types, total, err := s.types.ListActive(r.Context(), category, p)
	if err != nil {
		writeDomainError(w, r, err, "event types not found")
		return
	}

	data := make([]EventType, len(types))
	for i, et := range types {
		data[i] = eventTypeToResponse(et)
	}
	writeJSON(w, http.StatusOK, EventTypeListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// listDeletedEventTypes handles GET /api/event-types/deleted.
func (s *Server) listDeletedEventTypes(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)

	types, total, err := s.types.ListDeleted(r.Context(), p)
	if err != nil {
		writeDomainError(w, r, err, "event types not found")
		return
	}

	data := make([]EventType, len(types))
	for i, et := range types {
		data[i] = eventTypeToResponse(et)
	}
	writeJSON(w, http.StatusOK, EventTypeListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// createEventType handles POST /api/event-types.
func (s *Server) createEventType(w http.ResponseWriter, r *http.Request) {
	var body CreateEventTypeRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	et := domain.EventType{Name: body.Name, Category: body.Category}
	if body.Color != nil {
		et.Color = *body.Color
	}
	if body.Icon != nil {
		et.Icon = *body.Icon
	}

	created, err := s.types.Create(r.Context(), et)
	if err != nil {
		writeDomainError(w, r, err, "event type not found")
		return
	}

	writeJSON(w, http.StatusCreated, EventTypeResponse{
		Success: true,
		Data:    eventTypeToResponse(created),
		Message: "Event type created successfully",
	})
}

// getEventType handles GET /api/event-types/{eventTypeID}.
func (s *Server) getEventType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventTypeID")
	if !ok {
		return
	}

	et, err := s.types.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event type not found")
		return
	}

	writeJSON(w, http.StatusOK, EventTypeResponse{Success: true, Data: eventTypeToResponse(et)})
}

// updateEventType handles PUT /api/event-types/{eventTypeID}.
func (s *Server) updateEventType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventTypeID")
	if !ok {
		return
	}

	var body UpdateEventTypeRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	patch := domain.EventTypePatch{
		Name:     body.Name,
		Category: body.Category,
		Color:    body.Color,
		Icon:     body.Icon,
	}

	updated, err := s.types.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err, "event type not found")
		return
	}

	writeJSON(w, http.StatusOK, EventTypeResponse{
		Success: true,
		Data:    eventTypeToResponse(updated),
		Message: "Event type updated successfully",
	})
}

// deleteEventType handles DELETE /api/event-types/{eventTypeID} (soft delete).
// Events referencing the type are untouched; joined reads stop surfacing
// the type metadata until the type is restored.
func (s *Server) deleteEventType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventTypeID")
	if !ok {
		return
	}

	deletedAt, err := s.types.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event type not found")
		return
	}

	writeJSON(w, http.StatusOK, SoftDeleteResponse{
		Success:   true,
		Message:   "Event type soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// restoreEventType handles POST /api/event-types/{eventTypeID}/restore.
func (s *Server) restoreEventType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventTypeID")
	if !ok {
		return
	}

	restored, err := s.types.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event type not found")
		return
	}

	writeJSON(w, http.StatusOK, EventTypeResponse{
		Success: true,
		Data:    eventTypeToResponse(restored),
		Message: "Event type restored successfully",
	})
}

// eventTypeToResponse converts a domain.EventType into its wire shape.
func eventTypeToResponse(et domain.EventType) EventType {
	resp := EventType{
		ID:        et.ID,
		Name:      et.Name,
		Category:  et.Category,
		Color:     et.Color,
		IsDeleted: et.IsDeleted,
		DeletedAt: et.DeletedAt,
		CreatedAt: et.CreatedAt,
		UpdatedAt: et.UpdatedAt,
	}
	if et.Icon != "" {
		resp.Icon = &et.Icon
	}
	return resp
}
