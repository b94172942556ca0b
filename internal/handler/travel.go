package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// Travel is the wire representation of a travel. Dates are date-only
// ("2006-01-02"); the soft-delete envelope is always included so clients can
// render trash views and undo confirmations from the same shape.
type Travel struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Destination *string            `json:"destination,omitempty"`
	IsDeleted   bool               `json:"is_deleted"`
	DeletedAt   *time.Time         `json:"deleted_at,omitempty"`
	EventsCount *int64             `json:"events_count,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateTravelRequest is the POST /travels body.
type CreateTravelRequest struct {
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	Destination *string             `json:"destination"`
}

// UpdateTravelRequest is the PUT /travels/{id} body. All fields are optional;
// absent fields are left unchanged.
type UpdateTravelRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	Destination *string             `json:"destination"`
}

// TravelResponse wraps a single travel with the success envelope.
type TravelResponse struct {
	Success bool   `json:"success"`
	Data    Travel `json:"data"`
	Message string `json:"message,omitempty"`
}

// TravelListResponse is the paginated travel listing body.
type TravelListResponse struct {
	Success    bool       `json:"success"`
	Data       []Travel   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SoftDeleteResponse is shared by every DELETE endpoint.
type SoftDeleteResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	DeletedAt time.Time `json:"deletedAt"`
}

// ComprehensiveTravel is a travel with its active events embedded.
type ComprehensiveTravel struct {
	Travel
	Events []Event `json:"events"`
}

// ComprehensiveTravelResponse wraps the comprehensive read.
type ComprehensiveTravelResponse struct {
	Success bool                `json:"success"`
	Data    ComprehensiveTravel `json:"data"`
}

// listTravels handles GET /api/travels.
// Supports ?page=, ?limit=, partial-match ?title= / ?destination= filters,
// and inclusive YYYY-MM-DD date windows on start_date and end_date.
func (s *Server) listTravels(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)
	f := domain.TravelFilter{
		Title:       r.URL.Query().Get("title"),
		Destination: r.URL.Query().Get("destination"),
	}
	var ok bool
	if f.StartDateFrom, ok = queryDate(w, r, "start_date_from"); !ok {
		return
	}
	if f.StartDateTo, ok = queryDate(w, r, "start_date_to"); !ok {
		return
	}
	if f.EndDateFrom, ok = queryDate(w, r, "end_date_from"); !ok {
		return
	}
	if f.EndDateTo, ok = queryDate(w, r, "end_date_to"); !ok {
		return
	}

	travels, total, err := s.travels.ListActive(r.Context(), f, p)
	if err != nil {
		writeDomainError(w, r, err, "travels not found")
		return
	}

	data := make([]Travel, len(travels))
	for i, t := range travels {
		data[i] = travelToResponse(t)
	}
	writeJSON(w, http.StatusOK, TravelListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// listDeletedTravels handles GET /api/travels/deleted.
func (s *Server) listDeletedTravels(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)

	travels, total, err := s.travels.ListDeleted(r.Context(), p)
	if err != nil {
		writeDomainError(w, r, err, "travels not found")
		return
	}

	data := make([]Travel, len(travels))
	for i, t := range travels {
		data[i] = travelToResponse(t)
	}
	writeJSON(w, http.StatusOK, TravelListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// createTravel handles POST /api/travels.
func (s *Server) createTravel(w http.ResponseWriter, r *http.Request) {
	var body CreateTravelRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.travels.Create(r.Context(), requestToTravel(body))
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	writeJSON(w, http.StatusCreated, TravelResponse{
		Success: true,
		Data:    travelToResponse(created),
		Message: "Travel created successfully",
	})
}

// getTravel handles GET /api/travels/{travelID}.
// Deleted travels are returned too — the envelope fields tell them apart.
func (s *Server) getTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}

	travel, eventsCount, err := s.travels.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	data := travelToResponse(travel)
	data.EventsCount = &eventsCount
	writeJSON(w, http.StatusOK, TravelResponse{Success: true, Data: data})
}

// updateTravel handles PUT /api/travels/{travelID}.
func (s *Server) updateTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}

	var body UpdateTravelRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	updated, err := s.travels.Update(r.Context(), id, requestToTravelPatch(body))
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	writeJSON(w, http.StatusOK, TravelResponse{
		Success: true,
		Data:    travelToResponse(updated),
		Message: "Travel updated successfully",
	})
}

// deleteTravel handles DELETE /api/travels/{travelID} (soft delete).
func (s *Server) deleteTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}

	deletedAt, err := s.travels.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	writeJSON(w, http.StatusOK, SoftDeleteResponse{
		Success:   true,
		Message:   "Travel soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// restoreTravel handles POST /api/travels/{travelID}/restore.
func (s *Server) restoreTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}

	restored, err := s.travels.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	writeJSON(w, http.StatusOK, TravelResponse{
		Success: true,
		Data:    travelToResponse(restored),
		Message: "Travel restored successfully",
	})
}

// getComprehensiveTravel handles GET /api/travels/{travelID}/comprehensive.
// Returns 404 for an unknown travel and 410 for a soft-deleted one.
func (s *Server) getComprehensiveTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "travelID")
	if !ok {
		return
	}

	detail, err := s.travels.GetComprehensive(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel not found")
		return
	}

	events := make([]Event, len(detail.Events))
	for i, e := range detail.Events {
		events[i] = eventToResponse(e)
	}
	data := ComprehensiveTravel{Travel: travelToResponse(detail.Travel), Events: events}
	count := int64(detail.EventsCount)
	data.EventsCount = &count

	writeJSON(w, http.StatusOK, ComprehensiveTravelResponse{Success: true, Data: data})
}

// --- mapping helpers --------------------------------------------------------

// requestToTravel converts a CreateTravelRequest body into a domain.Travel.
// Absent dates stay zero and are rejected by service validation.
func requestToTravel(body CreateTravelRequest) domain.Travel {
	t := domain.Travel{Title: body.Title}
	if body.Description != nil {
		t.Description = *body.Description
	}
	if body.StartDate != nil {
		t.StartDate = body.StartDate.Time
	}
	if body.EndDate != nil {
		t.EndDate = body.EndDate.Time
	}
	if body.Destination != nil {
		t.Destination = *body.Destination
	}
	return t
}

// requestToTravelPatch converts an UpdateTravelRequest into a domain patch.
func requestToTravelPatch(body UpdateTravelRequest) domain.TravelPatch {
	p := domain.TravelPatch{
		Title:       body.Title,
		Description: body.Description,
		Destination: body.Destination,
	}
	if body.StartDate != nil {
		p.StartDate = &body.StartDate.Time
	}
	if body.EndDate != nil {
		p.EndDate = &body.EndDate.Time
	}
	return p
}

// travelToResponse converts a domain.Travel into its wire shape.
func travelToResponse(t domain.Travel) Travel {
	resp := Travel{
		ID:        t.ID,
		Title:     t.Title,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.EndDate},
		IsDeleted: t.IsDeleted,
		DeletedAt: t.DeletedAt,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Description != "" {
		resp.Description = &t.Description
	}
	if t.Destination != "" {
		resp.Destination = &t.Destination
	}
	return resp
}
