package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmathis/travel-planner/backend/internal/domain"
	"github.com/pmathis/travel-planner/backend/internal/handler"
)

type mockEventServicer struct {
	create     func(ctx context.Context, event domain.Event) (domain.Event, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Event, error)
	listActive func(ctx context.Context, travelID uuid.UUID, f domain.EventFilter, p domain.PaginationParams) ([]domain.Event, int64, error)
	listDel    func(ctx context.Context, travelID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error)
	update     func(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error)
	softDelete func(ctx context.Context, id uuid.UUID) (time.Time, error)
	restore    func(ctx context.Context, id uuid.UUID) (domain.Event, error)
}

func (m *mockEventServicer) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	return m.create(ctx, event)
}
func (m *mockEventServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventServicer) ListActiveByTravel(ctx context.Context, travelID uuid.UUID, f domain.EventFilter, p domain.PaginationParams) ([]domain.Event, int64, error) {
	return m.listActive(ctx, travelID, f, p)
}
func (m *mockEventServicer) ListDeletedByTravel(ctx context.Context, travelID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error) {
	return m.listDel(ctx, travelID, p)
}
func (m *mockEventServicer) Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error) {
	return m.update(ctx, id, patch)
}
func (m *mockEventServicer) SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockEventServicer) Restore(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return m.restore(ctx, id)
}

var _ handler.EventServicer = (*mockEventServicer)(nil)

func newEventHandler(svc handler.EventServicer) http.Handler {
	return handler.NewServer(nil, nil, svc, nil, nil, nil).Routes()
}

func eventFixture() domain.Event {
	name := "Sightseeing"
	color := "#FF5733"
	return domain.Event{
		ID:            uuid.New(),
		TravelID:      uuid.New(),
		Title:         "Louvre Museum",
		Description:   "Morning visit",
		EventTypeID:   uuid.New(),
		StartDatetime: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC),
		Location:      "Rue de Rivoli, Paris",
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
		TypeName:      &name,
		TypeColor:     &color,
	}
}

func TestListTravelEvents(t *testing.T) {
	event := eventFixture()
	svc := &mockEventServicer{
		listActive: func(_ context.Context, travelID uuid.UUID, f domain.EventFilter, _ domain.PaginationParams) ([]domain.Event, int64, error) {
			assert.Equal(t, event.TravelID, travelID)
			assert.Nil(t, f.EventTypeID)
			return []domain.Event{event}, 1, nil
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/travels/"+event.TravelID.String()+"/events", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, "Louvre Museum", first["title"])
	assert.Equal(t, "Sightseeing", first["type_name"], "joined type metadata rides along")
}

func TestListTravelEvents_TypeFilter(t *testing.T) {
	typeID := uuid.New()
	svc := &mockEventServicer{
		listActive: func(_ context.Context, _ uuid.UUID, f domain.EventFilter, _ domain.PaginationParams) ([]domain.Event, int64, error) {
			require.NotNil(t, f.EventTypeID)
			assert.Equal(t, typeID, *f.EventTypeID)
			return []domain.Event{}, 0, nil
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/travels/"+uuid.NewString()+"/events?event_type_id="+typeID.String(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTravelEvents_BadTypeFilter(t *testing.T) {
	h := newEventHandler(&mockEventServicer{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/travels/"+uuid.NewString()+"/events?event_type_id=nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "invalid event_type_id query parameter", body["error"].(map[string]any)["message"])
}

func TestListTravelEvents_LocationAndDateFilters(t *testing.T) {
	svc := &mockEventServicer{
		listActive: func(_ context.Context, _ uuid.UUID, f domain.EventFilter, _ domain.PaginationParams) ([]domain.Event, int64, error) {
			assert.Equal(t, "paris", f.Location)
			require.NotNil(t, f.StartDateFrom)
			assert.Equal(t, "2024-06-15", f.StartDateFrom.Format("2006-01-02"))
			require.NotNil(t, f.StartDateTo)
			assert.Equal(t, "2024-06-16", f.StartDateTo.Format("2006-01-02"))
			return []domain.Event{}, 0, nil
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/travels/"+uuid.NewString()+"/events?location=paris&start_date_from=2024-06-15&start_date_to=2024-06-16", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTravelEvents_BadDateFilter(t *testing.T) {
	h := newEventHandler(&mockEventServicer{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/travels/"+uuid.NewString()+"/events?start_date_to=15-06-2024", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "invalid start_date_to: use YYYY-MM-DD", body["error"].(map[string]any)["message"])
}

func TestListTravelEvents_UnknownTravel(t *testing.T) {
	svc := &mockEventServicer{
		listActive: func(_ context.Context, _ uuid.UUID, _ domain.EventFilter, _ domain.PaginationParams) ([]domain.Event, int64, error) {
			return nil, 0, domain.ErrNotFound
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/travels/"+uuid.NewString()+"/events", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTravelEvent(t *testing.T) {
	travelID := uuid.New()
	typeID := uuid.New()
	svc := &mockEventServicer{
		create: func(_ context.Context, event domain.Event) (domain.Event, error) {
			assert.Equal(t, travelID, event.TravelID, "travel id comes from the URL")
			assert.Equal(t, typeID, event.EventTypeID)
			event.ID = uuid.New()
			return event, nil
		},
	}
	h := newEventHandler(svc)

	payload := map[string]any{
		"title":          "Louvre Museum",
		"event_type_id":  typeID.String(),
		"start_datetime": "2024-06-15T10:00:00Z",
		"end_datetime":   "2024-06-15T13:00:00Z",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/travels/"+travelID.String()+"/events", jsonBody(t, payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "Event created successfully", body["message"])
	assert.Equal(t, travelID.String(), body["data"].(map[string]any)["travel_id"])
}

func TestCreateTravelEvent_ValidationError(t *testing.T) {
	svc := &mockEventServicer{
		create: func(_ context.Context, _ domain.Event) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("%w: end_datetime must be after start_datetime", domain.ErrValidation)
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/travels/"+uuid.NewString()+"/events",
		jsonBody(t, map[string]any{"title": "Backwards"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "end_datetime must be after start_datetime", body["error"].(map[string]any)["message"])
}

func TestCreateTravelEvent_UnknownTravel(t *testing.T) {
	svc := &mockEventServicer{
		create: func(_ context.Context, _ domain.Event) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("service.EventService.Create: travel: %w", domain.ErrNotFound)
		},
	}
	h := newEventHandler(svc)

	payload := map[string]any{
		"title":          "Louvre Museum",
		"event_type_id":  uuid.NewString(),
		"start_datetime": "2024-06-15T10:00:00Z",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/travels/"+uuid.NewString()+"/events", jsonBody(t, payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "travel not found", body["error"].(map[string]any)["message"])
}

func TestCreateTravelEvent_UnknownEventType(t *testing.T) {
	svc := &mockEventServicer{
		create: func(_ context.Context, _ domain.Event) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("service.EventService.Create: event type: %w", domain.ErrNotFound)
		},
	}
	h := newEventHandler(svc)

	payload := map[string]any{
		"title":          "Louvre Museum",
		"event_type_id":  uuid.NewString(),
		"start_datetime": "2024-06-15T10:00:00Z",
	}
	req := httptest.NewRequest(http.MethodPost, "/api/travels/"+uuid.NewString()+"/events", jsonBody(t, payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "event type not found", body["error"].(map[string]any)["message"],
		"unknown event type must not be reported as a missing travel")
}

func TestUpdateEvent_UnknownEventType(t *testing.T) {
	svc := &mockEventServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.EventPatch) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("service.EventService.Update: event type: %w", domain.ErrNotFound)
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/events/"+uuid.NewString(),
		jsonBody(t, map[string]any{"event_type_id": uuid.NewString()}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "event type not found", body["error"].(map[string]any)["message"])
}

func TestGetEvent(t *testing.T) {
	event := eventFixture()
	svc := &mockEventServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Event, error) {
			assert.Equal(t, event.ID, id)
			return event, nil
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.String(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, event.ID.String(), data["id"])
	assert.Equal(t, "#FF5733", data["type_color"])
}

// An event whose type was soft-deleted still serializes, with null metadata.
func TestGetEvent_NullTypeMetadata(t *testing.T) {
	event := eventFixture()
	event.TypeName, event.TypeColor, event.TypeIcon = nil, nil, nil
	svc := &mockEventServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Event, error) { return event, nil },
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.String(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec)["data"].(map[string]any)
	name, present := data["type_name"]
	assert.True(t, present, "type_name key is always present")
	assert.Nil(t, name)
}

func TestUpdateEvent(t *testing.T) {
	event := eventFixture()
	svc := &mockEventServicer{
		update: func(_ context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error) {
			assert.Equal(t, event.ID, id)
			require.NotNil(t, patch.Location)
			assert.Equal(t, "Musée d'Orsay", *patch.Location)
			assert.Nil(t, patch.Title)
			event.Location = *patch.Location
			return event, nil
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/events/"+event.ID.String(),
		jsonBody(t, map[string]any{"location": "Musée d'Orsay"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "Event updated successfully", body["message"])
	assert.Equal(t, "Musée d'Orsay", body["data"].(map[string]any)["location"])
}

func TestDeleteEvent(t *testing.T) {
	now := time.Now().UTC()
	svc := &mockEventServicer{
		softDelete: func(_ context.Context, _ uuid.UUID) (time.Time, error) { return now, nil },
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/events/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "Event soft deleted successfully", body["message"])
	assert.NotEmpty(t, body["deletedAt"])
}

func TestRestoreEvent_NotDeleted(t *testing.T) {
	svc := &mockEventServicer{
		restore: func(_ context.Context, _ uuid.UUID) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("wrapped: %w", domain.ErrNotDeleted)
		},
	}
	h := newEventHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/events/"+uuid.NewString()+"/restore", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "not_deleted", body["error"].(map[string]any)["code"])
}
