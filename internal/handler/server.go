// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (travel.go, event.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routes assembles the full chi router.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// TravelServicer defines the business operations the travel handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TravelServicer interface {
	Create(ctx context.Context, travel domain.Travel) (domain.Travel, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Travel, int64, error)
	ListActive(ctx context.Context, f domain.TravelFilter, p domain.PaginationParams) ([]domain.Travel, int64, error)
	ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TravelPatch) (domain.Travel, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)
	Restore(ctx context.Context, id uuid.UUID) (domain.Travel, error)
	GetComprehensive(ctx context.Context, id uuid.UUID) (domain.TravelDetail, error)
}

// EventTypeServicer defines the business operations the event-type handlers depend on.
type EventTypeServicer interface {
	Create(ctx context.Context, et domain.EventType) (domain.EventType, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.EventType, error)
	ListActive(ctx context.Context, category string, p domain.PaginationParams) ([]domain.EventType, int64, error)
	ListDeleted(ctx context.Context, p domain.PaginationParams) ([]domain.EventType, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EventTypePatch) (domain.EventType, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)
	Restore(ctx context.Context, id uuid.UUID) (domain.EventType, error)
}

// EventServicer defines the business operations the event handlers depend on.
type EventServicer interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	ListActiveByTravel(ctx context.Context, travelID uuid.UUID, f domain.EventFilter, p domain.PaginationParams) ([]domain.Event, int64, error)
	ListDeletedByTravel(ctx context.Context, travelID uuid.UUID, p domain.PaginationParams) ([]domain.Event, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)
	Restore(ctx context.Context, id uuid.UUID) (domain.Event, error)
}

// AttachmentServicer defines the business operations the attachment handlers depend on.
type AttachmentServicer interface {
	Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error)
	ListActiveByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error)
	ListDeletedByEvent(ctx context.Context, eventID uuid.UUID, p domain.PaginationParams) ([]domain.Attachment, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.AttachmentPatch) (domain.Attachment, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (time.Time, error)
	Restore(ctx context.Context, id uuid.UUID) (domain.Attachment, error)
}

// Pinger reports storage reachability for the DB health endpoint.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	travels     TravelServicer
	types       EventTypeServicer
	events      EventServicer
	attachments AttachmentServicer
	db          Pinger // nil in unit tests
	openapi     []byte // raw OpenAPI document served at /openapi.yaml
}

// NewServer constructs the Server with all its dependencies.
func NewServer(travels TravelServicer, types EventTypeServicer, events EventServicer, attachments AttachmentServicer, db Pinger, openapi []byte) *Server {
	return &Server{
		travels:     travels,
		types:       types,
		events:      events,
		attachments: attachments,
		db:          db,
		openapi:     openapi,
	}
}

// Routes assembles the chi router for the full API surface.
// Mount it at the server root; business routes live under /api.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/health/db", s.healthDB)
	r.Get("/openapi.yaml", s.openAPIDocument)

	r.Route("/api", func(r chi.Router) {
		r.Route("/travels", func(r chi.Router) {
			r.Get("/", s.listTravels)
			r.Post("/", s.createTravel)
			r.Get("/deleted", s.listDeletedTravels)
			r.Route("/{travelID}", func(r chi.Router) {
				r.Get("/", s.getTravel)
				r.Put("/", s.updateTravel)
				r.Delete("/", s.deleteTravel)
				r.Post("/restore", s.restoreTravel)
				r.Get("/comprehensive", s.getComprehensiveTravel)
				r.Get("/events", s.listTravelEvents)
				r.Post("/events", s.createTravelEvent)
				r.Get("/events/deleted", s.listDeletedTravelEvents)
			})
		})

		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/", s.getEvent)
			r.Put("/", s.updateEvent)
			r.Delete("/", s.deleteEvent)
			r.Post("/restore", s.restoreEvent)
			r.Get("/attachments", s.listEventAttachments)
			r.Post("/attachments", s.createEventAttachment)
			r.Get("/attachments/deleted", s.listDeletedEventAttachments)
		})

		r.Route("/attachments/{attachmentID}", func(r chi.Router) {
			r.Get("/", s.getAttachment)
			r.Put("/", s.updateAttachment)
			r.Delete("/", s.deleteAttachment)
			r.Post("/restore", s.restoreAttachment)
		})

		r.Route("/event-types", func(r chi.Router) {
			r.Get("/", s.listEventTypes)
			r.Post("/", s.createEventType)
			r.Get("/deleted", s.listDeletedEventTypes)
			r.Route("/{eventTypeID}", func(r chi.Router) {
				r.Get("/", s.getEventType)
				r.Put("/", s.updateEventType)
				r.Delete("/", s.deleteEventType)
				r.Post("/restore", s.restoreEventType)
			})
		})
	})

	return r
}
