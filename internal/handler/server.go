// Package handler implements the HTTP surface of the trip planner API.
// All handlers are methods on Server; methods are split into domain-specific
// files (chat.go, trip.go, health.go) but share the same struct so they can
// access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyago/trip-planner/backend/internal/domain"
	"github.com/voyago/trip-planner/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Add(ctx context.Context, input service.TripInput) (domain.Trip, error)
	Edit(ctx context.Context, tripUUID string, input service.TripInput) (domain.Trip, error)
	Cancel(ctx context.Context, tripUUID string) error
	GetByUUID(ctx context.Context, tripUUID string) (domain.Trip, error)
	ListByUser(ctx context.Context, userUUID string) ([]domain.Trip, error)
}

// Chatter defines the single operation the chat handler depends on.
type Chatter interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips TripServicer
	chat  Chatter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, chat Chatter) *Server {
	return &Server{trips: trips, chat: chat}
}

// Routes returns the router for the full API surface. Cross-cutting
// middleware (logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.Health)
	r.Post("/chat", s.Chat)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.AddTrip)
		r.Get("/{tripUUID}", s.GetTrip)
		r.Put("/{tripUUID}", s.EditTrip)
		r.Delete("/{tripUUID}", s.CancelTrip)
	})

	r.Get("/users/{userUUID}/trips", s.ListUserTrips)

	return r
}
