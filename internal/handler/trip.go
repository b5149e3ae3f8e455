package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyago/trip-planner/backend/internal/domain"
	"github.com/voyago/trip-planner/backend/internal/service"
)

// tripRequest is the JSON body for both create and edit. The trip identifier
// is never part of the body: create generates it, edit takes it from the path.
type tripRequest struct {
	UserUUID    string  `json:"user_uuid"`
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Preferences *string `json:"preferences"`
	Notes       *string `json:"notes"`
}

func (req tripRequest) input() service.TripInput {
	return service.TripInput{
		UserUUID:    req.UserUUID,
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Preferences: req.Preferences,
		Notes:       req.Notes,
	}
}

// decodeTripRequest reads and decodes the request body. A JSON value of the
// wrong type for a field (e.g. a number where a string is required) becomes a
// wrong-type ValidationError naming that field, so callers can tell "wrong
// type" apart from "missing" — anything else unparseable is a plain error
// that maps to 400.
func decodeTripRequest(r *http.Request) (tripRequest, error) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return tripRequest{}, &domain.ValidationError{
				Field: typeErr.Field,
				Kind:  domain.FieldWrongType,
			}
		}
		if errors.Is(err, io.EOF) {
			return tripRequest{}, errors.New("request body is required")
		}
		return tripRequest{}, err
	}
	return req, nil
}

// AddTrip handles POST /trips.
func (s *Server) AddTrip(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTripRequest(r)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeDomainError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	trip, err := s.trips.Add(r.Context(), req.input())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}

// GetTrip handles GET /trips/{tripUUID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByUUID(r.Context(), chi.URLParam(r, "tripUUID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// EditTrip handles PUT /trips/{tripUUID}. Full-record replace: every field is
// re-validated and written, not merged.
func (s *Server) EditTrip(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTripRequest(r)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeDomainError(w, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	trip, err := s.trips.Edit(r.Context(), chi.URLParam(r, "tripUUID"), req.input())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// CancelTrip handles DELETE /trips/{tripUUID}.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Cancel(r.Context(), chi.URLParam(r, "tripUUID")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUserTrips handles GET /users/{userUUID}/trips.
func (s *Server) ListUserTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListByUser(r.Context(), chi.URLParam(r, "userUUID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trips)
}
