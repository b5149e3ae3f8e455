// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No SQL and no HTTP live here.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/voyago/trip-planner/backend/internal/domain"
	"github.com/voyago/trip-planner/backend/internal/repo"
)

// TripInput carries the caller-supplied fields of a trip. The trip identifier
// is never part of the input: Add generates it, Edit takes it from the path.
type TripInput struct {
	UserUUID    string
	Name        string
	Destination string
	StartDate   *string
	EndDate     *string
	Preferences *string
	Notes       *string
}

// trip assembles a full domain.Trip from the input and a fixed identifier.
func (in TripInput) trip(tripUUID string) domain.Trip {
	return domain.Trip{
		TripUUID:    tripUUID,
		UserUUID:    in.UserUUID,
		Name:        in.Name,
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Preferences: in.Preferences,
		Notes:       in.Notes,
	}
}

// TripService implements business logic for trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Add generates a new trip identifier, validates the assembled record, and
// persists it. Validation runs before any store mutation — an invalid input
// never reaches the database. Returns the created trip including its id.
func (s *TripService) Add(ctx context.Context, input TripInput) (domain.Trip, error) {
	trip := input.trip(uuid.NewString())

	if err := trip.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Add: %w", err)
	}
	if err := s.repo.Insert(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Add: %w", err)
	}
	return trip, nil
}

// Edit re-validates the full record with the identifier fixed to tripUUID and
// performs a full-row replace. Editing an id that does not exist succeeds
// silently — the store layer does not check existence on update.
func (s *TripService) Edit(ctx context.Context, tripUUID string, input TripInput) (domain.Trip, error) {
	trip := input.trip(tripUUID)

	if err := trip.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Edit: %w", err)
	}
	if err := s.repo.Update(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Edit: %w", err)
	}
	return trip, nil
}

// Cancel hard-deletes a trip. Cancelling an id that does not exist is not an
// error.
func (s *TripService) Cancel(ctx context.Context, tripUUID string) error {
	if err := s.repo.Delete(ctx, tripUUID); err != nil {
		return fmt.Errorf("service.TripService.Cancel: %w", err)
	}
	return nil
}

// GetByUUID returns a single trip. Wraps domain.ErrNotFound when absent.
func (s *TripService) GetByUUID(ctx context.Context, tripUUID string) (domain.Trip, error) {
	trip, err := s.repo.GetByUUID(ctx, tripUUID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByUUID: %w", err)
	}
	return trip, nil
}

// ListByUser returns all of a user's trips in insertion order.
// The slice is empty, never nil, when the user has no trips.
func (s *TripService) ListByUser(ctx context.Context, userUUID string) ([]domain.Trip, error) {
	trips, err := s.repo.ListByUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}
