// Package repo contains all database access logic for the trip planner API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/voyago/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Insert stores a new trip row. The caller supplies the trip_uuid —
	// identifiers are generated by the service, not the database.
	Insert(ctx context.Context, trip domain.Trip) error

	// GetByUUID retrieves a single trip by its primary key.
	// Returns domain.ErrNotFound if no trip with that id exists.
	GetByUUID(ctx context.Context, tripUUID string) (domain.Trip, error)

	// ListByUser returns all trips belonging to userUUID in insertion order.
	// The slice is empty (never nil) when the user has no trips.
	ListByUser(ctx context.Context, userUUID string) ([]domain.Trip, error)

	// Update replaces every mutable column of the row keyed by trip.TripUUID.
	// Updating a nonexistent id is a silent no-op success — callers that need
	// existence must check with GetByUUID first.
	Update(ctx context.Context, trip domain.Trip) error

	// Delete removes a trip by id. Deleting a nonexistent id is not an error.
	Delete(ctx context.Context, tripUUID string) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `trip_uuid, user_uuid, name, start_date, end_date, destination, preferences, notes`

// Insert stores a new trip row.
func (r *pgTripRepo) Insert(ctx context.Context, trip domain.Trip) error {
	const q = `
		INSERT INTO trips (trip_uuid, user_uuid, name, start_date, end_date, destination, preferences, notes)
		VALUES (@trip_uuid, @user_uuid, @name, @start_date, @end_date, @destination, @preferences, @notes)`

	if _, err := r.db.Exec(ctx, q, tripArgs(trip)); err != nil {
		return fmt.Errorf("repo.TripRepo.Insert: %w", err)
	}
	return nil
}

// GetByUUID retrieves a trip by primary key.
func (r *pgTripRepo) GetByUUID(ctx context.Context, tripUUID string) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE trip_uuid = @trip_uuid`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_uuid": tripUUID})
	trip, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByUUID: %w", err)
	}
	return trip, nil
}

// ListByUser returns the user's trips in the order they were inserted.
// The seq identity column preserves insertion order even when rows share a
// created timestamp (e.g. inside one transaction).
func (r *pgTripRepo) ListByUser(ctx context.Context, userUUID string) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE user_uuid = @user_uuid ORDER BY seq`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_uuid": userUUID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, nil
}

// Update replaces all mutable columns of an existing trip.
// No RowsAffected check: an update against a missing id succeeds silently,
// matching the product's edit semantics.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) error {
	const q = `
		UPDATE trips
		SET user_uuid   = @user_uuid,
		    name        = @name,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    destination = @destination,
		    preferences = @preferences,
		    notes       = @notes
		WHERE trip_uuid = @trip_uuid`

	if _, err := r.db.Exec(ctx, q, tripArgs(trip)); err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return nil
}

// Delete removes a trip by primary key. Missing rows are not an error.
func (r *pgTripRepo) Delete(ctx context.Context, tripUUID string) error {
	const q = `DELETE FROM trips WHERE trip_uuid = @trip_uuid`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_uuid": tripUUID}); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// tripArgs maps a domain.Trip onto named statement arguments.
// Nil pointer fields become NULL columns.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_uuid":   trip.TripUUID,
		"user_uuid":   trip.UserUUID,
		"name":        trip.Name,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"destination": trip.Destination,
		"preferences": trip.Preferences,
		"notes":       trip.Notes,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// Nullable text columns go through pgtype.Text so NULL becomes a nil pointer.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		startDate   pgtype.Text
		endDate     pgtype.Text
		preferences pgtype.Text
		notes       pgtype.Text
	)

	err := s.Scan(&t.TripUUID, &t.UserUUID, &t.Name, &startDate, &endDate,
		&t.Destination, &preferences, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.StartDate = textPtr(startDate)
	t.EndDate = textPtr(endDate)
	t.Preferences = textPtr(preferences)
	t.Notes = textPtr(notes)

	return t, nil
}

// textPtr converts a pgtype.Text into a *string, nil for NULL.
func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
