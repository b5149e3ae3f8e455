package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/trip-planner/backend/internal/domain"
	"github.com/voyago/trip-planner/backend/internal/repo"
	"github.com/voyago/trip-planner/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	insert     func(ctx context.Context, trip domain.Trip) error
	getByUUID  func(ctx context.Context, tripUUID string) (domain.Trip, error)
	listByUser func(ctx context.Context, userUUID string) ([]domain.Trip, error)
	update     func(ctx context.Context, trip domain.Trip) error
	delete     func(ctx context.Context, tripUUID string) error
}

func (m *mockTripRepo) Insert(ctx context.Context, t domain.Trip) error {
	return m.insert(ctx, t)
}
func (m *mockTripRepo) GetByUUID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByUUID(ctx, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userUUID string) ([]domain.Trip, error) {
	return m.listByUser(ctx, userUUID)
}
func (m *mockTripRepo) Update(ctx context.Context, t domain.Trip) error {
	return m.update(ctx, t)
}
func (m *mockTripRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func strPtr(s string) *string { return &s }

func validInput() service.TripInput {
	return service.TripInput{
		UserUUID:    "u1",
		Name:        "Summer Tour",
		Destination: "Lisbon",
		StartDate:   strPtr("2025-06-01"),
		EndDate:     strPtr("2025-06-15"),
	}
}

// acceptingRepo is a repo whose mutating methods all succeed.
func acceptingRepo() *mockTripRepo {
	return &mockTripRepo{
		insert: func(_ context.Context, _ domain.Trip) error { return nil },
		update: func(_ context.Context, _ domain.Trip) error { return nil },
		delete: func(_ context.Context, _ string) error { return nil },
	}
}

// ---- Add tests -------------------------------------------------------------

func TestTripService_Add_Valid(t *testing.T) {
	var inserted domain.Trip
	r := acceptingRepo()
	r.insert = func(_ context.Context, tr domain.Trip) error {
		inserted = tr
		return nil
	}
	svc := service.NewTripService(r)

	got, err := svc.Add(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "Summer Tour", got.Name)
	assert.Equal(t, got, inserted, "the persisted record must equal the returned one")

	// The service generates the identifier; it must be a well-formed UUID.
	_, err = uuid.Parse(got.TripUUID)
	assert.NoError(t, err)
}

func TestTripService_Add_GeneratesDistinctIDs(t *testing.T) {
	svc := service.NewTripService(acceptingRepo())

	first, err := svc.Add(context.Background(), validInput())
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.TripUUID, second.TripUUID)
}

func TestTripService_Add_MissingName(t *testing.T) {
	r := &mockTripRepo{
		insert: func(_ context.Context, _ domain.Trip) error {
			t.Fatal("insert must not be called when validation fails")
			return nil
		},
	}
	svc := service.NewTripService(r)

	input := validInput()
	input.Name = ""

	_, err := svc.Add(context.Background(), input)

	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.FieldRequired, verr.Kind)
	assert.Equal(t, "name", verr.Field)
}

func TestTripService_Add_InvalidDate(t *testing.T) {
	svc := service.NewTripService(acceptingRepo())

	input := validInput()
	input.StartDate = strPtr("2025-13-01")

	_, err := svc.Add(context.Background(), input)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.FieldInvalidDate, verr.Kind)
}

func TestTripService_Add_DateOrder(t *testing.T) {
	svc := service.NewTripService(acceptingRepo())

	input := validInput()
	input.StartDate = strPtr("2025-01-31")
	input.EndDate = strPtr("2025-01-01")

	_, err := svc.Add(context.Background(), input)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.FieldDateOrder, verr.Kind)
}

func TestTripService_Add_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		insert: func(_ context.Context, _ domain.Trip) error { return repoErr },
	}
	svc := service.NewTripService(r)

	_, err := svc.Add(context.Background(), validInput())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- Edit tests ------------------------------------------------------------

func TestTripService_Edit_Valid(t *testing.T) {
	var updated domain.Trip
	r := acceptingRepo()
	r.update = func(_ context.Context, tr domain.Trip) error {
		updated = tr
		return nil
	}
	svc := service.NewTripService(r)

	input := validInput()
	input.Name = "Renamed Trip"

	got, err := svc.Edit(context.Background(), "trip-123", input)

	require.NoError(t, err)
	assert.Equal(t, "trip-123", got.TripUUID, "edit must keep the given identifier")
	assert.Equal(t, "Renamed Trip", updated.Name)
}

func TestTripService_Edit_RevalidatesFullRecord(t *testing.T) {
	svc := service.NewTripService(acceptingRepo())

	input := validInput()
	input.Destination = "   "

	_, err := svc.Edit(context.Background(), "trip-123", input)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.FieldRequired, verr.Kind)
	assert.Equal(t, "destination", verr.Field)
}

func TestTripService_Edit_NonexistentIDSucceeds(t *testing.T) {
	// The store layer does not check existence on update, so editing a ghost
	// id is a silent success.
	svc := service.NewTripService(acceptingRepo())

	_, err := svc.Edit(context.Background(), uuid.NewString(), validInput())

	assert.NoError(t, err)
}

// ---- Cancel tests ----------------------------------------------------------

func TestTripService_Cancel_OK(t *testing.T) {
	var deleted string
	r := acceptingRepo()
	r.delete = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}
	svc := service.NewTripService(r)

	err := svc.Cancel(context.Background(), "trip-123")

	require.NoError(t, err)
	assert.Equal(t, "trip-123", deleted)
}

// ---- GetByUUID tests -------------------------------------------------------

func TestTripService_GetByUUID_Found(t *testing.T) {
	want := validInput().UserUUID
	r := &mockTripRepo{
		getByUUID: func(_ context.Context, id string) (domain.Trip, error) {
			return domain.Trip{TripUUID: id, UserUUID: want, Name: "T", Destination: "D"}, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.GetByUUID(context.Background(), "trip-123")

	require.NoError(t, err)
	assert.Equal(t, "trip-123", got.TripUUID)
}

func TestTripService_GetByUUID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByUUID: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.GetByUUID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListByUser tests ------------------------------------------------------

func TestTripService_ListByUser(t *testing.T) {
	trips := []domain.Trip{
		{TripUUID: "a", UserUUID: "u1", Name: "First", Destination: "X"},
		{TripUUID: "b", UserUUID: "u1", Name: "Second", Destination: "Y"},
	}
	r := &mockTripRepo{
		listByUser: func(_ context.Context, userUUID string) ([]domain.Trip, error) {
			assert.Equal(t, "u1", userUUID)
			return trips, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, trips, got)
}

func TestTripService_ListByUser_Empty(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ string) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	// Should return an empty slice, not nil — callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
