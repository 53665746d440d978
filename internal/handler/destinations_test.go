package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/handler"
)

// mockDestinationServicer is a test double for handler.DestinationServicer.
// Set only the method fields your test needs.
type mockDestinationServicer struct {
	create  func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID func(ctx context.Context, id string) (domain.Destination, error)
	list    func(ctx context.Context) ([]domain.Destination, error)
	search  func(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)
	update  func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockDestinationServicer) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationServicer) GetByID(ctx context.Context, id string) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationServicer) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationServicer) Search(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	return m.search(ctx, f)
}
func (m *mockDestinationServicer) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

func TestListDestinations(t *testing.T) {
	d := destinationFixture()
	svc := &mockDestinationServicer{
		list: func(context.Context) ([]domain.Destination, error) { return []domain.Destination{d}, nil },
	}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodGet, "/api/recommendations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var got []domain.Destination
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, d.Name, got[0].Name)
	assert.Equal(t, d.Location, got[0].Location)
}

func TestListDestinations_EmptyIsArray(t *testing.T) {
	svc := &mockDestinationServicer{
		list: func(context.Context) ([]domain.Destination, error) { return []domain.Destination{}, nil },
	}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodGet, "/api/recommendations/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListDestinations_StoreErrorIs500(t *testing.T) {
	svc := &mockDestinationServicer{
		list: func(context.Context) ([]domain.Destination, error) { return nil, errors.New("connection refused") },
	}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodGet, "/api/recommendations", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "internal_error", e.Code)
	assert.Contains(t, e.Message, "connection refused")
}

func TestListDestinations_ProductionHidesErrorDetail(t *testing.T) {
	svc := &mockDestinationServicer{
		list: func(context.Context) ([]domain.Destination, error) { return nil, errors.New("password=hunter2") },
	}
	h := newHTTPHandler(handler.Deps{Destinations: svc, Environment: "production"})

	rec := serve(h, http.MethodGet, "/api/recommendations", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "internal server error", e.Message)
}

func TestSearchDestinations_PassesFilter(t *testing.T) {
	var got domain.DestinationFilter
	svc := &mockDestinationServicer{
		search: func(_ context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
			got = f
			return []domain.Destination{}, nil
		},
	}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodGet,
		"/api/recommendations/search?budget=luxury&climate=arid&activity=hiking&q=Beaches", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DestinationFilter{
		Budget:   domain.BudgetLuxury,
		Climate:  domain.ClimateArid,
		Activity: "hiking",
		Keyword:  "Beaches",
	}, got)
}

func TestSearchDestinations_UnknownEnumIs400(t *testing.T) {
	svc := &mockDestinationServicer{
		search: func(context.Context, domain.DestinationFilter) ([]domain.Destination, error) {
			t.Fatal("Search must not be called")
			return nil, nil
		},
	}
	h := newHTTPHandler(handler.Deps{Destinations: svc})

	for _, target := range []string{
		"/api/recommendations/search?budget=cheap",
		"/api/recommendations/search?climate=humid",
	} {
		rec := serve(h, http.MethodGet, target, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "bad_request", decodeError(t, rec).Code)
	}
}

func TestGetDestination(t *testing.T) {
	d := destinationFixture()
	svc := &mockDestinationServicer{
		getByID: func(_ context.Context, id string) (domain.Destination, error) {
			if id != d.ID {
				return domain.Destination{}, domain.ErrNotFound
			}
			return d, nil
		},
	}
	h := newHTTPHandler(handler.Deps{Destinations: svc})

	rec := serve(h, http.MethodGet, "/api/recommendations/"+d.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Destination
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, d.ID, got.ID)

	rec = serve(h, http.MethodGet, "/api/recommendations/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "not_found", e.Code)
	assert.Equal(t, "destination not found", e.Message)
}

func TestCreateDestination(t *testing.T) {
	var received domain.Destination
	svc := &mockDestinationServicer{
		create: func(_ context.Context, d domain.Destination) (domain.Destination, error) {
			received = d
			d.ID = "new-id"
			return d, nil
		},
	}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodPost, "/api/recommendations",
		rawBody(`{
			"name": "Bali",
			"location": {"country": "Indonesia", "coordinates": {"latitude": -8.4, "longitude": 115.1}},
			"description": "Island",
			"climate": "tropical",
			"budgetLevel": "budget",
			"activities": ["beach"],
			"bestTimeToVisit": ["summer"],
			"_id": "ignored"
		}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bali", received.Name)
	require.NotNil(t, received.Location.Coordinates)
	assert.InDelta(t, 115.1, received.Location.Coordinates.Longitude, 1e-9)
	assert.Equal(t, []domain.Season{domain.SeasonSummer}, received.BestTimeToVisit)

	var got domain.Destination
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "new-id", got.ID)
}

func TestCreateDestination_ValidationIs422(t *testing.T) {
	svc := &mockDestinationServicer{
		create: func(context.Context, domain.Destination) (domain.Destination, error) {
			return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w: name is required", domain.ErrValidation)
		},
	}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodPost, "/api/recommendations",
		jsonBody(t, map[string]string{"description": "x"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "validation_error", e.Code)
	assert.Equal(t, "name is required", e.Message)
}

func TestCreateDestination_MalformedJSONIs400(t *testing.T) {
	svc := &mockDestinationServicer{}

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodPost, "/api/recommendations", rawBody(`{"name":`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

func TestCreateDestination_BodyTooLargeIs413(t *testing.T) {
	svc := &mockDestinationServicer{}
	h := newHTTPHandler(handler.Deps{Destinations: svc})
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		h.ServeHTTP(w, r)
	})

	rec := serve(limited, http.MethodPost, "/api/recommendations",
		rawBody(`{"name":"a very long destination name indeed"}`))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "payload_too_large", decodeError(t, rec).Code)
}

func TestUpdateDestination_PathIDWins(t *testing.T) {
	var received domain.Destination
	svc := &mockDestinationServicer{
		update: func(_ context.Context, d domain.Destination) (domain.Destination, error) {
			received = d
			return d, nil
		},
	}
	d := destinationFixture()
	d.ID = "body-id"

	rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodPut, "/api/recommendations/path-id", jsonBody(t, d))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "path-id", received.ID)
	assert.Equal(t, d.Name, received.Name)
}

func TestUpdateDestination_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"validation", fmt.Errorf("%w: climate must be one of: tropical", domain.ErrValidation), http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockDestinationServicer{
				update: func(context.Context, domain.Destination) (domain.Destination, error) {
					return domain.Destination{}, tc.err
				},
			}

			rec := serve(newHTTPHandler(handler.Deps{Destinations: svc}), http.MethodPut, "/api/recommendations/x",
				jsonBody(t, destinationFixture()))

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestDeleteDestination(t *testing.T) {
	var deleted string
	svc := &mockDestinationServicer{
		delete: func(_ context.Context, id string) error {
			if id == "missing" {
				return domain.ErrNotFound
			}
			deleted = id
			return nil
		},
	}
	h := newHTTPHandler(handler.Deps{Destinations: svc})

	rec := serve(h, http.MethodDelete, "/api/recommendations/abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Destination deleted successfully"}`, rec.Body.String())
	assert.Equal(t, "abc", deleted)

	rec = serve(h, http.MethodDelete, "/api/recommendations/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRouteIs404Envelope(t *testing.T) {
	rec := serve(newHTTPHandler(handler.Deps{}), http.MethodGet, "/api/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

// ---- helpers ----

func destinationFixture() domain.Destination {
	return domain.Destination{
		ID:   "6650f1e2a1b2c3d4e5f60718",
		Name: "Kyoto",
		Location: domain.Location{
			Country:     "Japan",
			City:        "Kyoto",
			Coordinates: &domain.Coordinates{Latitude: 35.01, Longitude: 135.76},
		},
		Description:     "Temples and gardens",
		Climate:         domain.ClimateTemperate,
		BudgetLevel:     domain.BudgetModerate,
		Activities:      []string{"temple"},
		BestTimeToVisit: []domain.Season{domain.SeasonSpring},
		Ratings:         domain.Ratings{Average: 4.8, Count: 10},
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
