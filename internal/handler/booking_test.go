package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/booking"
	"github.com/guy32807/travel-recommentation/internal/handler"
)

var _ handler.HotelCatalog = (*booking.Catalog)(nil)

type hotelsBody struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Hotels []booking.Hotel `json:"hotels"`
}

func TestBookingSearch(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{BookingAffiliateID: "42"})

	rec := serve(h, http.MethodGet, "/api/external/booking/hotels?destination=Paris&checkIn=2026-06-01&checkOut=2026-06-05", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body hotelsBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, booking.ResultsPerSearch, body.Count)
	require.Len(t, body.Hotels, body.Count)
	require.NotNil(t, body.Hotels[0].Links)
	assert.Contains(t, body.Hotels[0].Links.Booking, "checkin=2026-06-01")
}

func TestBookingSearch_Filters(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	rec := serve(h, http.MethodGet,
		"/api/external/booking/hotels?destination=Paris&checkIn=a&checkOut=b&minRating=3.5&maxPrice=200&amenities=Pool,%20Spa", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body hotelsBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, len(body.Hotels), body.Count)
	for _, hotel := range body.Hotels {
		assert.GreaterOrEqual(t, hotel.Rating, 3.5)
		assert.LessOrEqual(t, hotel.Price.Current, 200.0)
		assert.Contains(t, hotel.Amenities, "Spa")
	}
}

func TestBookingSearch_Validation(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	tests := []struct {
		target  string
		message string
	}{
		{"/api/external/booking/hotels?checkIn=a&checkOut=b", "Destination is required"},
		{"/api/external/booking/hotels?destination=Rome&checkIn=a", "Check-in and check-out dates are required"},
		{"/api/external/booking/hotels?destination=Rome&checkIn=a&checkOut=b&maxPrice=cheap", "invalid maxPrice"},
		{"/api/external/booking/hotels?destination=Rome&checkIn=a&checkOut=b&rooms=0", "adults and rooms must be at least 1"},
	}
	for _, tc := range tests {
		rec := serve(h, http.MethodGet, tc.target, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code, tc.target)
		assert.Equal(t, tc.message, decodeError(t, rec).Message)
	}
}

func TestBookingHotel(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	rec := serve(h, http.MethodGet, "/api/external/booking/hotels/paris-2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status string              `json:"status"`
		Hotel  booking.HotelDetail `json:"hotel"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "paris-2", body.Hotel.ID)
	assert.Equal(t, "Paris Premium Hotel", body.Hotel.Name)

	rec = serve(h, http.MethodGet, "/api/external/booking/hotels/nonsense", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "hotel not found", decodeError(t, rec).Message)
}

func TestBookingReviews(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	rec := serve(h, http.MethodGet, "/api/external/booking/hotels/paris-2/reviews?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status  string           `json:"status"`
		Page    int              `json:"page"`
		Limit   int              `json:"limit"`
		Total   int              `json:"total"`
		Reviews []booking.Review `json:"reviews"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 5, body.Limit)
	assert.Equal(t, 50, body.Total)
	require.Len(t, body.Reviews, 5)
	assert.Equal(t, "review-paris-2-5", body.Reviews[0].ID)
}

func TestBookingReviews_DefaultsAndCap(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	rec := serve(h, http.MethodGet, "/api/external/booking/hotels/paris-2/reviews?limit=500", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Page    int              `json:"page"`
		Limit   int              `json:"limit"`
		Reviews []booking.Review `json:"reviews"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 100, body.Limit)
	assert.Len(t, body.Reviews, 50)

	rec = serve(h, http.MethodGet, "/api/external/booking/hotels/paris-2/reviews?page=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingReviews_HugePageIsEmpty(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	rec := serve(h, http.MethodGet, "/api/external/booking/hotels/paris-2/reviews?page=184467440737095517&limit=100", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Total   int              `json:"total"`
		Reviews []booking.Review `json:"reviews"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 50, body.Total)
	assert.NotNil(t, body.Reviews)
	assert.Empty(t, body.Reviews)
}

func TestBookingSearch_HotelIDsResolve(t *testing.T) {
	h := newBookingHTTPHandler(booking.Options{})

	rec := serve(h, http.MethodGet, "/api/external/booking/hotels?destination=Rio%2FBrazil&checkIn=a&checkOut=b", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body hotelsBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotEmpty(t, body.Hotels)
	assert.Equal(t, "rio-brazil-1", body.Hotels[0].ID)

	rec = serve(h, http.MethodGet, "/api/external/booking/hotels/"+body.Hotels[0].ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = serve(h, http.MethodGet, "/api/external/booking/hotels/"+body.Hotels[0].ID+"/reviews", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- helpers ----

func newBookingHTTPHandler(opts booking.Options) http.Handler {
	opts.Now = func() time.Time { return fixedNow }
	return newHTTPHandler(handler.Deps{Booking: booking.NewCatalog(opts)})
}
