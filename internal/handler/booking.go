package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/guy32807/travel-recommentation/internal/booking"
	"github.com/guy32807/travel-recommentation/internal/domain"
)

const hotelSubject = "hotel"

type hotelsResponse struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Hotels []booking.Hotel `json:"hotels"`
}

type hotelResponse struct {
	Status string              `json:"status"`
	Hotel  booking.HotelDetail `json:"hotel"`
}

type reviewsResponse struct {
	Status string `json:"status"`
	booking.ReviewPage
}

// bookingSearch handles GET /api/external/booking/hotels.
func (s *Server) bookingSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := booking.SearchParams{
		Destination: strings.TrimSpace(q.Get("destination")),
		CheckIn:     strings.TrimSpace(q.Get("checkIn")),
		CheckOut:    strings.TrimSpace(q.Get("checkOut")),
		Adults:      2,
		Rooms:       1,
	}
	if p.Destination == "" {
		badRequest(w, "Destination is required")
		return
	}
	if p.CheckIn == "" || p.CheckOut == "" {
		badRequest(w, "Check-in and check-out dates are required")
		return
	}

	b := newQueryBinder(q)
	b.optional("adults", &p.Adults)
	b.optional("rooms", &p.Rooms)
	b.optional("minRating", &p.MinRating)
	b.optional("maxPrice", &p.MaxPrice)
	b.list("amenities", &p.Amenities)
	if msg := b.err(); msg != "" {
		badRequest(w, msg)
		return
	}
	if p.Adults < 1 || p.Rooms < 1 {
		badRequest(w, "adults and rooms must be at least 1")
		return
	}
	p.Amenities = trimAll(p.Amenities)

	hotels := s.booking.Search(r.Context(), p)
	writeJSON(w, http.StatusOK, hotelsResponse{Status: "success", Count: len(hotels), Hotels: hotels})
}

// bookingHotel handles GET /api/external/booking/hotels/{hotelId}.
func (s *Server) bookingHotel(w http.ResponseWriter, r *http.Request) {
	h, err := s.booking.Hotel(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		s.fail(w, r, err, hotelSubject)
		return
	}
	writeJSON(w, http.StatusOK, hotelResponse{Status: "success", Hotel: h})
}

// bookingReviews handles GET /api/external/booking/hotels/{hotelId}/reviews.
// Supports ?page= and ?limit= (defaults: page=1, limit=10, max=100).
func (s *Server) bookingReviews(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	b := newQueryBinder(r.URL.Query())
	b.optional("page", &page)
	b.optional("limit", &limit)
	if msg := b.err(); msg != "" {
		badRequest(w, msg)
		return
	}

	reviews, err := s.booking.Reviews(r.Context(), chi.URLParam(r, "hotelId"), domain.NewPaginationParams(page, limit))
	if err != nil {
		s.fail(w, r, err, hotelSubject)
		return
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Status: "success", ReviewPage: reviews})
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
