package handler

import (
	"net/http"
	"strings"
)

const placesSubject = "Google Places API"

// placesSearch handles GET /api/external/places/search.
func (s *Server) placesSearch(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		notConfigured(w, placesSubject)
		return
	}

	var (
		location, placeType string
		radius              int
	)
	b := newQueryBinder(r.URL.Query())
	b.required("location", &location)
	b.optional("radius", &radius)
	b.optional("type", &placeType)
	if msg := b.err(); msg != "" {
		badRequest(w, msg)
		return
	}
	if radius < 0 {
		badRequest(w, "radius must not be negative")
		return
	}

	raw, err := s.places.NearbySearch(r.Context(), strings.TrimSpace(location), radius, placeType)
	s.relay(w, r, raw, err, placesSubject)
}

// placesDetails handles GET /api/external/places/details.
func (s *Server) placesDetails(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		notConfigured(w, placesSubject)
		return
	}
	placeID := strings.TrimSpace(r.URL.Query().Get("placeId"))
	if placeID == "" {
		badRequest(w, "placeId is required")
		return
	}

	raw, err := s.places.Details(r.Context(), placeID)
	s.relay(w, r, raw, err, placesSubject)
}

// placesHotels handles GET /api/external/places/hotels. It answers with the
// bare results array of a lodging search.
func (s *Server) placesHotels(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		notConfigured(w, placesSubject)
		return
	}
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		badRequest(w, "location is required")
		return
	}

	raw, err := s.places.Lodging(r.Context(), location)
	s.relay(w, r, raw, err, placesSubject)
}
