package handler

import (
	"net/http"
	"strings"

	"github.com/guy32807/travel-recommentation/internal/mockdata"
)

type mockMeta struct {
	Count    int    `json:"count"`
	Source   string `json:"source,omitempty"`
	CityCode string `json:"cityCode,omitempty"`
}

type mockResponse[T any] struct {
	Data []T      `json:"data"`
	Meta mockMeta `json:"meta"`
}

// mockTest handles GET /api/mock/test.
func (s *Server) mockTest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mock API is working"})
}

// mockLocations handles GET /api/mock/locations.
func (s *Server) mockLocations(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if len([]rune(keyword)) < mockdata.MinKeywordLength {
		badRequest(w, "keyword must be at least 2 characters")
		return
	}

	found := mockdata.Locations(keyword)
	writeJSON(w, http.StatusOK, mockResponse[mockdata.Location]{
		Data: found,
		Meta: mockMeta{Count: len(found)},
	})
}

// mockHotels handles GET /api/mock/hotels.
func (s *Server) mockHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cityCode := strings.TrimSpace(q.Get("cityCode"))

	hotels := mockdata.Hotels(cityCode, q.Get("checkInDate"), q.Get("checkOutDate"))
	writeJSON(w, http.StatusOK, mockResponse[mockdata.HotelOffer]{
		Data: hotels,
		Meta: mockMeta{Count: len(hotels), Source: "mock", CityCode: cityCode},
	})
}
