package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/guy32807/travel-recommentation/internal/amadeus"
)

const amadeusSubject = "Amadeus API"

// minKeywordLength is the shortest location keyword Amadeus accepts.
const minKeywordLength = 2

// amadeusLocations handles GET /api/external/amadeus/locations.
func (s *Server) amadeusLocations(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if len([]rune(keyword)) < minKeywordLength {
		badRequest(w, "keyword must be at least 2 characters")
		return
	}

	raw, err := s.amadeus.Locations(r.Context(), keyword, r.URL.Query().Get("subType"))
	s.relay(w, r, raw, err, amadeusSubject)
}

// amadeusFlightOffers handles GET /api/external/amadeus/flight-offers.
func (s *Server) amadeusFlightOffers(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}

	var (
		p          amadeus.FlightOfferParams
		departure  openapi_types.Date
		returnDate *openapi_types.Date
	)
	b := newQueryBinder(r.URL.Query())
	b.required("originLocationCode", &p.Origin)
	b.required("destinationLocationCode", &p.Destination)
	b.required("departureDate", &departure)
	b.optional("returnDate", &returnDate)
	b.optional("adults", &p.Adults)
	b.optional("travelClass", &p.TravelClass)
	b.optional("nonStop", &p.NonStop)
	b.optional("currencyCode", &p.CurrencyCode)
	b.optional("max", &p.Max)
	if msg := b.err(); msg != "" {
		badRequest(w, msg)
		return
	}
	p.DepartureDate = departure.String()
	if returnDate != nil {
		p.ReturnDate = returnDate.String()
	}

	raw, err := s.amadeus.FlightOffers(r.Context(), p)
	s.relay(w, r, raw, err, amadeusSubject)
}

type flightPricingRequest struct {
	FlightOffers json.RawMessage `json:"flightOffers"`
}

// amadeusPriceFlightOffers handles POST /api/external/amadeus/flight-offers/pricing.
// The body is {"flightOffers": [...]} with offers taken from a previous search.
func (s *Server) amadeusPriceFlightOffers(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}
	var body flightPricingRequest
	if !decodeBody(w, r, &body) {
		return
	}
	var offers []json.RawMessage
	if err := json.Unmarshal(body.FlightOffers, &offers); err != nil || len(offers) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "flightOffers must be a non-empty array")
		return
	}

	raw, err := s.amadeus.PriceFlightOffers(r.Context(), body.FlightOffers)
	s.relay(w, r, raw, err, amadeusSubject)
}

// amadeusHotelOffers handles GET /api/external/amadeus/hotel-offers.
func (s *Server) amadeusHotelOffers(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}

	var (
		p                 amadeus.HotelOfferParams
		checkIn, checkOut openapi_types.Date
	)
	b := newQueryBinder(r.URL.Query())
	b.required("cityCode", &p.CityCode)
	b.required("checkInDate", &checkIn)
	b.required("checkOutDate", &checkOut)
	b.optional("adults", &p.Adults)
	b.optional("roomQuantity", &p.RoomQuantity)
	if msg := b.err(); msg != "" {
		badRequest(w, msg)
		return
	}
	p.CheckInDate = checkIn.String()
	p.CheckOutDate = checkOut.String()

	raw, err := s.amadeus.HotelOffers(r.Context(), p)
	s.relay(w, r, raw, err, amadeusSubject)
}

// amadeusHotelOffer handles GET /api/external/amadeus/hotel-offers/{offerId}.
func (s *Server) amadeusHotelOffer(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}
	raw, err := s.amadeus.HotelOffer(r.Context(), chi.URLParam(r, "offerId"))
	s.relay(w, r, raw, err, amadeusSubject)
}

// amadeusDestinations handles GET /api/external/amadeus/destinations.
// With a keyword it searches locations, otherwise it asks for
// recommendations around originCityCode.
func (s *Server) amadeusDestinations(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}
	q := r.URL.Query()
	raw, err := s.amadeus.Destinations(r.Context(), amadeus.DestinationParams{
		Keyword:          strings.TrimSpace(q.Get("keyword")),
		OriginCityCode:   q.Get("originCityCode"),
		DestinationTypes: q.Get("destinationTypes"),
	})
	s.relay(w, r, raw, err, amadeusSubject)
}

// amadeusFlightPriceAnalysis handles GET /api/external/amadeus/flight-price-analysis.
func (s *Server) amadeusFlightPriceAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.amadeus == nil {
		notConfigured(w, amadeusSubject)
		return
	}

	var (
		p         amadeus.PriceAnalysisParams
		departure openapi_types.Date
	)
	b := newQueryBinder(r.URL.Query())
	b.required("originIataCode", &p.Origin)
	b.required("destinationIataCode", &p.Destination)
	b.required("departureDate", &departure)
	b.optional("currencyCode", &p.CurrencyCode)
	if msg := b.err(); msg != "" {
		badRequest(w, msg)
		return
	}
	p.DepartureDate = departure.String()

	raw, err := s.amadeus.FlightPriceAnalysis(r.Context(), p)
	s.relay(w, r, raw, err, amadeusSubject)
}

// relay writes a proxied upstream answer or maps its error.
func (s *Server) relay(w http.ResponseWriter, r *http.Request, raw json.RawMessage, err error, subject string) {
	if err != nil {
		s.fail(w, r, err, subject)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}
