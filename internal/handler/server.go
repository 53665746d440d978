// Package handler implements the HTTP API of the travel recommendation
// server. All handlers are methods on Server; they are split into
// domain-specific files (destinations.go, amadeus.go, etc.) but share the
// same dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guy32807/travel-recommentation/internal/amadeus"
	"github.com/guy32807/travel-recommentation/internal/booking"
	"github.com/guy32807/travel-recommentation/internal/domain"
)

// DestinationServicer defines the destination operations the handlers
// depend on. Defining it here, in the consumer package, lets handler tests
// inject a mock without a database.
type DestinationServicer interface {
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
	GetByID(ctx context.Context, id string) (domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	Search(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)
	Delete(ctx context.Context, id string) error
}

// ExportServicer produces the flat destination export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// SubscriptionServicer starts payment subscriptions.
type SubscriptionServicer interface {
	Create(ctx context.Context, customerID, priceID string) (domain.Subscription, error)
}

// AmadeusClient is the Amadeus proxy. Every method returns the upstream
// JSON unchanged.
type AmadeusClient interface {
	Locations(ctx context.Context, keyword, subType string) (json.RawMessage, error)
	FlightOffers(ctx context.Context, p amadeus.FlightOfferParams) (json.RawMessage, error)
	PriceFlightOffers(ctx context.Context, offers json.RawMessage) (json.RawMessage, error)
	HotelOffers(ctx context.Context, p amadeus.HotelOfferParams) (json.RawMessage, error)
	HotelOffer(ctx context.Context, offerID string) (json.RawMessage, error)
	Destinations(ctx context.Context, p amadeus.DestinationParams) (json.RawMessage, error)
	FlightPriceAnalysis(ctx context.Context, p amadeus.PriceAnalysisParams) (json.RawMessage, error)
}

// PlacesClient is the Google Places proxy.
type PlacesClient interface {
	NearbySearch(ctx context.Context, location string, radius int, placeType string) (json.RawMessage, error)
	Details(ctx context.Context, placeID string) (json.RawMessage, error)
	Lodging(ctx context.Context, location string) (json.RawMessage, error)
}

// HotelCatalog is the simulated Booking.com inventory.
type HotelCatalog interface {
	Search(ctx context.Context, p booking.SearchParams) []booking.Hotel
	Hotel(ctx context.Context, hotelID string) (booking.HotelDetail, error)
	Reviews(ctx context.Context, hotelID string, page domain.PaginationParams) (booking.ReviewPage, error)
}

// Deps are the Server's collaborators. Amadeus, Places and Subscriptions
// may be nil when their provider is not configured; the matching routes
// then answer 503.
type Deps struct {
	Destinations  DestinationServicer
	Export        ExportServicer
	Subscriptions SubscriptionServicer
	Amadeus       AmadeusClient
	Places        PlacesClient
	Booking       HotelCatalog

	// ExternalMiddleware wraps the /api/external proxies, typically a rate
	// limiter. Optional.
	ExternalMiddleware func(http.Handler) http.Handler

	Logger      *slog.Logger
	Environment string
	Port        string
	// Configured reports which optional integrations have credentials, for
	// /api/debug. Values only, never the secrets themselves.
	Configured map[string]bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server holds the handler dependencies. Build it with NewServer and mount
// Routes.
type Server struct {
	destinations  DestinationServicer
	export        ExportServicer
	subscriptions SubscriptionServicer
	amadeus       AmadeusClient
	places        PlacesClient
	booking       HotelCatalog

	externalMW func(http.Handler) http.Handler

	log         *slog.Logger
	environment string
	port        string
	configured  map[string]bool
	now         func() time.Time

	router chi.Router
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	s := &Server{
		destinations:  d.Destinations,
		export:        d.Export,
		subscriptions: d.Subscriptions,
		amadeus:       d.Amadeus,
		places:        d.Places,
		booking:       d.Booking,
		externalMW:    d.ExternalMiddleware,
		log:           d.Logger,
		environment:   d.Environment,
		port:          d.Port,
		configured:    d.Configured,
		now:           d.Now,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.router = s.buildRoutes()
	return s
}

// Routes returns the API's http.Handler. Cross-cutting middleware (request
// ids, logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	return s.router
}

func (s *Server) production() bool {
	return s.environment == "production"
}

func (s *Server) buildRoutes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/openapi.yaml", s.getOpenAPI)
	r.Get("/api/health", s.getHealth)
	if !s.production() {
		r.Get("/api/debug", s.getDebug)
	}

	r.Route("/api/recommendations", func(r chi.Router) {
		r.Get("/", s.listDestinations)
		r.Post("/", s.createDestination)
		r.Get("/search", s.searchDestinations)
		r.Get("/export", s.exportDestinations)
		r.Get("/{id}", s.getDestination)
		r.Put("/{id}", s.updateDestination)
		r.Delete("/{id}", s.deleteDestination)
	})

	r.Route("/api/external", func(r chi.Router) {
		if s.externalMW != nil {
			r.Use(s.externalMW)
		}
		r.Route("/amadeus", func(r chi.Router) {
			r.Get("/locations", s.amadeusLocations)
			r.Get("/flight-offers", s.amadeusFlightOffers)
			r.Post("/flight-offers/pricing", s.amadeusPriceFlightOffers)
			r.Get("/hotel-offers", s.amadeusHotelOffers)
			r.Get("/hotel-offers/{offerId}", s.amadeusHotelOffer)
			r.Get("/destinations", s.amadeusDestinations)
			r.Get("/flight-price-analysis", s.amadeusFlightPriceAnalysis)
		})
		r.Route("/booking", func(r chi.Router) {
			r.Get("/hotels", s.bookingSearch)
			r.Get("/hotels/{hotelId}", s.bookingHotel)
			r.Get("/hotels/{hotelId}/reviews", s.bookingReviews)
		})
		r.Route("/places", func(r chi.Router) {
			r.Get("/search", s.placesSearch)
			r.Get("/details", s.placesDetails)
			r.Get("/hotels", s.placesHotels)
		})
	})

	r.Route("/api/mock", func(r chi.Router) {
		r.Get("/test", s.mockTest)
		r.Get("/locations", s.mockLocations)
		r.Get("/hotels", s.mockHotels)
	})

	r.Post("/api/subscriptions", s.createSubscription)
	return r
}
