package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// ProviderName labels Amadeus failures in errors and logs.
const ProviderName = "amadeus"

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 10 << 20

// TokenSource yields the bearer token for a request. *TokenCache satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client forwards requests to Amadeus and returns the upstream JSON
// unchanged. Non-2xx answers become *domain.UpstreamError.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient returns a Client for the API host baseURL (no version suffix).
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// Locations searches cities and airports by keyword.
// subType defaults to "CITY,AIRPORT".
func (c *Client) Locations(ctx context.Context, keyword, subType string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("subType", orDefault(subType, "CITY,AIRPORT"))
	return c.get(ctx, "/v1/reference-data/locations", q)
}

// FlightOfferParams are the flight search inputs. Zero values select the
// defaults: one adult, ten offers, no optional filters.
type FlightOfferParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   string
	NonStop       *bool
	CurrencyCode  string
	Max           int
}

// FlightOffers searches flight offers.
func (c *Client) FlightOffers(ctx context.Context, p FlightOfferParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("originLocationCode", p.Origin)
	q.Set("destinationLocationCode", p.Destination)
	q.Set("departureDate", p.DepartureDate)
	q.Set("adults", strconv.Itoa(positiveOr(p.Adults, 1)))
	q.Set("max", strconv.Itoa(positiveOr(p.Max, 10)))
	setIf(q, "returnDate", p.ReturnDate)
	setIf(q, "travelClass", p.TravelClass)
	setIf(q, "currencyCode", p.CurrencyCode)
	if p.NonStop != nil {
		q.Set("nonStop", strconv.FormatBool(*p.NonStop))
	}
	return c.get(ctx, "/v2/shopping/flight-offers", q)
}

// PriceFlightOffers confirms the current price of offers previously returned
// by FlightOffers. offers is the JSON array of flight-offer objects.
func (c *Client) PriceFlightOffers(ctx context.Context, offers json.RawMessage) (json.RawMessage, error) {
	body := map[string]any{
		"data": map[string]any{
			"type":         "flight-offers-pricing",
			"flightOffers": offers,
		},
	}
	return c.do(ctx, http.MethodPost, "/v1/shopping/flight-offers/pricing", nil, body)
}

// HotelOfferParams are the hotel search inputs. Adults and RoomQuantity
// default to one.
type HotelOfferParams struct {
	CityCode     string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	RoomQuantity int
}

// HotelOffers searches hotel offers in a city, best rate per hotel only.
func (c *Client) HotelOffers(ctx context.Context, p HotelOfferParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("cityCode", p.CityCode)
	q.Set("checkInDate", p.CheckInDate)
	q.Set("checkOutDate", p.CheckOutDate)
	q.Set("adults", strconv.Itoa(positiveOr(p.Adults, 1)))
	q.Set("roomQuantity", strconv.Itoa(positiveOr(p.RoomQuantity, 1)))
	q.Set("bestRateOnly", "true")
	return c.get(ctx, "/v2/shopping/hotel-offers", q)
}

// HotelOffer fetches a single offer by id.
func (c *Client) HotelOffer(ctx context.Context, offerID string) (json.RawMessage, error) {
	return c.get(ctx, "/v2/shopping/hotel-offers/"+url.PathEscape(offerID), nil)
}

// DestinationParams drive destination discovery. With a Keyword the
// location search is used; without one, Amadeus recommends destinations
// for travellers from OriginCityCode (default PAR).
type DestinationParams struct {
	Keyword          string
	OriginCityCode   string
	DestinationTypes string
}

// Destinations returns matching or recommended destinations.
func (c *Client) Destinations(ctx context.Context, p DestinationParams) (json.RawMessage, error) {
	q := url.Values{}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
		q.Set("subType", orDefault(p.DestinationTypes, "CITY,AIRPORT"))
		q.Set("page[limit]", "10")
		return c.get(ctx, "/v1/reference-data/locations", q)
	}

	q.Set("cityCodes", orDefault(p.OriginCityCode, "PAR"))
	q.Set("travelerCountryCode", "US")
	setIf(q, "destinationTypes", p.DestinationTypes)
	return c.get(ctx, "/v1/reference-data/recommended-locations", q)
}

// PriceAnalysisParams identify an itinerary for historical price metrics.
type PriceAnalysisParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	CurrencyCode  string
}

// FlightPriceAnalysis returns price quartiles for an itinerary.
// CurrencyCode defaults to USD.
func (c *Client) FlightPriceAnalysis(ctx context.Context, p PriceAnalysisParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("originIataCode", p.Origin)
	q.Set("destinationIataCode", p.Destination)
	q.Set("departureDate", p.DepartureDate)
	q.Set("currencyCode", orDefault(p.CurrencyCode, "USD"))
	return c.get(ctx, "/v1/analytics/itinerary-price-metrics", q)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, q, nil)
}

// do sends one authenticated request. A token failure is returned as is
// (it wraps domain.ErrUpstreamAuth); anything else upstream is an
// *domain.UpstreamError.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) (json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus.Client: %w", err)
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("amadeus.Client: encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("amadeus.Client: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: ProviderName, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.UpstreamError{Provider: ProviderName, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ue := &domain.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode}
		if json.Valid(raw) {
			ue.Body = raw
		}
		return nil, ue
	}
	if !json.Valid(raw) {
		return nil, &domain.UpstreamError{Provider: ProviderName, Err: fmt.Errorf("response from %s is not JSON", path)}
	}
	return raw, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func positiveOr(n, def int) int {
	if n < 1 {
		return def
	}
	return n
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
