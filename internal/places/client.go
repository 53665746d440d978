// Package places proxies the Google Places web service.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// ProviderName labels Places failures in errors and logs.
const ProviderName = "google_places"

// DetailFields is the field mask requested from the details endpoint.
const DetailFields = "name,rating,formatted_address,formatted_phone_number,website,photos,price_level,reviews,opening_hours"

// LodgingRadius is the search radius, in metres, used by Lodging.
const LodgingRadius = 5000

const maxResponseBytes = 10 << 20

// Client calls the Places API with a server-side key. Google reports most
// failures inside a 200 body; those are turned into *domain.UpstreamError
// with a matching HTTP status.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a Client rooted at baseURL
// (e.g. https://maps.googleapis.com/maps/api/place).
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, httpClient: httpClient}
}

// NearbySearch returns places near location ("lat,lng"). radius is in
// metres; zero and empty placeType are omitted.
func (c *Client) NearbySearch(ctx context.Context, location string, radius int, placeType string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("location", location)
	if radius > 0 {
		q.Set("radius", strconv.Itoa(radius))
	}
	if placeType != "" {
		q.Set("type", placeType)
	}
	raw, _, err := c.get(ctx, "/nearbysearch/json", q)
	return raw, err
}

// Details returns the DetailFields of one place.
func (c *Client) Details(ctx context.Context, placeID string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", DetailFields)
	raw, _, err := c.get(ctx, "/details/json", q)
	return raw, err
}

// Lodging returns only the results array of a lodging search around location.
// It is never null.
func (c *Client) Lodging(ctx context.Context, location string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("location", location)
	q.Set("radius", strconv.Itoa(LodgingRadius))
	q.Set("type", "lodging")
	_, env, err := c.get(ctx, "/nearbysearch/json", q)
	if err != nil {
		return nil, err
	}
	if len(env.Results) == 0 || string(env.Results) == "null" {
		return json.RawMessage(`[]`), nil
	}
	return env.Results, nil
}

// envelope is the part of every Places response the client inspects.
type envelope struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      json.RawMessage `json:"results"`
}

// statusCodes maps Google's in-body status to the HTTP status we answer with.
var statusCodes = map[string]int{
	"INVALID_REQUEST":  http.StatusBadRequest,
	"REQUEST_DENIED":   http.StatusForbidden,
	"OVER_QUERY_LIMIT": http.StatusTooManyRequests,
	"NOT_FOUND":        http.StatusNotFound,
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (json.RawMessage, envelope, error) {
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, envelope{}, fmt.Errorf("places.Client: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the key; keep it out of the error text.
		return nil, envelope{}, &domain.UpstreamError{Provider: ProviderName, Err: redact(err, c.apiKey)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, envelope{}, &domain.UpstreamError{Provider: ProviderName, Err: fmt.Errorf("read body: %w", err)}
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		ue := &domain.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			ue.StatusCode = 0
			ue.Err = fmt.Errorf("response from %s is not JSON", path)
		}
		return nil, envelope{}, ue
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, envelope{}, &domain.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode, Body: raw}
	}

	switch env.Status {
	case "OK", "ZERO_RESULTS":
		return raw, env, nil
	}
	code, ok := statusCodes[env.Status]
	if !ok {
		code = http.StatusBadGateway
	}
	return nil, envelope{}, &domain.UpstreamError{
		Provider:   ProviderName,
		StatusCode: code,
		Body:       raw,
		Err:        fmt.Errorf("status %s: %s", env.Status, env.ErrorMessage),
	}
}

// redact removes the API key from a transport error.
func redact(err error, key string) error {
	if key == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
