// Package amadeus proxies the Amadeus self-service travel APIs. Every call
// carries a bearer token obtained with the OAuth client-credentials grant and
// cached by TokenCache until it expires.
package amadeus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// TokenPath is the token endpoint relative to the API host.
const TokenPath = "/v1/security/oauth2/token"

// Fetcher obtains a fresh access token and its lifetime.
type Fetcher interface {
	FetchToken(ctx context.Context) (token string, ttl time.Duration, err error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (string, time.Duration, error)

func (f FetcherFunc) FetchToken(ctx context.Context) (string, time.Duration, error) {
	return f(ctx)
}

// TokenCache holds at most one token and its expiry.
//
// A cached token is returned without a network call while now < expiry.
// Otherwise the fetcher is called and, on success, the new token and
// expiry = now + ttl replace the old ones. A failed fetch leaves the cache
// as it was. The mutex is held across the fetch, so callers arriving while a
// refresh is in flight wait for it and share its result.
//
// The cache is never invalidated early: a downstream 401 does not evict.
type TokenCache struct {
	fetcher Fetcher
	now     func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// TokenCacheOption configures a TokenCache.
type TokenCacheOption func(*TokenCache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenCacheOption {
	return func(c *TokenCache) { c.now = now }
}

// NewTokenCache returns an empty cache backed by f.
func NewTokenCache(f Fetcher, opts ...TokenCacheOption) *TokenCache {
	c := &TokenCache{fetcher: f, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns a valid bearer token, fetching a new one when the cached
// token is absent or expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, nil
	}

	token, ttl, err := c.fetcher.FetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("amadeus.TokenCache.Token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("amadeus.TokenCache.Token: %w: empty access token", domain.ErrUpstreamAuth)
	}

	c.token = token
	c.expiry = c.now().Add(ttl)
	return c.token, nil
}

// Expiry reports when the cached token lapses. Zero when nothing is cached.
func (c *TokenCache) Expiry() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiry
}

// oauthFetcher runs the client-credentials grant against the Amadeus token
// endpoint. Amadeus expects the credentials in the form body.
type oauthFetcher struct {
	cfg        clientcredentials.Config
	httpClient *http.Client
}

// NewOAuthFetcher returns a Fetcher for the API host baseURL.
// httpClient carries the upstream timeout; nil means http.DefaultClient.
func NewOAuthFetcher(baseURL, apiKey, apiSecret string, httpClient *http.Client) Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &oauthFetcher{
		cfg: clientcredentials.Config{
			ClientID:     apiKey,
			ClientSecret: apiSecret,
			TokenURL:     baseURL + TokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
	}
}

// FetchToken returns the token and the time left until its expires_in lapses.
// Every failure is reported as domain.ErrUpstreamAuth.
func (f *oauthFetcher) FetchToken(ctx context.Context) (string, time.Duration, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)

	tok, err := f.cfg.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			return "", 0, fmt.Errorf("%w: token endpoint returned %d", domain.ErrUpstreamAuth, rerr.Response.StatusCode)
		}
		return "", 0, fmt.Errorf("%w: %v", domain.ErrUpstreamAuth, err)
	}

	// A response without expires_in leaves Expiry zero; treat the token as
	// single-use rather than caching it forever.
	var ttl time.Duration
	if !tok.Expiry.IsZero() {
		ttl = time.Until(tok.Expiry)
	}
	return tok.AccessToken, ttl, nil
}
