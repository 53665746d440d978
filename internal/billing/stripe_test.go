package billing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/guy32807/travel-recommentation/internal/billing"
	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/service"
)

var _ service.Subscriber = (*billing.Client)(nil)

func TestCreateSubscription(t *testing.T) {
	var (
		gotPath string
		gotForm url.Values
		gotAuth string
	)
	c := newStripe(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "sub_123",
			"object": "subscription",
			"latest_invoice": {
				"id": "in_1",
				"object": "invoice",
				"payment_intent": {"id": "pi_1", "object": "payment_intent", "client_secret": "pi_1_secret_abc"}
			}
		}`))
	})

	sub, err := c.CreateSubscription(context.Background(), "cus_1", "price_1")

	require.NoError(t, err)
	assert.Equal(t, domain.Subscription{SubscriptionID: "sub_123", ClientSecret: "pi_1_secret_abc"}, sub)
	assert.Equal(t, "/v1/subscriptions", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "cus_1", gotForm.Get("customer"))
	assert.Equal(t, "price_1", gotForm.Get("items[0][price]"))
	assert.Equal(t, "default_incomplete", gotForm.Get("payment_behavior"))
	assert.Equal(t, "latest_invoice.payment_intent", gotForm.Get("expand[0]"))
}

func TestCreateSubscription_NoPaymentIntent(t *testing.T) {
	c := newStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sub_9","object":"subscription","latest_invoice":null}`))
	})

	sub, err := c.CreateSubscription(context.Background(), "cus_1", "price_1")

	require.NoError(t, err)
	assert.Equal(t, "sub_9", sub.SubscriptionID)
	assert.Empty(t, sub.ClientSecret)
}

func TestCreateSubscription_StripeError(t *testing.T) {
	c := newStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such customer: 'cus_x'"}}`))
	})

	_, err := c.CreateSubscription(context.Background(), "cus_x", "price_1")

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream), "got %v", err)
	assert.Equal(t, billing.ProviderName, upstream.Provider)
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	assert.JSONEq(t,
		`{"type":"invalid_request_error","code":"resource_missing","message":"No such customer: 'cus_x'"}`,
		string(upstream.Body))
}

func TestCreateSubscription_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := billing.NewClient("sk_test_123", backends(srv.URL))

	_, err := c.CreateSubscription(context.Background(), "cus_1", "price_1")

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream), "got %v", err)
	assert.Zero(t, upstream.StatusCode)
}

// ---- helpers ----

func newStripe(t *testing.T, h http.HandlerFunc) *billing.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return billing.NewClient("sk_test_123", backends(srv.URL))
}

func backends(baseURL string) *stripe.Backends {
	b := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(baseURL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return &stripe.Backends{API: b, Connect: b, Uploads: b}
}
