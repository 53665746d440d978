package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/handler"
)

type mockSubscriptionServicer struct {
	create func(ctx context.Context, customerID, priceID string) (domain.Subscription, error)
}

func (m *mockSubscriptionServicer) Create(ctx context.Context, customerID, priceID string) (domain.Subscription, error) {
	return m.create(ctx, customerID, priceID)
}

var _ handler.SubscriptionServicer = (*mockSubscriptionServicer)(nil)

func TestCreateSubscription(t *testing.T) {
	var gotCustomer, gotPrice string
	svc := &mockSubscriptionServicer{
		create: func(_ context.Context, customerID, priceID string) (domain.Subscription, error) {
			gotCustomer, gotPrice = customerID, priceID
			return domain.Subscription{SubscriptionID: "sub_1", ClientSecret: "pi_secret"}, nil
		},
	}

	rec := serve(newHTTPHandler(handler.Deps{Subscriptions: svc}), http.MethodPost, "/api/subscriptions",
		rawBody(`{"customerId":"cus_1","priceId":"price_1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subscriptionId":"sub_1","clientSecret":"pi_secret"}`, rec.Body.String())
	assert.Equal(t, "cus_1", gotCustomer)
	assert.Equal(t, "price_1", gotPrice)
}

func TestCreateSubscription_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing fields", fmt.Errorf("%w: customerId is required", domain.ErrValidation), http.StatusUnprocessableEntity, "validation_error"},
		{"no stripe key", domain.ErrNotConfigured, http.StatusServiceUnavailable, "not_configured"},
		{"card declined", &domain.UpstreamError{Provider: "stripe", StatusCode: http.StatusPaymentRequired}, http.StatusPaymentRequired, "upstream_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockSubscriptionServicer{
				create: func(context.Context, string, string) (domain.Subscription, error) {
					return domain.Subscription{}, tc.err
				},
			}

			rec := serve(newHTTPHandler(handler.Deps{Subscriptions: svc}), http.MethodPost, "/api/subscriptions",
				rawBody(`{"customerId":"cus_1"}`))

			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestCreateSubscription_MalformedJSON(t *testing.T) {
	svc := &mockSubscriptionServicer{}

	rec := serve(newHTTPHandler(handler.Deps{Subscriptions: svc}), http.MethodPost, "/api/subscriptions", rawBody(`nope`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
