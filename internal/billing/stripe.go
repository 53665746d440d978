// Package billing creates Stripe subscriptions.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// ProviderName labels Stripe failures in domain.UpstreamError.
const ProviderName = "stripe"

// Client implements service.Subscriber on top of the Stripe API.
type Client struct {
	api *client.API
}

// NewClient returns a Client authenticated with secretKey. A nil backends
// uses Stripe's default endpoints.
func NewClient(secretKey string, backends *stripe.Backends) *Client {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &Client{api: api}
}

// CreateSubscription starts an incomplete subscription so the caller can
// confirm the first payment client-side with the returned secret.
func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID string) (domain.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.AddExpand("latest_invoice.payment_intent")
	params.Context = ctx

	sub, err := c.api.Subscriptions.New(params)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("billing.Client.CreateSubscription: %w", upstreamError(err))
	}

	out := domain.Subscription{SubscriptionID: sub.ID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		out.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return out, nil
}

// upstreamError keeps Stripe's status and a minimal error body. The request
// id is dropped from the body but kept in the wrapped error for logs.
func upstreamError(err error) error {
	var se *stripe.Error
	if !errors.As(err, &se) {
		return &domain.UpstreamError{Provider: ProviderName, Err: err}
	}
	body, _ := json.Marshal(map[string]string{
		"type":    string(se.Type),
		"code":    string(se.Code),
		"message": se.Msg,
	})
	return &domain.UpstreamError{
		Provider:   ProviderName,
		StatusCode: se.HTTPStatusCode,
		Body:       body,
		Err:        err,
	}
}
