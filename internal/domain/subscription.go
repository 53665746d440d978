package domain

// Subscription is the client-facing result of starting a paid subscription.
// ClientSecret lets the browser confirm the first payment; it is empty when
// the provider needs no confirmation.
type Subscription struct {
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret"`
}
