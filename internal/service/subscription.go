package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// Subscriber creates a recurring subscription with the payment provider.
type Subscriber interface {
	CreateSubscription(ctx context.Context, customerID, priceID string) (domain.Subscription, error)
}

// SubscriptionService validates subscription requests before they reach the
// payment provider.
type SubscriptionService struct {
	billing Subscriber
}

// NewSubscriptionService constructs a SubscriptionService. A nil Subscriber
// means payments are not configured and every call fails with
// domain.ErrNotConfigured.
func NewSubscriptionService(billing Subscriber) *SubscriptionService {
	return &SubscriptionService{billing: billing}
}

// Create starts a subscription for customerID on priceID.
func (s *SubscriptionService) Create(ctx context.Context, customerID, priceID string) (domain.Subscription, error) {
	customerID = strings.TrimSpace(customerID)
	priceID = strings.TrimSpace(priceID)

	var missing []string
	if customerID == "" {
		missing = append(missing, "customerId is required")
	}
	if priceID == "" {
		missing = append(missing, "priceId is required")
	}
	if len(missing) > 0 {
		return domain.Subscription{}, fmt.Errorf("service.SubscriptionService.Create: %w: %s",
			domain.ErrValidation, strings.Join(missing, "; "))
	}
	if s.billing == nil {
		return domain.Subscription{}, fmt.Errorf("service.SubscriptionService.Create: %w", domain.ErrNotConfigured)
	}

	sub, err := s.billing.CreateSubscription(ctx, customerID, priceID)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("service.SubscriptionService.Create: %w", err)
	}
	return sub, nil
}
