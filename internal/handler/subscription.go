package handler

import (
	"net/http"
)

const billingSubject = "payment provider"

type subscriptionRequest struct {
	CustomerID string `json:"customerId"`
	PriceID    string `json:"priceId"`
}

// createSubscription handles POST /api/subscriptions.
func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	if s.subscriptions == nil {
		notConfigured(w, billingSubject)
		return
	}
	var body subscriptionRequest
	if !decodeBody(w, r, &body) {
		return
	}

	sub, err := s.subscriptions.Create(r.Context(), body.CustomerID, body.PriceID)
	if err != nil {
		s.fail(w, r, err, billingSubject)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
