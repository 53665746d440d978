package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

const destinationSubject = "destination"

// listDestinations handles GET /api/recommendations.
func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	list, err := s.destinations.List(r.Context())
	if err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// searchDestinations handles GET /api/recommendations/search.
// Unknown budget or climate values are rejected before the store is hit.
func (s *Server) searchDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.DestinationFilter{
		Budget:   domain.BudgetLevel(q.Get("budget")),
		Climate:  domain.Climate(q.Get("climate")),
		Activity: q.Get("activity"),
		Keyword:  q.Get("q"),
	}
	if f.Budget != "" && !f.Budget.Valid() {
		badRequest(w, "budget must be one of: budget, moderate, luxury")
		return
	}
	if f.Climate != "" && !f.Climate.Valid() {
		badRequest(w, "climate must be one of: tropical, temperate, arid, continental, polar")
		return
	}

	list, err := s.destinations.Search(r.Context(), f)
	if err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// getDestination handles GET /api/recommendations/{id}.
func (s *Server) getDestination(w http.ResponseWriter, r *http.Request) {
	d, err := s.destinations.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// createDestination handles POST /api/recommendations.
func (s *Server) createDestination(w http.ResponseWriter, r *http.Request) {
	var d domain.Destination
	if !decodeBody(w, r, &d) {
		return
	}

	created, err := s.destinations.Create(r.Context(), d)
	if err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateDestination handles PUT /api/recommendations/{id}. The body replaces
// the stored document; the id in the path wins over any id in the body.
func (s *Server) updateDestination(w http.ResponseWriter, r *http.Request) {
	var d domain.Destination
	if !decodeBody(w, r, &d) {
		return
	}
	d.ID = chi.URLParam(r, "id")

	updated, err := s.destinations.Update(r.Context(), d)
	if err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteDestination handles DELETE /api/recommendations/{id}.
func (s *Server) deleteDestination(w http.ResponseWriter, r *http.Request) {
	if err := s.destinations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Destination deleted successfully"})
}
