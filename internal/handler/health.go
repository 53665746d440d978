package handler

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guy32807/travel-recommentation/spec"
)

type healthResponse struct {
	Status      string    `json:"status"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}

// getHealth handles GET /api/health.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "OK",
		Environment: s.environment,
		Timestamp:   s.now().UTC(),
	})
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type debugResponse struct {
	Status     string          `json:"status"`
	Port       string          `json:"port"`
	Routes     []routeInfo     `json:"routes"`
	Time       time.Time       `json:"time"`
	Configured map[string]bool `json:"configured"`
}

// getDebug handles GET /api/debug. It is only registered outside production.
func (s *Server) getDebug(w http.ResponseWriter, r *http.Request) {
	var routes []routeInfo
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.Replace(route, "/*/", "/", -1)
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		routes = append(routes, routeInfo{Method: method, Path: route})
		return nil
	})
	if err != nil {
		s.fail(w, r, err, "route table")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	configured := s.configured
	if configured == nil {
		configured = map[string]bool{}
	}
	writeJSON(w, http.StatusOK, debugResponse{
		Status:     "Server is running",
		Port:       s.port,
		Routes:     routes,
		Time:       s.now().UTC(),
		Configured: configured,
	})
}

// getOpenAPI handles GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
