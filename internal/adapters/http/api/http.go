// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DirectoryDependencies
	SubmissionDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	directoryHandler  *DirectoryHandler
	submissionHandler *SubmissionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		directoryHandler:  NewDirectoryHandler(deps),
		submissionHandler: NewSubmissionHandler(deps),
	}
}

// route is one /api endpoint.
type route struct {
	method   string
	path     string
	endpoint string
	handler  http.HandlerFunc
}

// Register attaches all HTTP routes to r.
//
// API routes live under "/api/". A path registered for other methods answers
// 405 with an Allow header, and any other "/api/" path answers a JSON 404.
// Paths that merely start with "/api", such as "/api-docs", are left to the
// other handlers on r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	d, sub := s.directoryHandler, s.submissionHandler
	routes := []route{
		{http.MethodGet, "/employees", "employees", d.HandleListEmployees},
		{http.MethodGet, "/employees/{id}", "employee", d.HandleGetEmployee},
		{http.MethodGet, "/tasks/pending", "pending_tasks", d.HandlePendingTasks},
		{http.MethodGet, "/managers", "managers", d.HandleListManagers},
		{http.MethodGet, "/teams", "teams", d.HandleListTeams},
		{http.MethodGet, "/teams/{id}", "team", d.HandleGetTeam},
		{http.MethodGet, "/projects", "projects", d.HandleListProjects},
		{http.MethodGet, "/charts/teams", "team_charts", d.HandleTeamCharts},
		{http.MethodPost, "/teams", "create_team", sub.HandleCreateTeam},
		{http.MethodPost, "/projects/assign", "assign_project", sub.HandleAssignProject},
		{http.MethodGet, "/notifications", "notifications", sub.HandleNotifications},
	}

	// The trailing slash keeps "/apiary" and "/api-docs" out of the subrouter.
	a := r.PathPrefix("/api/").Subrouter()
	allowed := make(map[string][]string)
	var paths []string
	for _, rt := range routes {
		a.HandleFunc(rt.path, MetricsMiddleware(rt.handler, rt.endpoint)).Methods(rt.method)
		if _, ok := allowed[rt.path]; !ok {
			paths = append(paths, rt.path)
		}
		allowed[rt.path] = append(allowed[rt.path], rt.method)
	}

	// Any-method fallbacks come after every method-bound route.
	for _, p := range paths {
		a.HandleFunc(p, methodNotAllowed(allowed[p]))
	}
	a.PathPrefix("/").HandlerFunc(notFound)
}

func methodNotAllowed(methods []string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), nil)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, ErrNotFound.Error(), nil)
}
