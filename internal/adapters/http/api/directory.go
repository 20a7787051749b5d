package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/types"
)

// DirectoryDependencies are the read operations over the HR directory.
type DirectoryDependencies interface {
	SearchEmployees(ctx context.Context, query string) []model.Employee
	Employee(ctx context.Context, id string) (model.Employee, error)
	PendingTasks(ctx context.Context) []model.Task
	Managers(ctx context.Context) []model.Manager
	Teams(ctx context.Context) ([]types.TeamView, error)
	Team(ctx context.Context, id string) (types.TeamView, error)
	Projects(ctx context.Context) []model.Project
	TeamCharts(ctx context.Context) types.TeamCharts
}

// DirectoryHandler serves employees, teams, projects and chart data.
type DirectoryHandler struct {
	deps DirectoryDependencies
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(deps DirectoryDependencies) *DirectoryHandler {
	return &DirectoryHandler{deps: deps}
}

// HandleListEmployees handles GET /api/employees?q=.
func (h *DirectoryHandler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.SearchEmployees(r.Context(), r.URL.Query().Get("q")))
}

// HandleGetEmployee handles GET /api/employees/{id}.
func (h *DirectoryHandler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_employee"
	e, err := h.deps.Employee(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// HandlePendingTasks handles GET /api/tasks/pending.
func (h *DirectoryHandler) HandlePendingTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.PendingTasks(r.Context()))
}

// HandleListManagers handles GET /api/managers.
func (h *DirectoryHandler) HandleListManagers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Managers(r.Context()))
}

// HandleListTeams handles GET /api/teams.
func (h *DirectoryHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_teams"
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGetTeam handles GET /api/teams/{id}.
func (h *DirectoryHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	team, err := h.deps.Team(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandleListProjects handles GET /api/projects.
func (h *DirectoryHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Projects(r.Context()))
}

// HandleTeamCharts handles GET /api/charts/teams.
func (h *DirectoryHandler) HandleTeamCharts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.TeamCharts(r.Context()))
}
