package api

import (
	"context"
	"net/http"

	"github.com/okian/floww/internal/adapters/notify"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/internal/domain/types"
)

// SubmissionDependencies accept form payloads and expose the toast feed.
type SubmissionDependencies interface {
	CreateTeamProject(ctx context.Context, tp forms.TeamProject) (types.Receipt, error)
	AssignProject(ctx context.Context, a forms.Assignment) (types.Receipt, error)
	Notifications(ctx context.Context, limit int) []notify.Notification
}

// SubmissionHandler handles the create-team and assign-project endpoints.
type SubmissionHandler struct {
	deps SubmissionDependencies
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(deps SubmissionDependencies) *SubmissionHandler {
	return &SubmissionHandler{deps: deps}
}

// HandleCreateTeam handles POST /api/teams.
func (h *SubmissionHandler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_team"
	var req forms.TeamProject
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	receipt, err := h.deps.CreateTeamProject(r.Context(), req)
	if err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}

// HandleAssignProject handles POST /api/projects/assign.
func (h *SubmissionHandler) HandleAssignProject(w http.ResponseWriter, r *http.Request) {
	const op = "api.assign_project"
	var req forms.Assignment
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	receipt, err := h.deps.AssignProject(r.Context(), req)
	if err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}

// HandleNotifications handles GET /api/notifications?limit=N. Without a
// limit every retained notification is returned, newest first.
func (h *SubmissionHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "api.notifications"
	n, err := queryLimit(r)
	if err != nil {
		writeFailure(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Notifications(r.Context(), n))
}
