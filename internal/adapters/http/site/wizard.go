package site

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/okian/floww/internal/adapters/mq/queue"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/types"
)

// Wizard form actions, carried by the pressed button.
const (
	actionNext   = "next"
	actionBack   = "back"
	actionSubmit = "submit"
)

type createTeamPage struct {
	layout
	Draft     string
	Wizard    forms.Wizard
	Managers  []model.Manager
	Employees []model.Employee
	Errors    forms.FieldErrors
	Message   string
}

// StepOne reports whether the team details step is showing.
func (p createTeamPage) StepOne() bool { return p.Wizard.Step != forms.StepProject }

type assignProjectPage struct {
	layout
	Form    forms.Assignment
	Teams   []types.TeamView
	Errors  forms.FieldErrors
	Message string
}

func (s *Site) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	id, wiz := s.deps.Wizard(r.Context(), r.URL.Query().Get("draft"))
	s.renderCreateTeam(w, r, http.StatusOK, id, wiz, nil)
}

func (s *Site) handleCreateTeamPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		id, wiz := s.deps.Wizard(ctx, "")
		s.renderCreateTeam(w, r, http.StatusBadRequest, id, wiz, err)
		return
	}
	id := r.PostForm.Get("draft")

	switch r.PostForm.Get("action") {
	case actionNext:
		id, wiz, err := s.deps.WizardNext(ctx, id, teamDetails(r.PostForm))
		s.renderCreateTeam(w, r, statusFor(err), id, wiz, err)
	case actionBack:
		id, wiz := s.deps.WizardBack(ctx, id, projectDetails(r.PostForm))
		s.renderCreateTeam(w, r, http.StatusOK, id, wiz, nil)
	case actionSubmit:
		receipt, id, wiz, err := s.deps.WizardSubmit(ctx, id, projectDetails(r.PostForm))
		if err != nil {
			s.renderCreateTeam(w, r, statusFor(err), id, wiz, err)
			return
		}
		http.Redirect(w, r, "/create-team?notice="+url.QueryEscape(receipt.NoticeID), http.StatusSeeOther)
	default:
		id, wiz := s.deps.Wizard(ctx, id)
		s.renderCreateTeam(w, r, http.StatusBadRequest, id, wiz, errUnknownAction)
	}
}

func (s *Site) renderCreateTeam(w http.ResponseWriter, r *http.Request, status int, id string, wiz forms.Wizard, err error) { //nolint:gocritic // hugeParam: view data
	ctx := r.Context()
	s.render(w, r, status, pageCreateTeam, createTeamPage{
		layout:    s.chrome(r, "Create Team", "Set up a new team and assign a project"),
		Draft:     id,
		Wizard:    wiz,
		Managers:  s.deps.Managers(ctx),
		Employees: s.deps.Employees(ctx),
		Errors:    forms.Fields(err),
		Message:   messageFor(err),
	})
}

func (s *Site) handleAssignProject(w http.ResponseWriter, r *http.Request) {
	s.renderAssignProject(w, r, http.StatusOK, forms.Assignment{}, nil)
}

func (s *Site) handleAssignProjectPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderAssignProject(w, r, http.StatusBadRequest, forms.Assignment{}, err)
		return
	}
	a := forms.Assignment{
		Team:           r.PostForm.Get("team"),
		ProjectDetails: projectDetails(r.PostForm),
	}
	receipt, err := s.deps.AssignProject(r.Context(), a)
	if err != nil {
		s.renderAssignProject(w, r, statusFor(err), a, err)
		return
	}
	http.Redirect(w, r, "/assign-project?notice="+url.QueryEscape(receipt.NoticeID), http.StatusSeeOther)
}

func (s *Site) renderAssignProject(w http.ResponseWriter, r *http.Request, status int, a forms.Assignment, err error) { //nolint:gocritic // hugeParam: view data
	teams, terr := s.deps.Teams(r.Context())
	if terr != nil {
		s.fail(w, r, terr)
		return
	}
	s.render(w, r, status, pageAssignProject, assignProjectPage{
		layout:  s.chrome(r, "Assign Project", "Assign a project to an existing team"),
		Form:    a,
		Teams:   teams,
		Errors:  forms.Fields(err),
		Message: messageFor(err),
	})
}

func teamDetails(v url.Values) forms.TeamDetails {
	return forms.TeamDetails{
		TeamID:    v.Get("teamId"),
		TeamName:  v.Get("teamName"),
		Manager:   v.Get("manager"),
		Employees: v["employees"],
	}
}

func projectDetails(v url.Values) forms.ProjectDetails {
	return forms.ProjectDetails{
		ProjectName: v.Get("projectName"),
		Description: v.Get("description"),
		Deadline:    v.Get("deadline"),
	}
}

var errUnknownAction = errors.New("unknown form action")

// statusFor maps a form outcome to the response status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, forms.ErrInvalidForm):
		return http.StatusUnprocessableEntity
	case errors.Is(err, forms.ErrWizardStep):
		return http.StatusConflict
	case errors.Is(err, queue.ErrBackpressure):
		return http.StatusTooManyRequests
	case errors.Is(err, queue.ErrQueueClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, errUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor is the banner shown above a form. Field errors are shown
// inline instead.
func messageFor(err error) string {
	switch {
	case err == nil, errors.Is(err, forms.ErrInvalidForm):
		return ""
	case errors.Is(err, forms.ErrWizardStep):
		return "Please complete the team details first."
	case errors.Is(err, queue.ErrBackpressure):
		return "Too many submissions right now. Please try again in a moment."
	case errors.Is(err, queue.ErrQueueClosed):
		return "Submissions are paused while the server shuts down."
	case errors.Is(err, errUnknownAction):
		return "Unknown form action."
	default:
		return "Something went wrong. Please try again."
	}
}
