// Package site renders the HR dashboard screens server-side.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/floww/internal/adapters/http/api"
	"github.com/okian/floww/internal/adapters/notify"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/roster"
	"github.com/okian/floww/internal/domain/types"
	"github.com/okian/floww/pkg/logger"
)

// Dependencies required by the page handlers.
type Dependencies interface {
	Employees(ctx context.Context) []model.Employee
	SearchEmployees(ctx context.Context, query string) []model.Employee
	Employee(ctx context.Context, id string) (model.Employee, error)
	ReviewRows(ctx context.Context) []roster.ReviewRow
	Managers(ctx context.Context) []model.Manager
	Teams(ctx context.Context) ([]types.TeamView, error)
	TeamCharts(ctx context.Context) types.TeamCharts

	Wizard(ctx context.Context, id string) (string, forms.Wizard)
	WizardNext(ctx context.Context, id string, t forms.TeamDetails) (string, forms.Wizard, error)
	WizardBack(ctx context.Context, id string, p forms.ProjectDetails) (string, forms.Wizard)
	WizardSubmit(ctx context.Context, id string, p forms.ProjectDetails) (types.Receipt, string, forms.Wizard, error)
	AssignProject(ctx context.Context, a forms.Assignment) (types.Receipt, error)
	TakeNotification(ctx context.Context, id string) (notify.Notification, bool)
}

// Page template names.
const (
	pageDashboard       = "dashboard"
	pageCreateTeam      = "create_team"
	pageAssignProject   = "assign_project"
	pageEmployeeList    = "employee_list"
	pageEmployee        = "employee"
	pageTeamPerformance = "team_performance"
	pageNotFound        = "not_found"
)

var pageNames = []string{
	pageDashboard,
	pageCreateTeam,
	pageAssignProject,
	pageEmployeeList,
	pageEmployee,
	pageTeamPerformance,
	pageNotFound,
}

// navigation is the sidebar, in display order.
var navigation = []struct {
	Name string
	Href string
}{
	{Name: "Dashboard", Href: "/"},
	{Name: "Create Team", Href: "/create-team"},
	{Name: "Employee List", Href: "/employee-list"},
	{Name: "Team Performance", Href: "/team-performance"},
	{Name: "Settings", Href: "/settings"},
}

// Site serves the HTML pages.
type Site struct {
	deps   Dependencies
	pages  map[string]*template.Template
	logger logger.Logger
}

// New parses the embedded templates.
func New(deps Dependencies) (*Site, error) {
	const op = "site.New"

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %s: %w", op, ErrTemplate, name, err)
		}
		pages[name] = t
	}
	return &Site{
		deps:   deps,
		pages:  pages,
		logger: logger.Get().Named("site"),
	}, nil
}

// Register attaches the page routes to r and makes the site the router's
// not-found handler.
func (s *Site) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(FS())))

	r.HandleFunc("/", api.MetricsMiddleware(s.handleDashboard, "page_dashboard")).Methods(http.MethodGet)
	r.HandleFunc("/create-team", api.MetricsMiddleware(s.handleCreateTeam, "page_create_team")).Methods(http.MethodGet)
	r.HandleFunc("/create-team", api.MetricsMiddleware(s.handleCreateTeamPost, "page_create_team")).Methods(http.MethodPost)
	r.HandleFunc("/assign-project", api.MetricsMiddleware(s.handleAssignProject, "page_assign_project")).Methods(http.MethodGet)
	r.HandleFunc("/assign-project", api.MetricsMiddleware(s.handleAssignProjectPost, "page_assign_project")).Methods(http.MethodPost)
	r.HandleFunc("/employee-list", api.MetricsMiddleware(s.handleEmployeeList, "page_employee_list")).Methods(http.MethodGet)
	r.HandleFunc("/employee/{id}", api.MetricsMiddleware(s.handleEmployee, "page_employee")).Methods(http.MethodGet)
	r.HandleFunc("/team-performance", api.MetricsMiddleware(s.handleTeamPerformance, "page_team_performance")).Methods(http.MethodGet)

	r.NotFoundHandler = api.MetricsMiddleware(s.handleNotFound, "page_not_found")
}

type navItem struct {
	Name   string
	Href   string
	Active bool
}

// layout is the chrome shared by every page.
type layout struct {
	Title    string
	Subtitle string
	Nav      []navItem
	Toast    *notify.Notification
}

// chrome builds the layout for r. The entry whose href equals the request
// path is marked active, and ?notice= resolves to a toast once. A reload of
// the same URL renders without it.
func (s *Site) chrome(r *http.Request, title, subtitle string) layout {
	l := layout{Title: title, Subtitle: subtitle, Nav: make([]navItem, 0, len(navigation))}
	for _, n := range navigation {
		l.Nav = append(l.Nav, navItem{Name: n.Name, Href: n.Href, Active: n.Href == r.URL.Path})
	}
	if id := r.URL.Query().Get("notice"); id != "" {
		if n, ok := s.deps.TakeNotification(r.Context(), id); ok {
			l.Toast = &n
		}
	}
	return l
}

// render executes a page into a buffer so a template failure never leaves
// a half-written response.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := s.pages[name]
	if !ok {
		s.fail(w, r, fmt.Errorf("%w: unknown page %q", ErrRender, name))
		return
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %s: %w", ErrRender, name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "page failed",
		logger.String("path", r.URL.Path),
		logger.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
