package site

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/floww/internal/adapters/repository"
	"github.com/okian/floww/internal/domain/charts"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/roster"
	"github.com/okian/floww/internal/domain/types"
)

// Tabs selectable through ?tab=.
const (
	tabTasks       = "tasks"
	tabEmployees   = "employees"
	tabDetails     = "details"
	tabPerformance = "performance"
)

const emptySearch = "No employees found matching your search."

type dashboardPage struct {
	layout
	Tab       string
	Rows      []roster.ReviewRow
	Employees []model.Employee
}

func (s *Site) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := r.URL.Query().Get("tab")
	if tab != tabEmployees {
		tab = tabTasks
	}
	s.render(w, r, http.StatusOK, pageDashboard, dashboardPage{
		layout:    s.chrome(r, "HR Dashboard", "Manage employees and review tasks"),
		Tab:       tab,
		Rows:      s.deps.ReviewRows(ctx),
		Employees: s.deps.Employees(ctx),
	})
}

type employeeListPage struct {
	layout
	Query     string
	Employees []model.Employee
	Empty     string
}

func (s *Site) handleEmployeeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.render(w, r, http.StatusOK, pageEmployeeList, employeeListPage{
		layout:    s.chrome(r, "Employee List", "View and manage employees in your organization"),
		Query:     q,
		Employees: s.deps.SearchEmployees(r.Context(), q),
		Empty:     emptySearch,
	})
}

// metric is one labelled score bar.
type metric struct {
	Label string
	Value int
}

type employeePage struct {
	layout
	Tab      string
	Employee model.Employee
	Initials string
	Metrics  []metric
	Teams    []types.TeamView
}

func (s *Site) handleEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e, err := s.deps.Employee(ctx, mux.Vars(r)["id"])
	if errors.Is(err, repository.ErrNotFound) {
		s.renderNotFound(w, r, "Employee not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	teams, err := s.deps.Teams(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	member := make([]types.TeamView, 0, 1)
	for _, t := range teams {
		for _, m := range t.Members {
			if m.ID == e.ID {
				member = append(member, t)
				break
			}
		}
	}

	tab := r.URL.Query().Get("tab")
	if tab != tabPerformance {
		tab = tabDetails
	}
	p := e.Performance
	s.render(w, r, http.StatusOK, pageEmployee, employeePage{
		layout:   s.chrome(r, e.Name, e.Position),
		Tab:      tab,
		Employee: e,
		Initials: e.Initials(),
		Metrics: []metric{
			{Label: "Productivity", Value: p.Productivity},
			{Label: "Quality", Value: p.Quality},
			{Label: "Teamwork", Value: p.Teamwork},
			{Label: "Innovation", Value: p.Innovation},
			{Label: "Overall", Value: p.Overall},
		},
		Teams: member,
	})
}

type teamCard struct {
	types.TeamView
	Radar template.HTML
}

type teamPerformancePage struct {
	layout
	ChartsJS  string
	Overall   template.HTML
	Breakdown template.HTML
	Teams     []teamCard
}

func (s *Site) handleTeamPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teams, err := s.deps.Teams(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tc := s.deps.TeamCharts(ctx)

	cards := make([]teamCard, 0, len(teams))
	for _, t := range teams {
		cards = append(cards, teamCard{
			TeamView: t,
			Radar:    radarChart("radar-"+t.Team.ID, charts.Radar(t.Team.Performance)),
		})
	}
	s.render(w, r, http.StatusOK, pageTeamPerformance, teamPerformancePage{
		layout:    s.chrome(r, "Team Performance", "Analyze and compare team metrics"),
		ChartsJS:  echartsJS,
		Overall:   barChart("chart-overall", tc.Bars, charts.OverallSeries),
		Breakdown: barChart("chart-breakdown", tc.Bars, charts.BreakdownSeries),
		Teams:     cards,
	})
}

type notFoundPage struct {
	layout
	Message string
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderNotFound(w, r, "Oops! Page not found")
}

func (s *Site) renderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	s.render(w, r, http.StatusNotFound, pageNotFound, notFoundPage{
		layout:  s.chrome(r, "404", msg),
		Message: msg,
	})
}
