package site_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/okian/floww/internal/adapters/http/site"
	service "github.com/okian/floww/internal/app"
	"github.com/okian/floww/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var draftField = regexp.MustCompile(`name="draft" value="([^"]*)"`)

func startSite() (*mux.Router, *service.Service) {
	svc := service.New(service.WithWorkerCount(1))
	So(svc.Start(context.Background()), ShouldBeNil)

	s, err := site.New(svc)
	So(err, ShouldBeNil)
	r := mux.NewRouter()
	s.Register(context.Background(), r)
	return r, svc
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return w
}

func post(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func draftOf(w *httptest.ResponseRecorder) string {
	m := draftField.FindStringSubmatch(w.Body.String())
	if m == nil {
		return ""
	}
	return m[1]
}

func TestPages(t *testing.T) {
	Convey("Given the site over the seed directory", t, func() {
		r, svc := startSite()
		Reset(svc.Stop)

		Convey("When the dashboard is opened", func() {
			w := get(r, "/")

			Convey("Then the review table lists pending tasks", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				body := w.Body.String()
				So(body, ShouldContainSubstring, "Tasks Pending Verification")
				So(body, ShouldContainSubstring, "Finish monthly reporting")
				So(body, ShouldContainSubstring, "Sprint planning")
				So(body, ShouldContainSubstring, `href="/employee/e1"`)
				So(body, ShouldNotContainSubstring, "Employee Overview")
			})

			Convey("And the dashboard entry is active", func() {
				So(w.Body.String(), ShouldContainSubstring, `class="nav-item active" aria-current="page">Dashboard</a>`)
				So(w.Body.String(), ShouldContainSubstring, `class="nav-item">Settings</a>`)
			})
		})

		Convey("When the employees tab is selected", func() {
			body := get(r, "/?tab=employees").Body.String()

			Convey("Then every employee card is shown", func() {
				So(body, ShouldContainSubstring, "Employee Overview")
				So(body, ShouldContainSubstring, "Sophia Miller")
				So(body, ShouldContainSubstring, `id="employee-e8"`)
				So(body, ShouldNotContainSubstring, "Tasks Pending Verification")
			})
		})

		Convey("When an unknown tab is selected", func() {
			body := get(r, "/?tab=bogus").Body.String()

			Convey("Then the tasks tab is shown", func() {
				So(body, ShouldContainSubstring, "Tasks Pending Verification")
			})
		})

		Convey("When the roster is searched", func() {
			body := get(r, "/employee-list?q=design").Body.String()

			Convey("Then only matching employees are listed", func() {
				So(body, ShouldContainSubstring, "Jane Smith")
				So(body, ShouldContainSubstring, "Sophia Miller")
				So(body, ShouldNotContainSubstring, "John Doe")
				So(body, ShouldContainSubstring, `value="design"`)
			})
		})

		Convey("When a search matches nobody", func() {
			body := get(r, "/employee-list?q=zzz").Body.String()

			Convey("Then the empty message is shown", func() {
				So(body, ShouldContainSubstring, "No employees found matching your search.")
			})
		})

		Convey("When an employee is opened", func() {
			w := get(r, "/employee/e1")
			body := w.Body.String()

			Convey("Then the details tab is shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "Employee Information")
				So(body, ShouldContainSubstring, `<span class="avatar">JD</span>`)
				So(body, ShouldContainSubstring, "Finish monthly reporting")
				So(body, ShouldContainSubstring, "Core Platform Team")
				So(body, ShouldNotContainSubstring, "Performance Summary")
			})
		})

		Convey("When the performance tab is opened", func() {
			body := get(r, "/employee/e1?tab=performance").Body.String()

			Convey("Then the score bars are shown", func() {
				So(body, ShouldContainSubstring, "Performance Summary")
				So(body, ShouldContainSubstring, "Productivity")
				So(body, ShouldContainSubstring, "Innovation")
				So(body, ShouldNotContainSubstring, "Employee Information")
			})
		})

		Convey("When an unknown employee is opened", func() {
			w := get(r, "/employee/does-not-exist")

			Convey("Then the not-found page is rendered", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "Employee not found")
				So(w.Body.String(), ShouldContainSubstring, "Return to Home")
			})
		})

		Convey("When the settings link is followed", func() {
			w := get(r, "/settings")

			Convey("Then it falls through to not-found with the entry active", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "Oops! Page not found")
				So(w.Body.String(), ShouldContainSubstring, `class="nav-item active" aria-current="page">Settings</a>`)
			})
		})

		Convey("When team performance is opened", func() {
			w := get(r, "/team-performance")
			body := w.Body.String()

			Convey("Then the charts and team cards are drawn", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "Overall Performance")
				So(body, ShouldContainSubstring, "Performance Breakdown")
				So(strings.Count(body, `class="chart radar"`), ShouldEqual, 3)
				So(body, ShouldContainSubstring, "echarts.min.js")
				So(body, ShouldContainSubstring, `id="chart-overall"`)
				So(body, ShouldContainSubstring, `id="chart-breakdown"`)
				So(body, ShouldContainSubstring, `id="radar-team1"`)
				So(body, ShouldNotContainSubstring, "<svg")
				So(body, ShouldContainSubstring, "Managed by Alice Johnson")
				So(body, ShouldContainSubstring, "4 members")
				So(body, ShouldContainSubstring, "1 active")
				So(body, ShouldContainSubstring, "On-Time Delivery")
			})
		})

		Convey("When the stylesheet is requested", func() {
			w := get(r, "/static/app.css")

			Convey("Then it is served from the embedded files", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "text/css")
			})
		})
	})
}

func TestCreateTeamWizard(t *testing.T) {
	Convey("Given the site over the seed directory", t, func() {
		r, svc := startSite()
		Reset(svc.Stop)

		team := url.Values{
			"action":    {"next"},
			"teamId":    {"team9"},
			"teamName":  {"Growth Team"},
			"manager":   {"m4"},
			"employees": {"e6", "e7"},
		}

		Convey("When the wizard is opened", func() {
			w := get(r, "/create-team")

			Convey("Then step one is shown without a draft", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Team Information")
				So(w.Body.String(), ShouldContainSubstring, "Alice Johnson")
				So(draftOf(w), ShouldEqual, "")
			})
		})

		Convey("When step one has no employees", func() {
			bad := url.Values{"action": {"next"}, "teamId": {"team9"}, "teamName": {"Growth"}, "manager": {"m4"}}
			w := post(r, "/create-team", bad)

			Convey("Then it is rejected inline", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(w.Body.String(), ShouldContainSubstring, "At least one employee is required")
				So(w.Body.String(), ShouldContainSubstring, "Team Information")
				So(w.Body.String(), ShouldContainSubstring, `value="Growth"`)
			})
		})

		Convey("When step one is valid", func() {
			w := post(r, "/create-team", team)
			draft := draftOf(w)

			Convey("Then step two is shown with a draft id", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `id="projectName"`)
				So(w.Body.String(), ShouldNotContainSubstring, "Team Information")
				So(draft, ShouldNotBeEmpty)
			})

			Convey("And going back keeps the team details", func() {
				back := post(r, "/create-team", url.Values{
					"action":      {"back"},
					"draft":       {draft},
					"projectName": {"Launch"},
				})
				So(back.Code, ShouldEqual, http.StatusOK)
				So(back.Body.String(), ShouldContainSubstring, `value="team9"`)
				So(back.Body.String(), ShouldContainSubstring, `value="e6" checked`)
				So(back.Body.String(), ShouldContainSubstring, `<option value="m4" selected>`)
			})

			Convey("And an incomplete project is rejected", func() {
				bad := post(r, "/create-team", url.Values{"action": {"submit"}, "draft": {draft}, "projectName": {"Launch"}})
				So(bad.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(bad.Body.String(), ShouldContainSubstring, "Project description is required")
				So(bad.Body.String(), ShouldContainSubstring, `value="Launch"`)
				So(draftOf(bad), ShouldEqual, draft)
			})

			Convey("And submitting redirects to a toast", func() {
				done := post(r, "/create-team", url.Values{
					"action":      {"submit"},
					"draft":       {draft},
					"projectName": {"Launch"},
					"description": {"Go to market"},
					"deadline":    {"2025-09-01"},
				})
				So(done.Code, ShouldEqual, http.StatusSeeOther)
				loc := done.Header().Get("Location")
				So(loc, ShouldStartWith, "/create-team?notice=")

				next := get(r, loc)
				So(next.Body.String(), ShouldContainSubstring, "Team and project created!")
				So(next.Body.String(), ShouldContainSubstring, "Growth Team")
				So(next.Body.String(), ShouldContainSubstring, "Team Information")
				So(draftOf(next), ShouldEqual, "")

				again := get(r, loc)
				So(again.Code, ShouldEqual, http.StatusOK)
				So(again.Body.String(), ShouldNotContainSubstring, "Team and project created!")
			})
		})

		Convey("When submitting without finishing step one", func() {
			w := post(r, "/create-team", url.Values{"action": {"submit"}, "projectName": {"Launch"}})

			Convey("Then the wizard asks for the team first", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(w.Body.String(), ShouldContainSubstring, "Please complete the team details first.")
			})
		})

		Convey("When the action is unknown", func() {
			w := post(r, "/create-team", url.Values{"action": {"publish"}})

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "Unknown form action.")
			})
		})
	})
}

func TestAssignProject(t *testing.T) {
	Convey("Given the site over the seed directory", t, func() {
		r, svc := startSite()
		Reset(svc.Stop)

		Convey("When the form is opened", func() {
			w := get(r, "/assign-project")

			Convey("Then every team is selectable", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `<option value="team1">Core Platform Team</option>`)
				So(w.Body.String(), ShouldContainSubstring, "Product Management Team")
			})
		})

		Convey("When a valid assignment is posted", func() {
			w := post(r, "/assign-project", url.Values{
				"team":        {"team3"},
				"projectName": {"Roadmap"},
				"description": {"Plan the next quarter"},
				"deadline":    {"2025-07-15"},
			})

			Convey("Then the next page shows the toast", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				next := get(r, w.Header().Get("Location"))
				So(next.Body.String(), ShouldContainSubstring, "Project assigned!")
				So(next.Body.String(), ShouldContainSubstring, "Roadmap")
			})
		})

		Convey("When the team is unknown", func() {
			w := post(r, "/assign-project", url.Values{
				"team":        {"team404"},
				"projectName": {"Roadmap"},
				"description": {"Plan"},
				"deadline":    {"2025-07-15"},
			})

			Convey("Then the form is shown again with the error", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(w.Body.String(), ShouldContainSubstring, "Unknown team")
				So(w.Body.String(), ShouldContainSubstring, `value="Roadmap"`)
			})
		})
	})
}

func TestRegisterWithNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		s, err := site.New(service.New())
		So(err, ShouldBeNil)

		Convey("Then registering panics", func() {
			So(func() { s.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
