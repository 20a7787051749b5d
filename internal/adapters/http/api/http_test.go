package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/okian/floww/internal/adapters/http/api"
	"github.com/okian/floww/internal/adapters/mq/queue"
	"github.com/okian/floww/internal/adapters/notify"
	"github.com/okian/floww/internal/adapters/repository"
	"github.com/okian/floww/internal/domain/charts"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/roster"
	"github.com/okian/floww/internal/domain/types"
	"github.com/okian/floww/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeDeps struct {
	employees []model.Employee
	teams     []model.Team

	submitErr error
	created   []forms.TeamProject
	assigned  []forms.Assignment
	limit     int
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{
		employees: []model.Employee{
			{ID: "e1", Name: "John Doe", Position: "Senior Designer", Department: "Design",
				Tasks: []model.Task{{ID: "t1", Name: "Review design", AssignedTo: "e1", Status: model.TaskPending}}},
			{ID: "e2", Name: "Jane Smith", Position: "Developer", Department: "Engineering"},
		},
		teams: []model.Team{
			{ID: "team1", Name: "Design Team", ManagerID: "m1", EmployeeIDs: []string{"e1"},
				Performance: model.TeamPerformance{Overall: 85}},
		},
	}
}

func (f *fakeDeps) SearchEmployees(_ context.Context, q string) []model.Employee {
	return roster.Search(f.employees, q)
}

func (f *fakeDeps) Employee(_ context.Context, id string) (model.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Employee{}, fmt.Errorf("repository.Employee %q: %w", id, repository.ErrNotFound)
}

func (f *fakeDeps) PendingTasks(_ context.Context) []model.Task {
	return roster.PendingTasks(f.employees)
}

func (f *fakeDeps) Managers(_ context.Context) []model.Manager {
	return []model.Manager{{ID: "m1", Name: "Sarah Johnson"}}
}

func (f *fakeDeps) Teams(ctx context.Context) ([]types.TeamView, error) {
	out := make([]types.TeamView, 0, len(f.teams))
	for _, t := range f.teams {
		v, err := f.Team(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeDeps) Team(_ context.Context, id string) (types.TeamView, error) {
	for _, t := range f.teams {
		if t.ID == id {
			return types.TeamView{Team: t, Members: f.employees[:1], Projects: []model.Project{}}, nil
		}
	}
	return types.TeamView{}, fmt.Errorf("service.Team: %w", repository.ErrNotFound)
}

func (f *fakeDeps) Projects(_ context.Context) []model.Project {
	return []model.Project{{ID: "p1", Name: "Website Redesign", TeamID: "team1"}}
}

func (f *fakeDeps) TeamCharts(_ context.Context) types.TeamCharts {
	out := types.TeamCharts{Bars: charts.Bars(f.teams)}
	for _, t := range f.teams {
		out.Teams = append(out.Teams, types.TeamChart{
			TeamID:   t.ID,
			TeamName: t.Name,
			Overall:  t.Performance.Overall,
			Radar:    charts.Radar(t.Performance),
		})
	}
	return out
}

func (f *fakeDeps) CreateTeamProject(_ context.Context, tp forms.TeamProject) (types.Receipt, error) {
	if f.submitErr != nil {
		return types.Receipt{}, f.submitErr
	}
	f.created = append(f.created, tp)
	toast := tp.Toast()
	return types.Receipt{SubmissionID: "s1", NoticeID: "n1", Title: toast.Title, Description: toast.Description}, nil
}

func (f *fakeDeps) AssignProject(_ context.Context, a forms.Assignment) (types.Receipt, error) {
	if f.submitErr != nil {
		return types.Receipt{}, f.submitErr
	}
	f.assigned = append(f.assigned, a)
	toast := a.Toast()
	return types.Receipt{SubmissionID: "s2", NoticeID: "n2", Title: toast.Title, Description: toast.Description}, nil
}

func (f *fakeDeps) Notifications(_ context.Context, limit int) []notify.Notification {
	f.limit = limit
	return []notify.Notification{{ID: "n1", Title: "Success!"}}
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]any {
	return map[string]any{"started": true, "queueLength": 0}
}

func newRouter(deps *fakeDeps) *mux.Router {
	r := mux.NewRouter()
	api.NewServer(deps, fakeStats{}).Register(context.Background(), r)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func decodeEnvelope(w *httptest.ResponseRecorder) envelope {
	var e envelope
	So(json.Unmarshal(w.Body.Bytes(), &e), ShouldBeNil)
	return e
}

const teamBody = `{"teamId":"team9","teamName":"Research","manager":"m1","employees":["e1","e2"],` +
	`"projectName":"Atlas","description":"Discovery work","deadline":"2025-06-30"}`

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newFakeDeps()
		r := newRouter(deps)

		Convey("Then health serves the metrics exposition", func() {
			w := serve(r, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And stats serves the provider's map as JSON", func() {
			w := serve(r, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And unknown API paths get a JSON 404", func() {
			w := serve(r, http.MethodGet, "/api/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeEnvelope(w).Code, ShouldEqual, "not_found")
		})

		Convey("And a wrong method gets a 405", func() {
			w := serve(r, http.MethodDelete, "/api/teams", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, POST")
			So(decodeEnvelope(w).Code, ShouldEqual, "method_not_allowed")
		})

		Convey("And a wrong method on a templated path gets a 405", func() {
			w := serve(r, http.MethodDelete, "/api/employees/e1", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET")
		})

		Convey("And a GET on a post-only path gets a 405", func() {
			w := serve(r, http.MethodGet, "/api/projects/assign", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "POST")
		})

		Convey("And an unknown path under /api/ stays a 404 for any method", func() {
			w := serve(r, http.MethodDelete, "/api/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeEnvelope(w).Code, ShouldEqual, "not_found")
		})

		Convey("And paths that only share the /api prefix are not claimed", func() {
			for _, target := range []string{"/apiary", "/api-docs", "/api-reference"} {
				w := serve(r, http.MethodGet, target, "")
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Header().Get("Content-Type"), ShouldNotContainSubstring, "application/json")
			}
		})
	})

	Convey("Given a nil router", t, func() {
		So(func() {
			api.NewServer(newFakeDeps(), fakeStats{}).Register(context.Background(), nil)
		}, ShouldPanic)
	})
}

func TestDirectoryEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		r := newRouter(newFakeDeps())

		Convey("When listing employees without a query", func() {
			w := serve(r, http.MethodGet, "/api/employees", "")
			var got []model.Employee
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then every employee is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(got, ShouldHaveLength, 2)
			})
		})

		Convey("When searching employees", func() {
			w := serve(r, http.MethodGet, "/api/employees?q=DESIGN", "")
			var got []model.Employee
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then matching is case insensitive", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].ID, ShouldEqual, "e1")
			})
		})

		Convey("When a search matches nobody", func() {
			w := serve(r, http.MethodGet, "/api/employees?q=zzz", "")

			Convey("Then an empty array is returned", func() {
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When fetching a known employee", func() {
			w := serve(r, http.MethodGet, "/api/employees/e1", "")
			var got model.Employee
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then the employee is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(got.Name, ShouldEqual, "John Doe")
				So(got.Tasks, ShouldHaveLength, 1)
			})
		})

		Convey("When fetching an unknown employee", func() {
			w := serve(r, http.MethodGet, "/api/employees/e404", "")

			Convey("Then a not-found envelope is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				e := decodeEnvelope(w)
				So(e.Code, ShouldEqual, "not_found")
				So(e.Message, ShouldEqual, "not found")
				So(e.Message, ShouldNotContainSubstring, "e404")
			})
		})

		Convey("When listing pending tasks", func() {
			w := serve(r, http.MethodGet, "/api/tasks/pending", "")
			var got []model.Task
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then only pending tasks are returned", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].ID, ShouldEqual, "t1")
			})
		})

		Convey("When reading teams", func() {
			list := serve(r, http.MethodGet, "/api/teams", "")
			one := serve(r, http.MethodGet, "/api/teams/team1", "")
			missing := serve(r, http.MethodGet, "/api/teams/team9", "")

			Convey("Then teams resolve and unknown ids are 404", func() {
				So(list.Code, ShouldEqual, http.StatusOK)
				So(one.Code, ShouldEqual, http.StatusOK)
				So(one.Body.String(), ShouldContainSubstring, `"managerId":"m1"`)
				So(missing.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When reading managers, projects and charts", func() {
			managers := serve(r, http.MethodGet, "/api/managers", "")
			projects := serve(r, http.MethodGet, "/api/projects", "")
			chart := serve(r, http.MethodGet, "/api/charts/teams", "")
			var tc types.TeamCharts
			So(json.Unmarshal(chart.Body.Bytes(), &tc), ShouldBeNil)

			Convey("Then each is served as JSON", func() {
				So(managers.Code, ShouldEqual, http.StatusOK)
				So(projects.Body.String(), ShouldContainSubstring, `"team":"team1"`)
				So(tc.Bars, ShouldHaveLength, 1)
				So(tc.Teams[0].Radar, ShouldHaveLength, 5)
				So(tc.Teams[0].Radar[4].Subject, ShouldEqual, "Overall")
			})
		})
	})
}

func TestSubmissionEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newFakeDeps()
		r := newRouter(deps)

		Convey("When a team and project are posted", func() {
			w := serve(r, http.MethodPost, "/api/teams", teamBody)
			var got types.Receipt
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then the submission is accepted with its toast", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(got.Title, ShouldEqual, "Team and project created!")
				So(got.Description, ShouldEqual, `Created team "Research" with project "Atlas"`)
				So(deps.created, ShouldHaveLength, 1)
				So(deps.created[0].Employees, ShouldResemble, []string{"e1", "e2"})
				So(deps.created[0].Deadline, ShouldEqual, "2025-06-30")
			})
		})

		Convey("When a project assignment is posted", func() {
			body := `{"team":"team1","projectName":"Atlas","description":"Discovery","deadline":"2025-06-30"}`
			w := serve(r, http.MethodPost, "/api/projects/assign", body)

			Convey("Then it is accepted", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.assigned, ShouldHaveLength, 1)
				So(deps.assigned[0].Team, ShouldEqual, "team1")
			})
		})

		Convey("When the body is not JSON", func() {
			w := serve(r, http.MethodPost, "/api/teams", "{")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeEnvelope(w).Code, ShouldEqual, "bad_request")
				So(deps.created, ShouldBeEmpty)
			})
		})

		Convey("When the body has an unknown field", func() {
			w := serve(r, http.MethodPost, "/api/projects/assign", `{"team":"team1","budget":10}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When validation fails", func() {
			deps.submitErr = fmt.Errorf("wrapped: %w", &forms.ValidationError{
				Fields: forms.FieldErrors{"teamName": "Team name is required"},
			})
			w := serve(r, http.MethodPost, "/api/teams", teamBody)
			e := decodeEnvelope(w)

			Convey("Then the field errors are returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(e.Code, ShouldEqual, "invalid_form")
				So(e.Fields, ShouldResemble, map[string]string{"teamName": "Team name is required"})
			})
		})

		Convey("When the queue is full", func() {
			deps.submitErr = fmt.Errorf("service.accept: %w", queue.ErrBackpressure)
			w := serve(r, http.MethodPost, "/api/teams", teamBody)

			Convey("Then backpressure is reported", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(decodeEnvelope(w).Code, ShouldEqual, "backpressure")
			})
		})

		Convey("When the queue is closed", func() {
			deps.submitErr = fmt.Errorf("service.accept: %w", queue.ErrQueueClosed)
			w := serve(r, http.MethodPost, "/api/projects/assign",
				`{"team":"team1","projectName":"Atlas","description":"d","deadline":"2025-06-30"}`)

			Convey("Then the service is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeEnvelope(w).Message, ShouldEqual, queue.ErrQueueClosed.Error())
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.submitErr = fmt.Errorf("service.accept: dial tcp 10.0.0.7:5432: %w", io.ErrUnexpectedEOF)
			w := serve(r, http.MethodPost, "/api/teams", teamBody)

			Convey("Then a generic internal error is returned without the cause", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				e := decodeEnvelope(w)
				So(e.Code, ShouldEqual, "internal_error")
				So(e.Message, ShouldEqual, http.StatusText(http.StatusInternalServerError))
				So(w.Body.String(), ShouldNotContainSubstring, "10.0.0.7")
				So(w.Body.String(), ShouldNotContainSubstring, "service.accept")
			})
		})

		Convey("When listing notifications with a limit", func() {
			w := serve(r, http.MethodGet, "/api/notifications?limit=2", "")

			Convey("Then the limit is passed through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.limit, ShouldEqual, 2)
			})
		})

		Convey("When the limit is malformed", func() {
			w := serve(r, http.MethodGet, "/api/notifications?limit=-1", "")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRequestLogger(t *testing.T) {
	Convey("Given a handler behind the request logger", t, func() {
		h := api.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		Convey("When a request has no id", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			Convey("Then one is generated", func() {
				So(w.Code, ShouldEqual, http.StatusTeapot)
				So(w.Header().Get(api.RequestIDHeader), ShouldHaveLength, 36)
			})
		})

		Convey("When a request carries an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc")
			})
		})
	})
}
