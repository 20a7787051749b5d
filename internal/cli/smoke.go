package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/floww/internal/adapters/notify"
	"github.com/okian/floww/internal/domain/charts"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/roster"
	"github.com/okian/floww/internal/domain/types"
	"github.com/okian/floww/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	defaultBaseURL = "http://localhost:9080"
	searchQuery    = "design"
	knownEmployee  = "e1"
	unknownID      = "zzz"
)

type smokeCheck struct {
	name string
	run  func(ctx context.Context, c *httpClient) error
}

// smokeChecks are run in order against a live server.
var smokeChecks = []smokeCheck{
	{"pending tasks keep employee and task order", checkPendingTasks},
	{"search matches name, position or department", checkSearch},
	{"employee lookup by id", checkEmployeeLookup},
	{"team creation requires an employee", checkTeamValidation},
	{"team creation is accepted and notified", checkTeamAccepted},
	{"radar data mirrors team performance", checkRadar},
	{"unknown employee page is not found", checkEmployeePage},
	{"unknown route renders not found", checkUnknownRoute},
}

func newSmokeCommand(o *options) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check a running server over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			return runSmoke(ctx, cmd, newHTTPClient(baseURL, o.timeout))
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", defaultBaseURL, "Base URL of the server")
	return cmd
}

func runSmoke(ctx context.Context, cmd *cobra.Command, c *httpClient) error {
	log := logger.Named("smoke")
	out := cmd.OutOrStdout()
	start := time.Now()
	log.Info(ctx, "starting smoke run", logger.String("baseURL", c.baseURL), logger.Int("checks", len(smokeChecks)))

	failed := 0
	for _, check := range smokeChecks {
		if err := check.run(ctx, c); err != nil {
			failed++
			log.Warn(ctx, "check failed", logger.String("check", check.name), logger.Error(err))
			_, _ = fmt.Fprintf(out, "FAIL  %s: %v\n", check.name, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "PASS  %s\n", check.name)
	}

	_, _ = fmt.Fprintf(out, "\n%d passed, %d failed in %s\n", len(smokeChecks)-failed, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks failed", ErrSmokeFailed, failed, len(smokeChecks))
	}
	return nil
}

func checkPendingTasks(ctx context.Context, c *httpClient) error {
	var employees []model.Employee
	if err := c.getJSON(ctx, "/api/employees", http.StatusOK, &employees); err != nil {
		return err
	}
	var pending []model.Task
	if err := c.getJSON(ctx, "/api/tasks/pending", http.StatusOK, &pending); err != nil {
		return err
	}
	for _, t := range pending {
		if t.Status != model.TaskPending {
			return fmt.Errorf("%w: task %s has status %q", ErrCheckFailed, t.ID, t.Status)
		}
	}
	return sameIDs("pending tasks", taskIDs(roster.PendingTasks(employees)), taskIDs(pending))
}

func checkSearch(ctx context.Context, c *httpClient) error {
	var all, found []model.Employee
	if err := c.getJSON(ctx, "/api/employees", http.StatusOK, &all); err != nil {
		return err
	}
	if err := c.getJSON(ctx, "/api/employees?q="+searchQuery, http.StatusOK, &found); err != nil {
		return err
	}
	for _, e := range found {
		hay := strings.ToLower(e.Name + "\n" + e.Position + "\n" + e.Department)
		if !strings.Contains(hay, searchQuery) {
			return fmt.Errorf("%w: %s does not match %q", ErrCheckFailed, e.ID, searchQuery)
		}
	}
	return sameIDs("search results", employeeIDs(roster.Search(all, searchQuery)), employeeIDs(found))
}

func checkEmployeeLookup(ctx context.Context, c *httpClient) error {
	var e model.Employee
	if err := c.getJSON(ctx, "/api/employees/"+knownEmployee, http.StatusOK, &e); err != nil {
		return err
	}
	if e.ID != knownEmployee {
		return fmt.Errorf("%w: lookup %s returned %s", ErrCheckFailed, knownEmployee, e.ID)
	}
	var apiErr apiError
	if err := c.getJSON(ctx, "/api/employees/"+unknownID, http.StatusNotFound, &apiErr); err != nil {
		return err
	}
	if apiErr.Code != "not_found" {
		return fmt.Errorf("%w: unknown employee returned code %q", ErrCheckFailed, apiErr.Code)
	}
	return nil
}

func checkTeamValidation(ctx context.Context, c *httpClient) error {
	tp, err := teamProject(ctx, c)
	if err != nil {
		return err
	}
	tp.Employees = nil

	var apiErr apiError
	if err := c.postJSON(ctx, "/api/teams", tp, http.StatusBadRequest, &apiErr); err != nil {
		return err
	}
	if _, ok := apiErr.Fields["employees"]; !ok {
		return fmt.Errorf("%w: no employees field error in %v", ErrCheckFailed, apiErr.Fields)
	}
	return nil
}

func checkTeamAccepted(ctx context.Context, c *httpClient) error {
	tp, err := teamProject(ctx, c)
	if err != nil {
		return err
	}
	var receipt types.Receipt
	if err := c.postJSON(ctx, "/api/teams", tp, http.StatusAccepted, &receipt); err != nil {
		return err
	}
	if want := tp.Toast().Title; receipt.Title != want {
		return fmt.Errorf("%w: toast title %q, want %q", ErrCheckFailed, receipt.Title, want)
	}

	var notices []notify.Notification
	if err := c.getJSON(ctx, "/api/notifications", http.StatusOK, &notices); err != nil {
		return err
	}
	for _, n := range notices {
		if n.ID == receipt.NoticeID {
			return nil
		}
	}
	return fmt.Errorf("%w: notification %s not listed", ErrCheckFailed, receipt.NoticeID)
}

func checkRadar(ctx context.Context, c *httpClient) error {
	var teams []types.TeamView
	if err := c.getJSON(ctx, "/api/teams", http.StatusOK, &teams); err != nil {
		return err
	}
	var data types.TeamCharts
	if err := c.getJSON(ctx, "/api/charts/teams", http.StatusOK, &data); err != nil {
		return err
	}
	if len(data.Teams) != len(teams) {
		return fmt.Errorf("%w: %d radars for %d teams", ErrCheckFailed, len(data.Teams), len(teams))
	}
	for i, tv := range teams {
		got, want := data.Teams[i].Radar, charts.Radar(tv.Team.Performance)
		if len(got) != len(want) {
			return fmt.Errorf("%w: team %s has %d axes", ErrCheckFailed, tv.Team.ID, len(got))
		}
		for j := range want {
			if got[j] != want[j] {
				return fmt.Errorf("%w: team %s axis %q is %+v, want %+v", ErrCheckFailed, tv.Team.ID, want[j].Subject, got[j], want[j])
			}
		}
	}
	return nil
}

func checkEmployeePage(ctx context.Context, c *httpClient) error {
	body, err := c.getText(ctx, "/employee/does-not-exist", http.StatusNotFound)
	if err != nil {
		return err
	}
	if !strings.Contains(body, "Employee not found") {
		return fmt.Errorf("%w: not-found message missing", ErrCheckFailed)
	}
	return nil
}

func checkUnknownRoute(ctx context.Context, c *httpClient) error {
	body, err := c.getText(ctx, "/settings", http.StatusNotFound)
	if err != nil {
		return err
	}
	if !strings.Contains(body, "Return to Home") {
		return fmt.Errorf("%w: home link missing", ErrCheckFailed)
	}
	return nil
}

// apiError is the JSON error envelope of the API.
type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// teamProject builds a valid payload from the first manager and employee.
func teamProject(ctx context.Context, c *httpClient) (forms.TeamProject, error) {
	var managers []model.Manager
	if err := c.getJSON(ctx, "/api/managers", http.StatusOK, &managers); err != nil {
		return forms.TeamProject{}, err
	}
	var employees []model.Employee
	if err := c.getJSON(ctx, "/api/employees", http.StatusOK, &employees); err != nil {
		return forms.TeamProject{}, err
	}
	if len(managers) == 0 || len(employees) == 0 {
		return forms.TeamProject{}, fmt.Errorf("%w: directory has no managers or employees", ErrCheckFailed)
	}

	id := "smoke-" + uuid.NewString()[:8]
	return forms.TeamProject{
		TeamDetails: forms.TeamDetails{
			TeamID:    id,
			TeamName:  "Smoke " + id,
			Manager:   managers[0].ID,
			Employees: []string{employees[0].ID},
		},
		ProjectDetails: forms.ProjectDetails{
			ProjectName: "Smoke project",
			Description: "Created by roster smoke",
			Deadline:    time.Now().AddDate(0, 1, 0).Format(forms.DateLayout),
		},
	}, nil
}

func sameIDs(what string, want, got []string) error {
	if len(want) == 0 {
		return fmt.Errorf("%w: no %s to compare", ErrCheckFailed, what)
	}
	if strings.Join(want, ",") != strings.Join(got, ",") {
		return fmt.Errorf("%w: %s %v, want %v", ErrCheckFailed, what, got, want)
	}
	return nil
}

func taskIDs(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func employeeIDs(employees []model.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}
