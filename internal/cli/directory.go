package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	service "github.com/okian/floww/internal/app"
	"github.com/okian/floww/internal/domain/model"
	"github.com/spf13/cobra"
)

func newPendingCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List tasks pending verification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			return withService(ctx, o, func(svc *service.Service) error {
				tw := newTable(cmd.OutOrStdout(), "TASK", "EMPLOYEE", "DEADLINE", "PRIORITY", "TAG")
				for _, row := range svc.ReviewRows(ctx) {
					t := row.Task
					tw.row(t.Name, row.EmployeeName, t.Deadline, string(t.Priority), string(t.Tag))
				}
				return tw.Flush()
			})
		},
	}
}

func newSearchCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search employees by name, position or department",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			query := strings.Join(args, " ")
			return withService(ctx, o, func(svc *service.Service) error {
				found := svc.SearchEmployees(ctx, query)
				if len(found) == 0 {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "No employees found matching %q\n", query)
					return err
				}
				tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "POSITION", "DEPARTMENT", "EMAIL")
				for _, e := range found {
					tw.row(e.ID, e.Name, e.Position, e.Department, e.Email)
				}
				return tw.Flush()
			})
		},
	}
}

func newEmployeeCommand(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "employee <id>",
		Short: "Show one employee with tasks and performance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			return withService(ctx, o, func(svc *service.Service) error {
				e, err := svc.Employee(ctx, args[0])
				if err != nil {
					return fmt.Errorf("employee %s: %w", args[0], err)
				}
				if asJSON {
					return printJSON(cmd, e)
				}
				return printEmployee(cmd.OutOrStdout(), e)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the employee as JSON")
	return cmd
}

func newChartCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Print the team performance chart data as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			return withService(ctx, o, func(svc *service.Service) error {
				return printJSON(cmd, svc.TeamCharts(ctx))
			})
		},
	}
}

func printEmployee(w io.Writer, e model.Employee) error { //nolint:gocritic // hugeParam: read-only view
	p := e.Performance
	if _, err := fmt.Fprintf(w, "%s (%s)\n%s, %s\n%s\n\n", e.Name, e.ID, e.Position, e.Department, e.Email); err != nil {
		return err
	}

	tw := newTable(w, "METRIC", "SCORE")
	tw.row("Productivity", fmt.Sprint(p.Productivity))
	tw.row("Quality", fmt.Sprint(p.Quality))
	tw.row("Teamwork", fmt.Sprint(p.Teamwork))
	tw.row("Innovation", fmt.Sprint(p.Innovation))
	tw.row("Overall", fmt.Sprint(p.Overall))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(e.Tasks) == 0 {
		_, err := fmt.Fprintln(w, "\nNo tasks assigned")
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw = newTable(w, "TASK", "STATUS", "DEADLINE", "PRIORITY")
	for _, t := range e.Tasks {
		tw.row(t.Name, string(t.Status), t.Deadline, string(t.Priority))
	}
	return tw.Flush()
}

type table struct {
	*tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) table {
	t := table{tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t table) row(cols ...string) {
	_, _ = fmt.Fprintln(t, strings.Join(cols, "\t"))
}
