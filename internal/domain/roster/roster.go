// Package roster derives the dashboard and employee-list views from the directory.
package roster

import (
	"strings"

	"github.com/okian/floww/internal/domain/model"
	"golang.org/x/text/cases"
)

// Unassigned is shown for a task whose assignee cannot be resolved.
const Unassigned = "Unassigned"

// ReviewRow is one line of the "Tasks Pending Verification" table.
type ReviewRow struct {
	Task         model.Task `json:"task"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Initials     string     `json:"initials"`
}

// PendingTasks flattens the employees' tasks and keeps the pending ones.
// Employee order and task order within an employee are preserved.
func PendingTasks(employees []model.Employee) []model.Task {
	out := []model.Task{}
	for _, e := range employees {
		for _, t := range e.Tasks {
			if t.Status == model.TaskPending {
				out = append(out, t)
			}
		}
	}
	return out
}

// Search returns the employees whose name, position or department contains
// query, compared with Unicode case folding. An empty query matches everyone.
func Search(employees []model.Employee, query string) []model.Employee {
	if query == "" {
		return append([]model.Employee{}, employees...)
	}
	fold := cases.Fold()
	q := fold.String(query)

	out := []model.Employee{}
	for _, e := range employees {
		if strings.Contains(fold.String(e.Name), q) ||
			strings.Contains(fold.String(e.Position), q) ||
			strings.Contains(fold.String(e.Department), q) {
			out = append(out, e)
		}
	}
	return out
}

// ReviewRows joins every pending task with its assignee.
func ReviewRows(employees []model.Employee) []ReviewRow {
	byID := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	tasks := PendingTasks(employees)
	rows := make([]ReviewRow, 0, len(tasks))
	for _, t := range tasks {
		row := ReviewRow{Task: t, EmployeeID: t.AssignedTo, EmployeeName: Unassigned}
		if e, ok := byID[t.AssignedTo]; ok {
			row.EmployeeName = e.Name
			row.Initials = e.Initials()
		}
		rows = append(rows, row)
	}
	return rows
}
