// Package forms holds the create-team and assign-project schemas, their
// validation and the two-step team wizard.
package forms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/floww/internal/domain/model"
)

// DateLayout is the accepted deadline format.
const DateLayout = "2006-01-02"

// TeamDetails is step one of the create-team wizard.
type TeamDetails struct {
	TeamID    string   `json:"teamId" validate:"required"`
	TeamName  string   `json:"teamName" validate:"required"`
	Manager   string   `json:"manager" validate:"required"`
	Employees []string `json:"employees" validate:"min=1"`
}

// Normalize trims surrounding blanks and drops empty employee ids.
func (t TeamDetails) Normalize() TeamDetails {
	t.TeamID = strings.TrimSpace(t.TeamID)
	t.TeamName = strings.TrimSpace(t.TeamName)
	t.Manager = strings.TrimSpace(t.Manager)
	ids := make([]string, 0, len(t.Employees))
	for _, id := range t.Employees {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	t.Employees = ids
	return t
}

// Has reports whether employee id is selected.
func (t TeamDetails) Has(id string) bool {
	for _, e := range t.Employees {
		if e == id {
			return true
		}
	}
	return false
}

// ProjectDetails is step two of the wizard and the body of the assign form.
type ProjectDetails struct {
	ProjectName string `json:"projectName" validate:"required"`
	Description string `json:"description" validate:"required"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
}

// Normalize trims surrounding blanks.
func (p ProjectDetails) Normalize() ProjectDetails {
	p.ProjectName = strings.TrimSpace(p.ProjectName)
	p.Description = strings.TrimSpace(p.Description)
	p.Deadline = strings.TrimSpace(p.Deadline)
	return p
}

// TeamProject is the combined payload of a finished wizard.
type TeamProject struct {
	TeamDetails
	ProjectDetails
}

// Submission converts the payload for the submissions queue.
func (tp TeamProject) Submission() model.Submission {
	return model.Submission{
		Kind:        model.SubmissionTeamProject,
		TeamID:      tp.TeamID,
		TeamName:    tp.TeamName,
		ManagerID:   tp.Manager,
		EmployeeIDs: append([]string(nil), tp.Employees...),
		ProjectName: tp.ProjectName,
		Description: tp.Description,
		Deadline:    tp.Deadline,
	}
}

// Toast is the confirmation shown after the wizard completes.
func (tp TeamProject) Toast() Toast {
	return Toast{
		Title:       "Team and project created!",
		Description: fmt.Sprintf(`Created team "%s" with project "%s"`, tp.TeamName, tp.ProjectName),
	}
}

// Assignment assigns a new project to an existing team.
type Assignment struct {
	Team string `json:"team" validate:"required"`
	ProjectDetails
}

// Normalize trims surrounding blanks.
func (a Assignment) Normalize() Assignment {
	a.Team = strings.TrimSpace(a.Team)
	a.ProjectDetails = a.ProjectDetails.Normalize()
	return a
}

// Submission converts the payload for the submissions queue.
func (a Assignment) Submission() model.Submission {
	return model.Submission{
		Kind:        model.SubmissionAssignment,
		TeamID:      a.Team,
		ProjectName: a.ProjectName,
		Description: a.Description,
		Deadline:    a.Deadline,
	}
}

// Toast is the confirmation shown after a project is assigned.
func (a Assignment) Toast() Toast {
	return Toast{
		Title:       "Project assigned!",
		Description: fmt.Sprintf(`Project "%s" has been assigned to the team`, a.ProjectName),
	}
}

// Toast is a transient confirmation message.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

// Fields returns the field names in a stable order.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Fields() {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidForm.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalidForm.
func (e *ValidationError) Unwrap() error { return ErrInvalidForm }
