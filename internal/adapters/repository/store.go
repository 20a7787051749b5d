// Package repository holds the read-only directory of employees, managers,
// teams and projects.
package repository

import (
	"context"

	"github.com/okian/floww/internal/domain/model"
)

// Counts summarises the directory size.
type Counts struct {
	Employees    int `json:"employees"`
	Managers     int `json:"managers"`
	Teams        int `json:"teams"`
	Projects     int `json:"projects"`
	PendingTasks int `json:"pendingTasks"`
}

// Store provides read access to the directory.
// Every returned value is a copy; mutating it never affects the store.
type Store interface {
	// Employees returns all employees in source order.
	Employees(ctx context.Context) []model.Employee
	// Employee returns the employee with id or ErrNotFound.
	Employee(ctx context.Context, id string) (model.Employee, error)

	Managers(ctx context.Context) []model.Manager
	Manager(ctx context.Context, id string) (model.Manager, error)

	Teams(ctx context.Context) []model.Team
	Team(ctx context.Context, id string) (model.Team, error)
	// TeamMembers resolves a team's employee ids in roster order.
	TeamMembers(ctx context.Context, teamID string) ([]model.Employee, error)

	Projects(ctx context.Context) []model.Project
	// ProjectsForTeam returns the projects whose team is teamID.
	ProjectsForTeam(ctx context.Context, teamID string) ([]model.Project, error)

	Counts(ctx context.Context) Counts
}
