package service

import (
	"context"
	"fmt"

	"github.com/okian/floww/internal/domain/charts"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/roster"
	"github.com/okian/floww/internal/domain/types"
)

// Employees returns every employee in source order.
func (s *Service) Employees(ctx context.Context) []model.Employee {
	return s.directory.Employees(ctx)
}

// SearchEmployees filters employees by name, position or department.
func (s *Service) SearchEmployees(ctx context.Context, query string) []model.Employee {
	return roster.Search(s.directory.Employees(ctx), query)
}

// Employee returns the employee with id or repository.ErrNotFound.
func (s *Service) Employee(ctx context.Context, id string) (model.Employee, error) {
	return s.directory.Employee(ctx, id)
}

// PendingTasks returns every pending task in employee order.
func (s *Service) PendingTasks(ctx context.Context) []model.Task {
	return roster.PendingTasks(s.directory.Employees(ctx))
}

// ReviewRows returns the dashboard's pending task table.
func (s *Service) ReviewRows(ctx context.Context) []roster.ReviewRow {
	return roster.ReviewRows(s.directory.Employees(ctx))
}

// Managers returns every manager.
func (s *Service) Managers(ctx context.Context) []model.Manager {
	return s.directory.Managers(ctx)
}

// Projects returns every project.
func (s *Service) Projects(ctx context.Context) []model.Project {
	return s.directory.Projects(ctx)
}

// Teams returns every team with its references resolved.
func (s *Service) Teams(ctx context.Context) ([]types.TeamView, error) {
	teams := s.directory.Teams(ctx)
	out := make([]types.TeamView, 0, len(teams))
	for _, t := range teams {
		v, err := s.Team(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Team returns one team with its manager, members and projects.
func (s *Service) Team(ctx context.Context, id string) (types.TeamView, error) {
	const op = "service.Team"

	t, err := s.directory.Team(ctx, id)
	if err != nil {
		return types.TeamView{}, fmt.Errorf("%s: %w", op, err)
	}
	m, err := s.directory.Manager(ctx, t.ManagerID)
	if err != nil {
		return types.TeamView{}, fmt.Errorf("%s: %w", op, err)
	}
	members, err := s.directory.TeamMembers(ctx, id)
	if err != nil {
		return types.TeamView{}, fmt.Errorf("%s: %w", op, err)
	}
	projects, err := s.directory.ProjectsForTeam(ctx, id)
	if err != nil {
		return types.TeamView{}, fmt.Errorf("%s: %w", op, err)
	}
	return types.TeamView{Team: t, Manager: m, Members: members, Projects: projects}, nil
}

// TeamCharts shapes every team's performance for the charts.
func (s *Service) TeamCharts(ctx context.Context) types.TeamCharts {
	teams := s.directory.Teams(ctx)
	out := types.TeamCharts{Bars: charts.Bars(teams), Teams: make([]types.TeamChart, 0, len(teams))}
	for _, t := range teams {
		out.Teams = append(out.Teams, types.TeamChart{
			TeamID:   t.ID,
			TeamName: t.Name,
			Overall:  t.Performance.Overall,
			Radar:    charts.Radar(t.Performance),
		})
	}
	return out
}
