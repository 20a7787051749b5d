package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/pkg/logger"
	"github.com/okian/floww/pkg/metrics"
	"gopkg.in/yaml.v3"
)

// Directory is the in-memory Store built once by Load.
// It is immutable afterwards, so readers need no locking.
type Directory struct {
	data model.Dataset

	employees map[string]int
	managers  map[string]int
	teams     map[string]int
	projects  map[string]int
}

var _ Store = (*Directory)(nil)

// Load decodes the dataset, indexes it and verifies every cross reference.
// Integrity violations are reported together, wrapped in ErrIntegrity.
func Load(ctx context.Context, opts ...Option) (*Directory, error) {
	const op = "repository.Load"

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	raw, source := Seed, "embedded"
	switch {
	case o.raw != nil:
		raw, source = o.raw, "inline"
	case o.path != "":
		b, err := os.ReadFile(o.path)
		if err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, o.path, err)
		}
		raw, source = b, o.path
	}

	var ds model.Dataset
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrDecode, err)
	}

	d := &Directory{data: ds}
	if err := d.index(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := d.Counts(ctx)
	metrics.UpdateDirectory(c.Employees, c.Teams, c.Projects, c.PendingTasks)
	logger.Get().Info(ctx, "directory loaded",
		logger.String("source", source),
		logger.Int("employees", c.Employees),
		logger.Int("managers", c.Managers),
		logger.Int("teams", c.Teams),
		logger.Int("projects", c.Projects),
	)
	return d, nil
}

// Employees returns all employees in source order.
func (d *Directory) Employees(_ context.Context) []model.Employee {
	out := make([]model.Employee, len(d.data.Employees))
	for i, e := range d.data.Employees {
		out[i] = e.Clone()
	}
	return out
}

// Employee returns the employee with id.
func (d *Directory) Employee(_ context.Context, id string) (model.Employee, error) {
	i, ok := d.employees[id]
	if !ok {
		metrics.RecordLookupMiss("employee")
		return model.Employee{}, fmt.Errorf("employee %q: %w", id, ErrNotFound)
	}
	return d.data.Employees[i].Clone(), nil
}

// Managers returns all managers in source order.
func (d *Directory) Managers(_ context.Context) []model.Manager {
	return append([]model.Manager(nil), d.data.Managers...)
}

// Manager returns the manager with id.
func (d *Directory) Manager(_ context.Context, id string) (model.Manager, error) {
	i, ok := d.managers[id]
	if !ok {
		metrics.RecordLookupMiss("manager")
		return model.Manager{}, fmt.Errorf("manager %q: %w", id, ErrNotFound)
	}
	return d.data.Managers[i], nil
}

// Teams returns all teams in source order.
func (d *Directory) Teams(_ context.Context) []model.Team {
	out := make([]model.Team, len(d.data.Teams))
	for i, t := range d.data.Teams {
		out[i] = t.Clone()
	}
	return out
}

// Team returns the team with id.
func (d *Directory) Team(_ context.Context, id string) (model.Team, error) {
	i, ok := d.teams[id]
	if !ok {
		metrics.RecordLookupMiss("team")
		return model.Team{}, fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	return d.data.Teams[i].Clone(), nil
}

// TeamMembers resolves the team's employee ids in roster order.
func (d *Directory) TeamMembers(ctx context.Context, teamID string) ([]model.Employee, error) {
	t, err := d.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Employee, 0, len(t.EmployeeIDs))
	for _, id := range t.EmployeeIDs {
		// ids were verified by index, so the lookup always hits
		out = append(out, d.data.Employees[d.employees[id]].Clone())
	}
	return out, nil
}

// Projects returns all projects in source order.
func (d *Directory) Projects(_ context.Context) []model.Project {
	out := make([]model.Project, len(d.data.Projects))
	for i, p := range d.data.Projects {
		out[i] = p.Clone()
	}
	return out
}

// ProjectsForTeam returns the projects owned by teamID.
func (d *Directory) ProjectsForTeam(_ context.Context, teamID string) ([]model.Project, error) {
	if _, ok := d.teams[teamID]; !ok {
		metrics.RecordLookupMiss("team")
		return nil, fmt.Errorf("team %q: %w", teamID, ErrNotFound)
	}
	out := []model.Project{}
	for _, p := range d.data.Projects {
		if p.TeamID == teamID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Counts summarises the directory.
func (d *Directory) Counts(_ context.Context) Counts {
	c := Counts{
		Employees: len(d.data.Employees),
		Managers:  len(d.data.Managers),
		Teams:     len(d.data.Teams),
		Projects:  len(d.data.Projects),
	}
	for _, e := range d.data.Employees {
		for _, t := range e.Tasks {
			if t.Status == model.TaskPending {
				c.PendingTasks++
			}
		}
	}
	return c
}
