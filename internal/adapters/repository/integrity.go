package repository

import (
	"errors"
	"fmt"
)

// index builds the id maps and checks references. All violations are
// collected so a broken dataset is reported in one go.
func (d *Directory) index() error {
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	d.managers = make(map[string]int, len(d.data.Managers))
	for i, m := range d.data.Managers {
		if m.ID == "" {
			violation("manager #%d: empty id", i)
			continue
		}
		if _, dup := d.managers[m.ID]; dup {
			violation("manager %q: duplicate id", m.ID)
			continue
		}
		d.managers[m.ID] = i
	}

	d.employees = make(map[string]int, len(d.data.Employees))
	for i, e := range d.data.Employees {
		if e.ID == "" {
			violation("employee #%d: empty id", i)
			continue
		}
		if _, dup := d.employees[e.ID]; dup {
			violation("employee %q: duplicate id", e.ID)
			continue
		}
		d.employees[e.ID] = i
	}

	taskIDs := make(map[string]struct{})
	for _, e := range d.data.Employees {
		for _, t := range e.Tasks {
			if _, dup := taskIDs[t.ID]; dup {
				violation("task %q: duplicate id", t.ID)
			}
			taskIDs[t.ID] = struct{}{}
			if _, ok := d.employees[t.AssignedTo]; !ok {
				violation("task %q: assignedTo %q does not resolve", t.ID, t.AssignedTo)
			}
			if !t.Status.Valid() {
				violation("task %q: invalid status %q", t.ID, t.Status)
			}
			if !t.Priority.Valid() {
				violation("task %q: invalid priority %q", t.ID, t.Priority)
			}
			if !t.Tag.Valid() {
				violation("task %q: invalid tag %q", t.ID, t.Tag)
			}
		}
	}

	d.teams = make(map[string]int, len(d.data.Teams))
	for i, t := range d.data.Teams {
		if t.ID == "" {
			violation("team #%d: empty id", i)
			continue
		}
		if _, dup := d.teams[t.ID]; dup {
			violation("team %q: duplicate id", t.ID)
			continue
		}
		d.teams[t.ID] = i
		if _, ok := d.managers[t.ManagerID]; !ok {
			violation("team %q: manager %q does not resolve", t.ID, t.ManagerID)
		}
		for _, id := range t.EmployeeIDs {
			if _, ok := d.employees[id]; !ok {
				violation("team %q: employee %q does not resolve", t.ID, id)
			}
		}
	}

	d.projects = make(map[string]int, len(d.data.Projects))
	for i, p := range d.data.Projects {
		if p.ID == "" {
			violation("project #%d: empty id", i)
			continue
		}
		if _, dup := d.projects[p.ID]; dup {
			violation("project %q: duplicate id", p.ID)
			continue
		}
		d.projects[p.ID] = i
		if _, ok := d.teams[p.TeamID]; !ok {
			violation("project %q: team %q does not resolve", p.ID, p.TeamID)
		}
		if !p.Status.Valid() {
			violation("project %q: invalid status %q", p.ID, p.Status)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrIntegrity, errors.Join(errs...))
	}
	return nil
}
