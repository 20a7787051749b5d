// Package model contains the directory entities passed between layers.
//
// Cross references are plain ids (Team.ManagerID, Team.EmployeeIDs,
// Project.TeamID, Task.AssignedTo) resolved through the repository index,
// never embedded copies.
package model

import "strings"

// Performance holds an employee's review scores on a 0-100 scale.
// Overall is authored alongside the other scores, not derived from them.
type Performance struct {
	Productivity int `json:"productivity" yaml:"productivity"`
	Quality      int `json:"quality" yaml:"quality"`
	Teamwork     int `json:"teamwork" yaml:"teamwork"`
	Innovation   int `json:"innovation" yaml:"innovation"`
	Overall      int `json:"overall" yaml:"overall"`
}

// TeamPerformance holds a team's delivery scores on a 0-100 scale.
type TeamPerformance struct {
	ProjectCompletion  int `json:"projectCompletion" yaml:"projectCompletion"`
	QualityScore       int `json:"qualityScore" yaml:"qualityScore"`
	OnTimeDelivery     int `json:"onTimeDelivery" yaml:"onTimeDelivery"`
	ClientSatisfaction int `json:"clientSatisfaction" yaml:"clientSatisfaction"`
	Overall            int `json:"overall" yaml:"overall"`
}

// Task is a unit of work assigned to one employee.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	AssignedTo  string     `json:"assignedTo" yaml:"assignedTo"`
	Deadline    string     `json:"deadline" yaml:"deadline"`
	Status      TaskStatus `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Tag         Tag        `json:"tag" yaml:"tag"`
	Description string     `json:"description" yaml:"description"`
}

// Employee is a member of staff together with their tasks and scores.
type Employee struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Position    string      `json:"position" yaml:"position"`
	Department  string      `json:"department" yaml:"department"`
	Email       string      `json:"email" yaml:"email"`
	Tasks       []Task      `json:"tasks" yaml:"tasks"`
	Performance Performance `json:"performance" yaml:"performance"`
}

// Initials returns the first letter of every part of the name.
func (e Employee) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(e.Name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Clone returns a copy that shares no slices with e.
func (e Employee) Clone() Employee {
	e.Tasks = append([]Task(nil), e.Tasks...)
	if e.Tasks == nil {
		e.Tasks = []Task{}
	}
	return e
}

// Manager leads a team.
type Manager struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Position   string `json:"position" yaml:"position"`
	Department string `json:"department" yaml:"department"`
	Email      string `json:"email" yaml:"email"`
}

// Team groups employees under a manager.
type Team struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	ManagerID   string          `json:"managerId" yaml:"managerId"`
	EmployeeIDs []string        `json:"employeeIds" yaml:"employeeIds"`
	Performance TeamPerformance `json:"performance" yaml:"performance"`
}

// Clone returns a copy that shares no slices with t.
func (t Team) Clone() Team {
	t.EmployeeIDs = append([]string(nil), t.EmployeeIDs...)
	if t.EmployeeIDs == nil {
		t.EmployeeIDs = []string{}
	}
	return t
}

// Project is a piece of work owned by one team.
type Project struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Deadline    string        `json:"deadline" yaml:"deadline"`
	Status      ProjectStatus `json:"status" yaml:"status"`
	TeamID      string        `json:"team" yaml:"team"`
	Documents   []string      `json:"documents" yaml:"documents"`
}

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	p.Documents = append([]string(nil), p.Documents...)
	if p.Documents == nil {
		p.Documents = []string{}
	}
	return p
}

// Dataset is the whole directory as authored.
type Dataset struct {
	Managers  []Manager  `json:"managers" yaml:"managers"`
	Employees []Employee `json:"employees" yaml:"employees"`
	Teams     []Team     `json:"teams" yaml:"teams"`
	Projects  []Project  `json:"projects" yaml:"projects"`
}
