package model

import "time"

// SubmissionKind names the form that produced a submission.
type SubmissionKind string

// Submission kinds.
const (
	SubmissionTeamProject SubmissionKind = "team-project"
	SubmissionAssignment  SubmissionKind = "project-assignment"
)

// Submission is an accepted form payload waiting to be processed.
// Nothing is written back to the directory.
type Submission struct {
	ID          string         `json:"id"`
	Kind        SubmissionKind `json:"kind"`
	TeamID      string         `json:"teamId"`
	TeamName    string         `json:"teamName,omitempty"`
	ManagerID   string         `json:"manager,omitempty"`
	EmployeeIDs []string       `json:"employees,omitempty"`
	ProjectName string         `json:"projectName"`
	Description string         `json:"description"`
	Deadline    string         `json:"deadline"`
	ReceivedAt  time.Time      `json:"receivedAt"`
}
