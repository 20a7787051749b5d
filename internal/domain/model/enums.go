package model

// TaskStatus is the review state of a task.
type TaskStatus string

// Task statuses.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskVerified   TaskStatus = "verified"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskVerified:
		return true
	}
	return false
}

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

// Project statuses.
const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

// Priority ranks a task's urgency.
type Priority string

// Priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Tag categorises a task.
type Tag string

// Tags.
const (
	TagDesign      Tag = "design"
	TagDevelopment Tag = "development"
	TagManagement  Tag = "management"
	TagResearch    Tag = "research"
)

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool {
	switch t {
	case TagDesign, TagDevelopment, TagManagement, TagResearch:
		return true
	}
	return false
}
