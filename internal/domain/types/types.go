// Package types contains the view shapes shared by the API and the site.
package types

import (
	"github.com/okian/floww/internal/domain/charts"
	"github.com/okian/floww/internal/domain/model"
)

// TeamView is a team with its references resolved.
type TeamView struct {
	Team     model.Team       `json:"team"`
	Manager  model.Manager    `json:"manager"`
	Members  []model.Employee `json:"members"`
	Projects []model.Project  `json:"projects"`
}

// Size returns the number of team members.
func (t TeamView) Size() int { return len(t.Members) }

// TeamChart is the radar data for one team.
type TeamChart struct {
	TeamID   string              `json:"teamId"`
	TeamName string              `json:"teamName"`
	Overall  int                 `json:"overall"`
	Radar    []charts.RadarPoint `json:"radar"`
}

// TeamCharts is everything the team performance page plots.
type TeamCharts struct {
	Bars  []charts.Bar `json:"bars"`
	Teams []TeamChart  `json:"teams"`
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	SubmissionID string `json:"submissionId"`
	NoticeID     string `json:"noticeId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}
