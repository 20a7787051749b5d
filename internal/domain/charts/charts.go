// Package charts reshapes team performance records into chart data.
package charts

import "github.com/okian/floww/internal/domain/model"

// FullMark is the top of every performance scale.
const FullMark = 100

// Bar is one team's row in the bar charts.
type Bar struct {
	Name               string `json:"name"`
	Overall            int    `json:"overall"`
	ProjectCompletion  int    `json:"projectCompletion"`
	QualityScore       int    `json:"qualityScore"`
	OnTimeDelivery     int    `json:"onTimeDelivery"`
	ClientSatisfaction int    `json:"clientSatisfaction"`
}

// Value returns the bar's score for a series key, or 0 for unknown keys.
func (b Bar) Value(key string) int {
	switch key {
	case KeyOverall:
		return b.Overall
	case KeyProjectCompletion:
		return b.ProjectCompletion
	case KeyQualityScore:
		return b.QualityScore
	case KeyOnTimeDelivery:
		return b.OnTimeDelivery
	case KeyClientSatisfaction:
		return b.ClientSatisfaction
	}
	return 0
}

// Series keys.
const (
	KeyOverall            = "overall"
	KeyProjectCompletion  = "projectCompletion"
	KeyQualityScore       = "qualityScore"
	KeyOnTimeDelivery     = "onTimeDelivery"
	KeyClientSatisfaction = "clientSatisfaction"
)

// Series describes one coloured bar within a group.
type Series struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// OverallSeries is drawn in the "Overall Performance" chart.
var OverallSeries = []Series{
	{Key: KeyOverall, Label: "Overall Performance", Color: "#3B82F6"},
}

// BreakdownSeries is drawn in the "Performance Breakdown" chart.
var BreakdownSeries = []Series{
	{Key: KeyProjectCompletion, Label: "Project Completion", Color: "#8B5CF6"},
	{Key: KeyQualityScore, Label: "Quality Score", Color: "#10B981"},
	{Key: KeyOnTimeDelivery, Label: "On-Time Delivery", Color: "#F59E0B"},
	{Key: KeyClientSatisfaction, Label: "Client Satisfaction", Color: "#EF4444"},
}

// RadarPoint is one axis of a team's radar chart.
type RadarPoint struct {
	Subject  string `json:"subject"`
	A        int    `json:"A"`
	FullMark int    `json:"fullMark"`
}

// Bars returns one row per team in team order.
func Bars(teams []model.Team) []Bar {
	out := make([]Bar, 0, len(teams))
	for _, t := range teams {
		p := t.Performance
		out = append(out, Bar{
			Name:               t.Name,
			Overall:            p.Overall,
			ProjectCompletion:  p.ProjectCompletion,
			QualityScore:       p.QualityScore,
			OnTimeDelivery:     p.OnTimeDelivery,
			ClientSatisfaction: p.ClientSatisfaction,
		})
	}
	return out
}

// Radar returns the five radar axes in display order.
func Radar(p model.TeamPerformance) []RadarPoint {
	return []RadarPoint{
		{Subject: "Project Completion", A: p.ProjectCompletion, FullMark: FullMark},
		{Subject: "Quality Score", A: p.QualityScore, FullMark: FullMark},
		{Subject: "On-Time Delivery", A: p.OnTimeDelivery, FullMark: FullMark},
		{Subject: "Client Satisfaction", A: p.ClientSatisfaction, FullMark: FullMark},
		{Subject: "Overall", A: p.Overall, FullMark: FullMark},
	}
}
