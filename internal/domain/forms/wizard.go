package forms

import (
	"context"
	"fmt"
)

// Step is a wizard page.
type Step int

// Wizard steps.
const (
	StepTeam    Step = 1
	StepProject Step = 2
)

// Wizard is the create-team state machine: team details, then project
// details, then submit, after which it starts over.
type Wizard struct {
	Step    Step           `json:"step"`
	Team    TeamDetails    `json:"team"`
	Project ProjectDetails `json:"project"`
}

// NewWizard returns a wizard on step one.
func NewWizard() *Wizard {
	return &Wizard{Step: StepTeam}
}

// Next validates step one and moves to step two.
// On failure the entered details are kept for redisplay.
func (w *Wizard) Next(ctx context.Context, v *Validator, t TeamDetails) error {
	t = t.Normalize()
	w.Team = t
	if err := v.TeamDetails(ctx, t); err != nil {
		w.Step = StepTeam
		return err
	}
	w.Step = StepProject
	return nil
}

// Back returns to step one. Both steps keep what was entered.
func (w *Wizard) Back(p ProjectDetails) {
	w.Project = p.Normalize()
	w.Step = StepTeam
}

// Submit validates step two and, on success, resets the wizard and returns
// the combined payload.
func (w *Wizard) Submit(ctx context.Context, v *Validator, p ProjectDetails) (TeamProject, error) {
	const op = "forms.Wizard.Submit"

	if w.Step != StepProject {
		return TeamProject{}, fmt.Errorf("%s: %w", op, ErrWizardStep)
	}
	p = p.Normalize()
	w.Project = p
	// step one may have been tampered with between requests
	if err := v.TeamDetails(ctx, w.Team); err != nil {
		w.Step = StepTeam
		return TeamProject{}, err
	}
	if err := v.ProjectDetails(ctx, p); err != nil {
		return TeamProject{}, err
	}

	tp := TeamProject{TeamDetails: w.Team, ProjectDetails: p}
	w.Reset()
	return tp, nil
}

// Reset returns the wizard to an empty step one.
func (w *Wizard) Reset() {
	*w = Wizard{Step: StepTeam}
}
