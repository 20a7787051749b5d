package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/floww/internal/adapters/notify"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/internal/domain/types"
	"github.com/okian/floww/pkg/logger"
	"github.com/okian/floww/pkg/metrics"
)

// Wizard returns the draft stored under id, or a fresh wizard and an empty id.
func (s *Service) Wizard(ctx context.Context, id string) (string, forms.Wizard) {
	if w, ok := s.drafts.Get(ctx, id); ok {
		return id, w
	}
	return "", *forms.NewWizard()
}

// WizardNext validates step one and stores the draft.
// The returned id must be carried by the next request.
func (s *Service) WizardNext(ctx context.Context, id string, t forms.TeamDetails) (string, forms.Wizard, error) {
	id, w := s.Wizard(ctx, id)
	err := w.Next(ctx, s.validator, t)
	if err != nil {
		metrics.RecordFormSubmission("team-details", "rejected")
	}
	id = s.drafts.Put(ctx, id, w)
	return id, w, err
}

// WizardBack returns the draft to step one, keeping what was typed on step two.
func (s *Service) WizardBack(ctx context.Context, id string, p forms.ProjectDetails) (string, forms.Wizard) {
	id, w := s.Wizard(ctx, id)
	w.Back(p)
	id = s.drafts.Put(ctx, id, w)
	return id, w
}

// WizardSubmit finishes the wizard. On success the draft is dropped and a
// fresh wizard is returned; otherwise the draft keeps the entered data.
func (s *Service) WizardSubmit(ctx context.Context, id string, p forms.ProjectDetails) (types.Receipt, string, forms.Wizard, error) {
	id, w := s.Wizard(ctx, id)
	before := w

	tp, err := w.Submit(ctx, s.validator, p)
	if errors.Is(err, forms.ErrWizardStep) {
		return types.Receipt{}, id, w, err
	}
	if err != nil {
		metrics.RecordFormSubmission(string(model.SubmissionTeamProject), "rejected")
		id = s.drafts.Put(ctx, id, w)
		return types.Receipt{}, id, w, err
	}

	receipt, err := s.accept(ctx, tp.Submission(), tp.Toast())
	if err != nil {
		before.Project = p.Normalize()
		id = s.drafts.Put(ctx, id, before)
		return types.Receipt{}, id, before, err
	}
	if id != "" {
		s.drafts.Delete(ctx, id)
	}
	return receipt, "", w, nil
}

// CreateTeamProject validates a whole create-team payload and accepts it.
func (s *Service) CreateTeamProject(ctx context.Context, tp forms.TeamProject) (types.Receipt, error) {
	tp.TeamDetails = tp.TeamDetails.Normalize()
	tp.ProjectDetails = tp.ProjectDetails.Normalize()
	if err := s.validator.TeamProject(ctx, tp); err != nil {
		metrics.RecordFormSubmission(string(model.SubmissionTeamProject), "rejected")
		return types.Receipt{}, err
	}
	return s.accept(ctx, tp.Submission(), tp.Toast())
}

// AssignProject validates an assignment and accepts it.
func (s *Service) AssignProject(ctx context.Context, a forms.Assignment) (types.Receipt, error) {
	a = a.Normalize()
	if err := s.validator.Assignment(ctx, a); err != nil {
		metrics.RecordFormSubmission(string(model.SubmissionAssignment), "rejected")
		return types.Receipt{}, err
	}
	return s.accept(ctx, a.Submission(), a.Toast())
}

// TakeNotification returns a retained toast by id the first time it is
// asked for. It stays listed in Notifications.
func (s *Service) TakeNotification(ctx context.Context, id string) (notify.Notification, bool) {
	return s.notices.Take(ctx, id)
}

// Notifications returns up to limit toasts, newest first.
func (s *Service) Notifications(ctx context.Context, limit int) []notify.Notification {
	return s.notices.Recent(ctx, limit)
}

// accept enqueues sub and publishes its toast. Nothing is written to the
// directory.
func (s *Service) accept(ctx context.Context, sub model.Submission, toast forms.Toast) (types.Receipt, error) { //nolint:gocritic // hugeParam: copied into the queue anyway
	const op = "service.accept"

	sub.ID = newSubmissionID()
	sub.ReceivedAt = time.Now().UTC()
	if err := s.queue.Enqueue(ctx, sub); err != nil {
		metrics.RecordFormSubmission(string(sub.Kind), "backpressure")
		s.logger.Warn(ctx, "submission not queued",
			logger.String("submission_id", sub.ID),
			logger.String("kind", string(sub.Kind)),
			logger.Error(err),
		)
		return types.Receipt{}, fmt.Errorf("%s: %w", op, err)
	}

	notice := s.notices.Push(ctx, toast.Title, toast.Description)

	s.mu.Lock()
	s.accepted[string(sub.Kind)]++
	s.mu.Unlock()
	metrics.RecordFormSubmission(string(sub.Kind), "accepted")

	s.logger.Info(ctx, "submission accepted",
		logger.String("submission_id", sub.ID),
		logger.String("kind", string(sub.Kind)),
		logger.String("notice_id", notice.ID),
	)
	return types.Receipt{
		SubmissionID: sub.ID,
		NoticeID:     notice.ID,
		Title:        notice.Title,
		Description:  notice.Description,
	}, nil
}

// handleSubmission is the worker side: it records the full payload.
func (s *Service) handleSubmission(ctx context.Context, sub model.Submission) error { //nolint:gocritic // hugeParam: worker handler signature
	if sub.ID == "" {
		return errors.New("submission without id")
	}
	fields := []logger.Field{
		logger.String("submission_id", sub.ID),
		logger.String("kind", string(sub.Kind)),
		logger.String("team_id", sub.TeamID),
		logger.String("project_name", sub.ProjectName),
		logger.String("description", sub.Description),
		logger.String("deadline", sub.Deadline),
		logger.Duration("wait", time.Since(sub.ReceivedAt)),
	}
	if sub.Kind == model.SubmissionTeamProject {
		fields = append(fields,
			logger.String("team_name", sub.TeamName),
			logger.String("manager", sub.ManagerID),
			logger.Strings("employees", sub.EmployeeIDs),
		)
	}
	s.logger.Info(ctx, "submission processed", fields...)
	return nil
}
