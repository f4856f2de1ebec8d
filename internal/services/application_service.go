package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ApplicationView is an application with the label and badge colour of
// the audience looking at it.
type ApplicationView struct {
	models.Application
	Label      string `json:"label"`
	Color      string `json:"color"`
	AppliedAgo string `json:"applied_ago"`
}

// BoardTab is one tab of a job seeker's application board.
type BoardTab struct {
	Name         string            `json:"name"`
	Applications []ApplicationView `json:"applications"`
	Empty        string            `json:"empty_message"`
}

var defaultNextStep = map[string]string{
	models.StatusSubmitted: "Waiting for review",
	models.StatusReviewed:  "Waiting for feedback",
	models.StatusInterview: "Interview to be scheduled",
	models.StatusRejected:  "Try other opportunities",
	models.StatusHired:     "Offer extended",
}

type ApplicationService struct {
	conn connector.Connector
	log  *zap.Logger
	now  func() time.Time
}

func NewApplicationService(conn connector.Connector, log *zap.Logger) *ApplicationService {
	return &ApplicationService{conn: conn, log: log, now: time.Now}
}

// Apply files the job seeker's application. A seeker applies to a posting
// once, and only while it is active.
func (s *ApplicationService) Apply(ctx context.Context, user auth.User, req *dtos.ApplicationRequest) (*models.Application, error) {
	if user.IsEmployer() {
		return nil, ErrForbidden
	}

	job, err := s.conn.GetJobByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobActive {
		return nil, ErrJobNotOpen
	}

	existing, err := s.conn.GetApplicationsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if lo.ContainsBy(existing, func(a models.Application) bool { return a.JobID == job.ID }) {
		return nil, ErrAlreadyApplied
	}

	resume := req.ResumeURL
	if resume == "" {
		profile, err := s.conn.GetUserProfile(ctx, user.ID)
		switch {
		case err == nil:
			resume = profile.ResumeURL
		case !errors.Is(err, connector.ErrNotFound):
			return nil, err
		}
	}

	app := &models.Application{
		JobID:     job.ID,
		UserID:    user.ID,
		Status:    models.StatusSubmitted,
		NextStep:  defaultNextStep[models.StatusSubmitted],
		ResumeURL: resume,
	}
	if err := s.conn.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	app.Job = *job
	s.log.Info("📨 Application submitted", zap.String("user", user.ID), zap.Uint("job_id", job.ID))
	return app, nil
}

func (s *ApplicationService) seekerView(app models.Application) ApplicationView {
	return ApplicationView{
		Application: app,
		Label:       SeekerStatusLabel(app.Status),
		Color:       StatusColor(app.Status),
		AppliedAgo:  Ago(app.CreatedAt, s.now()),
	}
}

func (s *ApplicationService) employerView(app models.Application) ApplicationView {
	return ApplicationView{
		Application: app,
		Label:       EmployerStatusLabel(app.Status),
		Color:       StatusColor(app.Status),
		AppliedAgo:  Ago(app.CreatedAt, s.now()),
	}
}

// Board groups the seeker's applications into the All, In Progress,
// Interviews and Rejected tabs.
func (s *ApplicationService) Board(ctx context.Context, user auth.User) ([]BoardTab, error) {
	apps, err := s.conn.GetApplicationsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	all := lo.Map(apps, func(a models.Application, _ int) ApplicationView { return s.seekerView(a) })
	having := func(statuses ...string) []ApplicationView {
		return lo.Filter(all, func(v ApplicationView, _ int) bool { return lo.Contains(statuses, v.Status) })
	}

	return []BoardTab{
		{Name: "All", Applications: all, Empty: "You haven't applied to any jobs yet"},
		{Name: "In Progress", Applications: having(models.StatusSubmitted, models.StatusReviewed), Empty: "No applications in progress"},
		{Name: "Interviews", Applications: having(models.StatusInterview), Empty: "No upcoming interviews"},
		{Name: "Rejected", Applications: having(models.StatusRejected), Empty: "No rejected applications"},
	}, nil
}

// EmployerApplications lists applications to the employer's postings,
// narrowed by job title, status label and date.
func (s *ApplicationService) EmployerApplications(ctx context.Context, user auth.User, filter dtos.EmployerApplicationFilter) ([]ApplicationView, error) {
	if !user.IsEmployer() {
		return nil, ErrForbidden
	}
	apps, err := s.conn.GetApplicationsByEmployer(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	status := ""
	if filter.Status != "" && filter.Status != dtos.AllStatuses {
		var ok bool
		if status, ok = StatusFromEmployerLabel(filter.Status); !ok {
			return nil, ErrInvalidStatus
		}
	}
	now := s.now()
	apps = lo.Filter(apps, func(a models.Application, _ int) bool {
		switch {
		case filter.Job != "" && filter.Job != dtos.AllJobs && a.Job.Title != filter.Job:
			return false
		case status != "" && a.Status != status:
			return false
		}
		return appliedWithin(a.CreatedAt, now, filter.Date)
	})
	return lo.Map(apps, func(a models.Application, _ int) ApplicationView { return s.employerView(a) }), nil
}

// JobApplications lists the applications to one of the employer's postings.
func (s *ApplicationService) JobApplications(ctx context.Context, user auth.User, jobID uint) ([]ApplicationView, error) {
	job, err := s.conn.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != user.ID {
		return nil, fmt.Errorf("job %d: %w", jobID, ErrForbidden)
	}
	apps, err := s.conn.GetApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return lo.Map(apps, func(a models.Application, _ int) ApplicationView { return s.employerView(a) }), nil
}

// ChangeStatus moves an application along. Only the owner of the posting
// may do so. The status may be given as stored or as its dashboard label.
func (s *ApplicationService) ChangeStatus(ctx context.Context, user auth.User, id uint, req *dtos.StatusUpdateRequest) (*models.Application, error) {
	status, ok := StatusFromEmployerLabel(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	app, err := s.conn.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Job.EmployerID != user.ID {
		return nil, fmt.Errorf("application %d: %w", id, ErrForbidden)
	}

	nextStep := req.NextStep
	if nextStep == "" {
		nextStep = defaultNextStep[status]
	}
	if err := s.conn.UpdateApplicationStatus(ctx, id, status, nextStep); err != nil {
		return nil, err
	}
	s.log.Info("⚡ Application status changed",
		zap.Uint("application_id", id),
		zap.String("from", app.Status),
		zap.String("to", status),
	)
	app.Status = status
	app.NextStep = nextStep
	return app, nil
}

// appliedWithin applies the dashboard date filter.
func appliedWithin(applied, now time.Time, option string) bool {
	switch option {
	case dtos.Today:
		y1, m1, d1 := applied.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case dtos.ThisWeek:
		return now.Sub(applied) < 7*24*time.Hour
	case dtos.ThisMonth:
		return now.Sub(applied) < 30*24*time.Hour
	default:
		return true
	}
}
