package services

import (
	"context"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// CandidateView is a talent-pool entry.
type CandidateView struct {
	models.Profile
	StatusColor string `json:"status_color"`
}

// Dashboard is everything the employer dashboard shows.
type Dashboard struct {
	Analytics    models.JobAnalytics `json:"analytics"`
	Jobs         []JobView           `json:"jobs"`
	Applications []ApplicationView   `json:"applications"`
	Candidates   []CandidateView     `json:"candidates"`
	JobTitles    []string            `json:"job_titles"`
}

type DashboardService struct {
	conn         connector.Connector
	jobs         *JobService
	applications *ApplicationService
}

func NewDashboardService(conn connector.Connector, jobs *JobService, applications *ApplicationService) *DashboardService {
	return &DashboardService{conn: conn, jobs: jobs, applications: applications}
}

// Load fetches the dashboard sections concurrently.
func (s *DashboardService) Load(ctx context.Context, user auth.User, filter dtos.EmployerApplicationFilter, search string) (*Dashboard, error) {
	if !user.IsEmployer() {
		return nil, ErrForbidden
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Analytics, err = s.conn.GetJobAnalytics(gctx, user.ID)
		return err
	})
	g.Go(func() (err error) {
		d.Jobs, err = s.jobs.EmployerJobs(gctx, user)
		return err
	})
	g.Go(func() (err error) {
		d.Applications, err = s.applications.EmployerApplications(gctx, user, filter)
		return err
	})
	g.Go(func() (err error) {
		d.Candidates, err = s.Candidates(gctx, user, search)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.JobTitles = lo.Uniq(lo.Map(d.Jobs, func(j JobView, _ int) string { return j.Title }))
	return &d, nil
}

func (s *DashboardService) Analytics(ctx context.Context, user auth.User) (models.JobAnalytics, error) {
	if !user.IsEmployer() {
		return models.JobAnalytics{}, ErrForbidden
	}
	return s.conn.GetJobAnalytics(ctx, user.ID)
}

// Candidates is the talent pool: everyone who applied to the employer's
// postings, searchable by name, headline or skill.
func (s *DashboardService) Candidates(ctx context.Context, user auth.User, search string) ([]CandidateView, error) {
	if !user.IsEmployer() {
		return nil, ErrForbidden
	}
	profiles, err := s.conn.GetCandidates(ctx, user.ID, search)
	if err != nil {
		return nil, err
	}
	return lo.Map(profiles, func(p models.Profile, _ int) CandidateView {
		return CandidateView{Profile: p, StatusColor: TalentStatusColor(p.TalentStatus)}
	}), nil
}
