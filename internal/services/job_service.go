package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"go.uber.org/zap"
)

// JobView is a posting ready for display.
type JobView struct {
	models.Job
	PostedAgo       string        `json:"posted_ago"`
	DescriptionHTML template.HTML `json:"description_html"`
	StatusColor     string        `json:"status_color"`
}

type JobService struct {
	conn connector.Connector
	log  *zap.Logger
	now  func() time.Time
}

func NewJobService(conn connector.Connector, log *zap.Logger) *JobService {
	return &JobService{conn: conn, log: log, now: time.Now}
}

func (s *JobService) view(job models.Job) JobView {
	return JobView{
		Job:             job,
		PostedAgo:       Ago(job.CreatedAt, s.now()),
		DescriptionHTML: RenderMarkdown(job.Description),
		StatusColor:     JobStatusColor(job.Status),
	}
}

func (s *JobService) views(jobs []models.Job) []JobView {
	out := make([]JobView, len(jobs))
	for i, job := range jobs {
		out[i] = s.view(job)
	}
	return out
}

// Search lists active postings matching the filter.
func (s *JobService) Search(ctx context.Context, filter dtos.JobFilter) ([]JobView, error) {
	jobs, err := s.conn.GetJobs(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return s.views(jobs), nil
}

func (s *JobService) Featured(ctx context.Context, n int) ([]JobView, error) {
	jobs, err := s.conn.GetFeaturedJobs(ctx, n)
	if err != nil {
		return nil, err
	}
	return s.views(jobs), nil
}

// Get returns one posting and counts the view.
func (s *JobService) Get(ctx context.Context, id uint) (*JobView, error) {
	job, err := s.conn.GetJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.conn.IncrementJobViews(ctx, id); err != nil {
		s.log.Warn("⚠️ Could not count job view", zap.Uint("job_id", id), zap.Error(err))
	}
	v := s.view(*job)
	return &v, nil
}

// EmployerJobs lists every posting of the employer with application counts.
func (s *JobService) EmployerJobs(ctx context.Context, user auth.User) ([]JobView, error) {
	if !user.IsEmployer() {
		return nil, ErrForbidden
	}
	jobs, err := s.conn.GetJobsByEmployer(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.views(jobs), nil
}

func (s *JobService) CreateJob(ctx context.Context, user auth.User, req *dtos.JobCreationRequest) (*models.Job, error) {
	if !user.IsEmployer() {
		return nil, ErrForbidden
	}

	company, err := s.employerCompany(ctx, user, req.CompanyName)
	if err != nil {
		return nil, err
	}

	salaryMin, salaryMax, _ := ParseSalary(req.SalaryRange)
	region := req.Region
	if region == "" || region == dtos.AnyLocation {
		region = RegionOf(req.Location)
	}
	jobType := req.JobType
	if jobType == "" {
		jobType = "Full-time"
	}

	job := &models.Job{
		EmployerID:      user.ID,
		CompanyID:       company.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Location:        req.Location,
		Region:          region,
		JobType:         jobType,
		ExperienceLevel: req.ExperienceLevel,
		SalaryText:      req.SalaryRange,
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		Status:          models.JobActive,
		Featured:        req.Featured,
	}
	id, err := s.conn.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = id
	job.Company = *company
	s.log.Info("📝 Job posted", zap.Uint("job_id", id), zap.String("title", job.Title), zap.String("company", company.Name))
	return job, nil
}

// employerCompany resolves the company a new posting belongs to: the one
// linked to the employer's profile, else an unowned or own company matching
// the name, else a new company owned by the employer.
func (s *JobService) employerCompany(ctx context.Context, user auth.User, name string) (*models.Company, error) {
	profile, err := s.conn.GetUserProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, connector.ErrNotFound) {
		return nil, err
	}
	if profile != nil && profile.CompanyID != nil {
		return s.conn.GetCompanyByID(ctx, *profile.CompanyID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCompanyRequired
	}
	companies, err := s.conn.GetCompanies(ctx, dtos.CompanyFilter{}, 1000)
	if err != nil {
		return nil, err
	}
	company := MatchCompany(companies, name, "")
	if company != nil && company.OwnerID != "" && company.OwnerID != user.ID {
		company = nil
	}
	if company == nil {
		company = &models.Company{Name: name, OwnerID: user.ID}
		if err := s.conn.CreateCompany(ctx, company); err != nil {
			return nil, err
		}
		s.log.Info("🏢 Company created", zap.String("company", name), zap.String("owner", user.ID))
	}

	if profile != nil && company.OwnerID == user.ID {
		profile.CompanyID = &company.ID
		if err := s.conn.UpdateUserProfile(ctx, profile); err != nil {
			return nil, err
		}
	}
	return company, nil
}

func (s *JobService) UpdateJob(ctx context.Context, user auth.User, id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.ownedJob(ctx, user, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&job.Title, req.Title)
	set(&job.Description, req.Description)
	set(&job.Location, req.Location)
	set(&job.Region, req.Region)
	set(&job.JobType, req.JobType)
	set(&job.ExperienceLevel, req.ExperienceLevel)
	set(&job.Status, req.Status)
	if req.SalaryRange != nil {
		job.SalaryText = *req.SalaryRange
		job.SalaryMin, job.SalaryMax, _ = ParseSalary(job.SalaryText)
	}
	if req.Location != nil && req.Region == nil {
		job.Region = RegionOf(job.Location)
	}

	if err := s.conn.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CloseJob stops a posting from accepting applications.
func (s *JobService) CloseJob(ctx context.Context, user auth.User, id uint) error {
	status := models.JobClosed
	_, err := s.UpdateJob(ctx, user, id, &dtos.JobUpdateRequest{Status: &status})
	return err
}

func (s *JobService) DeleteJob(ctx context.Context, user auth.User, id uint) error {
	if _, err := s.ownedJob(ctx, user, id); err != nil {
		return err
	}
	if err := s.conn.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.log.Info("🗑️ Job deleted", zap.Uint("job_id", id), zap.String("employer", user.ID))
	return nil
}

func (s *JobService) ownedJob(ctx context.Context, user auth.User, id uint) (*models.Job, error) {
	job, err := s.conn.GetJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != user.ID {
		return nil, fmt.Errorf("job %d: %w", id, ErrForbidden)
	}
	return job, nil
}

var regionKeywords = []struct {
	region   string
	keywords []string
}{
	{"Remote", []string{"remote", "anywhere"}},
	{"USA", []string{"usa", "united states", "u.s.", "san francisco", "new york", "seattle", "boston", "chicago", "austin"}},
	{"Europe", []string{"germany", "france", "united kingdom", ", uk", "london", "berlin", "spain", "netherlands", "poland", "ireland", "sweden", "europe", "italy", "portugal"}},
	{"Asia", []string{"india", "china", "japan", "singapore", "korea", "vietnam", "indonesia", "asia", "philippines"}},
}

// RegionOf files a free-text location under one of the search regions.
func RegionOf(location string) string {
	loc := strings.ToLower(location)
	for _, r := range regionKeywords {
		for _, kw := range r.keywords {
			if strings.Contains(loc, kw) {
				return r.region
			}
		}
	}
	return "Other"
}
