package connector

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/samber/lo"
)

// Mock is the mock-data fallback. It serves the demo dataset from memory,
// applies the same filters as Store and keeps writes for the lifetime of
// the process.
type Mock struct {
	mu sync.RWMutex

	companies    []models.Company
	jobs         []models.Job
	profiles     []models.Profile
	applications []models.Application

	nextID map[string]uint
	now    func() time.Time
}

func NewMock(ds *Dataset) (*Mock, error) {
	snap, err := ds.Materialize(time.Now())
	if err != nil {
		return nil, err
	}
	return newMockFromSnapshot(snap, time.Now), nil
}

func newMockFromSnapshot(snap *Snapshot, now func() time.Time) *Mock {
	return &Mock{
		companies:    snap.Companies,
		jobs:         snap.Jobs,
		profiles:     snap.Profiles,
		applications: snap.Applications,
		nextID: map[string]uint{
			"companies":    uint(len(snap.Companies)),
			"jobs":         uint(len(snap.Jobs)),
			"profiles":     uint(len(snap.Profiles)),
			"applications": uint(len(snap.Applications)),
		},
		now: now,
	}
}

func (m *Mock) Mode() Mode { return ModeMock }

func (m *Mock) allocID(table string) uint {
	m.nextID[table]++
	return m.nextID[table]
}

// --- Profiles ---

func (m *Mock) GetUserProfile(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profileLocked(userID)
	if !ok {
		return nil, fmt.Errorf("fetching profile %s: %w", userID, ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (m *Mock) CreateUserProfile(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.profileLocked(profile.UserID); exists {
		return fmt.Errorf("creating profile %s: already exists", profile.UserID)
	}
	profile.ID = m.allocID("profiles")
	profile.CreatedAt = m.now()
	profile.UpdatedAt = profile.CreatedAt
	m.profiles = append(m.profiles, *profile)
	return nil
}

func (m *Mock) UpdateUserProfile(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profileLocked(profile.UserID)
	if !ok {
		return fmt.Errorf("updating profile %s: %w", profile.UserID, ErrNotFound)
	}
	updated := *profile
	updated.ID = p.ID
	updated.CreatedAt = p.CreatedAt
	updated.UpdatedAt = m.now()
	*p = updated
	return nil
}

func (m *Mock) DeleteUserProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.profiles)
	m.profiles = slices.DeleteFunc(m.profiles, func(p models.Profile) bool { return p.UserID == userID })
	if len(m.profiles) == before {
		return fmt.Errorf("deleting profile %s: %w", userID, ErrNotFound)
	}
	m.applications = slices.DeleteFunc(m.applications, func(a models.Application) bool { return a.UserID == userID })
	return nil
}

func (m *Mock) profileLocked(userID string) (*models.Profile, bool) {
	for i := range m.profiles {
		if m.profiles[i].UserID == userID {
			return &m.profiles[i], true
		}
	}
	return nil, false
}

// --- Jobs ---

func (m *Mock) GetJobs(_ context.Context, filter dtos.JobFilter, limit int) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	region, jobType, level := filter.Region(), filter.Type(), filter.Level()
	band, useBand := filter.SalaryBand()

	jobs := lo.Filter(m.jobs, func(j models.Job, _ int) bool {
		switch {
		case j.Status != models.JobActive:
			return false
		case term != "" && !strings.Contains(strings.ToLower(j.Title), term):
			return false
		case region != "" && j.Region != region:
			return false
		case jobType != "" && j.JobType != jobType:
			return false
		case level != "" && j.ExperienceLevel != level:
			return false
		}
		if useBand {
			// A zero bound is unknown, never a value.
			if j.SalaryMin == 0 && j.SalaryMax == 0 {
				return false
			}
			if band.MinAtLeast > 0 && j.SalaryMin < band.MinAtLeast {
				return false
			}
			if band.MaxBelow > 0 && (j.SalaryMax == 0 || j.SalaryMax >= band.MaxBelow) {
				return false
			}
		}
		return true
	})

	newest := func(a, b models.Job) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	}
	switch filter.Sort {
	case dtos.SortSalary:
		slices.SortStableFunc(jobs, func(a, b models.Job) int {
			if c := cmp.Compare(b.SalaryMax, a.SalaryMax); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})
	case dtos.SortRelevance:
		slices.SortStableFunc(jobs, func(a, b models.Job) int {
			if a.Featured != b.Featured {
				if a.Featured {
					return -1
				}
				return 1
			}
			return newest(a, b)
		})
	case dtos.SortCompanyRating:
		slices.SortStableFunc(jobs, func(a, b models.Job) int {
			if c := cmp.Compare(m.ratingLocked(b.CompanyID), m.ratingLocked(a.CompanyID)); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})
	default:
		slices.SortStableFunc(jobs, newest)
	}

	if n := limitOrDefault(limit); len(jobs) > n {
		jobs = jobs[:n]
	}
	return m.withCompaniesLocked(jobs), nil
}

func (m *Mock) GetFeaturedJobs(_ context.Context, limit int) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := lo.Filter(m.jobs, func(j models.Job, _ int) bool {
		return j.Featured && j.Status == models.JobActive
	})
	slices.SortStableFunc(jobs, func(a, b models.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if n := limitOrDefault(limit); len(jobs) > n {
		jobs = jobs[:n]
	}
	return m.withCompaniesLocked(jobs), nil
}

func (m *Mock) GetJobByID(_ context.Context, id uint) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobLocked(id)
	if !ok {
		return nil, fmt.Errorf("fetching job %d: %w", id, ErrNotFound)
	}
	out := m.withCompaniesLocked([]models.Job{*job})[0]
	return &out, nil
}

func (m *Mock) GetJobsByEmployer(_ context.Context, employerID string) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := lo.Filter(m.jobs, func(j models.Job, _ int) bool { return j.EmployerID == employerID })
	slices.SortStableFunc(jobs, func(a, b models.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	counts := lo.CountValuesBy(m.applications, func(a models.Application) uint { return a.JobID })
	for i := range jobs {
		jobs[i].ApplicationCount = int64(counts[jobs[i].ID])
	}
	return m.withCompaniesLocked(jobs), nil
}

func (m *Mock) CreateJob(_ context.Context, job *models.Job) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companyLocked(job.CompanyID); !ok && job.CompanyID != 0 {
		return 0, fmt.Errorf("creating job: company %d: %w", job.CompanyID, ErrNotFound)
	}
	job.ID = m.allocID("jobs")
	job.CreatedAt = m.now()
	job.UpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = models.JobActive
	}
	stored := *job
	stored.Company = models.Company{}
	m.jobs = append(m.jobs, stored)
	return job.ID, nil
}

func (m *Mock) UpdateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.jobLocked(job.ID)
	if !ok {
		return fmt.Errorf("updating job %d: %w", job.ID, ErrNotFound)
	}
	existing.Title = job.Title
	existing.Description = job.Description
	existing.Location = job.Location
	existing.Region = job.Region
	existing.JobType = job.JobType
	existing.ExperienceLevel = job.ExperienceLevel
	existing.SalaryText = job.SalaryText
	existing.SalaryMin = job.SalaryMin
	existing.SalaryMax = job.SalaryMax
	existing.Status = job.Status
	existing.Featured = job.Featured
	existing.UpdatedAt = m.now()
	return nil
}

func (m *Mock) DeleteJob(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.jobs)
	m.jobs = slices.DeleteFunc(m.jobs, func(j models.Job) bool { return j.ID == id })
	if len(m.jobs) == before {
		return fmt.Errorf("deleting job %d: %w", id, ErrNotFound)
	}
	m.applications = slices.DeleteFunc(m.applications, func(a models.Application) bool { return a.JobID == id })
	return nil
}

func (m *Mock) IncrementJobViews(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobLocked(id); ok {
		job.Views++
	}
	return nil
}

func (m *Mock) jobLocked(id uint) (*models.Job, bool) {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			return &m.jobs[i], true
		}
	}
	return nil, false
}

func (m *Mock) companyLocked(id uint) (*models.Company, bool) {
	for i := range m.companies {
		if m.companies[i].ID == id {
			return &m.companies[i], true
		}
	}
	return nil, false
}

func (m *Mock) ratingLocked(companyID uint) float64 {
	if c, ok := m.companyLocked(companyID); ok {
		return c.Rating
	}
	return 0
}

func (m *Mock) withCompaniesLocked(jobs []models.Job) []models.Job {
	for i := range jobs {
		if c, ok := m.companyLocked(jobs[i].CompanyID); ok {
			jobs[i].Company = *c
		}
	}
	return jobs
}

// --- Applications ---

func (m *Mock) GetApplicationsByUser(_ context.Context, userID string) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	apps := lo.Filter(m.applications, func(a models.Application, _ int) bool { return a.UserID == userID })
	return m.decorateLocked(apps, false), nil
}

func (m *Mock) GetApplicationsByJob(_ context.Context, jobID uint) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	apps := lo.Filter(m.applications, func(a models.Application, _ int) bool { return a.JobID == jobID })
	return m.decorateLocked(apps, true), nil
}

func (m *Mock) GetApplicationsByEmployer(_ context.Context, employerID string) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	apps := lo.Filter(m.applications, func(a models.Application, _ int) bool {
		job, ok := m.jobLocked(a.JobID)
		return ok && job.EmployerID == employerID
	})
	return m.decorateLocked(apps, true), nil
}

func (m *Mock) GetApplicationByID(_ context.Context, id uint) (*models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.applications {
		if a.ID == id {
			out := m.decorateLocked([]models.Application{a}, false)[0]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("fetching application %d: %w", id, ErrNotFound)
}

func (m *Mock) CreateApplication(_ context.Context, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobLocked(app.JobID); !ok {
		return fmt.Errorf("creating application: job %d: %w", app.JobID, ErrNotFound)
	}
	for _, a := range m.applications {
		if a.JobID == app.JobID && a.UserID == app.UserID {
			return fmt.Errorf("creating application: %s already applied to job %d", app.UserID, app.JobID)
		}
	}
	app.ID = m.allocID("applications")
	app.CreatedAt = m.now()
	app.UpdatedAt = app.CreatedAt
	if app.Status == "" {
		app.Status = models.StatusSubmitted
	}
	stored := *app
	stored.Job = models.Job{}
	stored.Profile = nil
	m.applications = append(m.applications, stored)
	return nil
}

func (m *Mock) UpdateApplicationStatus(_ context.Context, id uint, status, nextStep string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.applications {
		if m.applications[i].ID == id {
			m.applications[i].Status = status
			if nextStep != "" {
				m.applications[i].NextStep = nextStep
			}
			m.applications[i].UpdatedAt = m.now()
			return nil
		}
	}
	return fmt.Errorf("updating application %d: %w", id, ErrNotFound)
}

// decorateLocked attaches jobs (and optionally applicant profiles) and
// orders newest first.
func (m *Mock) decorateLocked(apps []models.Application, withProfiles bool) []models.Application {
	for i := range apps {
		if job, ok := m.jobLocked(apps[i].JobID); ok {
			apps[i].Job = m.withCompaniesLocked([]models.Job{*job})[0]
		}
		if withProfiles {
			if p, ok := m.profileLocked(apps[i].UserID); ok {
				profile := *p
				apps[i].Profile = &profile
			}
		}
	}
	slices.SortStableFunc(apps, func(a, b models.Application) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return apps
}

// --- Companies ---

func (m *Mock) GetCompanyByID(_ context.Context, id uint) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.companyLocked(id)
	if !ok {
		return nil, fmt.Errorf("fetching company %d: %w", id, ErrNotFound)
	}
	out := *c
	out.OpenJobs = m.openJobsLocked(out.ID)
	return &out, nil
}

func (m *Mock) GetCompanies(_ context.Context, filter dtos.CompanyFilter, limit int) ([]models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	industry, size := filter.IndustryValue(), filter.SizeValue()

	companies := lo.Filter(m.companies, func(c models.Company, _ int) bool {
		switch {
		case term != "" && !strings.Contains(strings.ToLower(c.Name), term):
			return false
		case industry != "" && c.Industry != industry:
			return false
		case size != "" && c.Size != size:
			return false
		}
		return true
	})
	for i := range companies {
		companies[i].OpenJobs = m.openJobsLocked(companies[i].ID)
	}

	byID := func(a, b models.Company) int { return cmp.Compare(a.ID, b.ID) }
	switch filter.Sort {
	case dtos.SortMostJobs:
		slices.SortStableFunc(companies, func(a, b models.Company) int {
			if c := cmp.Compare(b.OpenJobs, a.OpenJobs); c != 0 {
				return c
			}
			return byID(a, b)
		})
	case dtos.SortNewestCompany:
		slices.SortStableFunc(companies, func(a, b models.Company) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return byID(a, b)
		})
	case dtos.SortAlphabetical:
		slices.SortStableFunc(companies, func(a, b models.Company) int { return strings.Compare(a.Name, b.Name) })
	default:
		slices.SortStableFunc(companies, func(a, b models.Company) int {
			if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
				return c
			}
			return byID(a, b)
		})
	}

	if n := limitOrDefault(limit); len(companies) > n {
		companies = companies[:n]
	}
	return companies, nil
}

func (m *Mock) CreateCompany(_ context.Context, company *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.companies {
		if strings.EqualFold(c.Name, company.Name) {
			return fmt.Errorf("creating company %q: %w", company.Name, ErrCompanyTaken)
		}
	}
	company.ID = m.allocID("companies")
	company.CreatedAt = m.now()
	company.UpdatedAt = company.CreatedAt
	m.companies = append(m.companies, *company)
	return nil
}

func (m *Mock) UpdateCompany(_ context.Context, company *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companyLocked(company.ID)
	if !ok {
		return fmt.Errorf("updating company %d: %w", company.ID, ErrNotFound)
	}
	updated := *company
	updated.CreatedAt = c.CreatedAt
	updated.OwnerID = c.OwnerID
	updated.UpdatedAt = m.now()
	updated.OpenJobs = 0
	*c = updated
	return nil
}

func (m *Mock) openJobsLocked(companyID uint) int64 {
	return int64(lo.CountBy(m.jobs, func(j models.Job) bool {
		return j.CompanyID == companyID && j.Status == models.JobActive
	}))
}

// --- Candidates & analytics ---

func (m *Mock) GetCandidates(_ context.Context, employerID, search string) ([]models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	applicants := make(map[string]bool)
	for _, a := range m.applications {
		if job, ok := m.jobLocked(a.JobID); ok && job.EmployerID == employerID {
			applicants[a.UserID] = true
		}
	}
	term := strings.ToLower(strings.TrimSpace(search))
	profiles := lo.Filter(m.profiles, func(p models.Profile, _ int) bool {
		if !applicants[p.UserID] {
			return false
		}
		return term == "" || profileMatches(p, term)
	})
	slices.SortStableFunc(profiles, func(a, b models.Profile) int { return strings.Compare(a.FirstName, b.FirstName) })
	return profiles, nil
}

func profileMatches(p models.Profile, term string) bool {
	fields := append([]string{p.FirstName, p.LastName, p.Headline}, p.Skills...)
	return lo.SomeBy(fields, func(f string) bool { return strings.Contains(strings.ToLower(f), term) })
}

func (m *Mock) GetJobAnalytics(_ context.Context, employerID string) (models.JobAnalytics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out models.JobAnalytics
	for _, j := range m.jobs {
		if j.EmployerID != employerID {
			continue
		}
		switch j.Status {
		case models.JobActive:
			out.ActiveJobs++
		case models.JobFilled:
			out.JobsFilled++
		}
	}
	for _, a := range m.applications {
		job, ok := m.jobLocked(a.JobID)
		if !ok || job.EmployerID != employerID {
			continue
		}
		out.Applications++
		if a.Status == models.StatusInterview {
			out.Interviews++
		}
	}
	return out, nil
}
