package connector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Store is the live connector backed by gorm.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Mode() Mode { return ModeLive }

const employerApplicationsJoin = "JOIN jobs ON jobs.id = applications.job_id AND jobs.deleted_at IS NULL"

// --- Profiles ---

func (s *Store) GetUserProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("fetching profile %s: %w", userID, translate(err))
	}
	return &profile, nil
}

func (s *Store) CreateUserProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("creating profile %s: %w", profile.UserID, err)
	}
	return nil
}

// UpdateUserProfile writes every column of the profile, zero values
// included, keyed by user id.
func (s *Store) UpdateUserProfile(ctx context.Context, profile *models.Profile) error {
	res := s.DB.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", profile.UserID).
		Select("*").
		Omit("id", "created_at", "deleted_at", "user_id").
		Updates(profile)
	if res.Error != nil {
		return fmt.Errorf("updating profile %s: %w", profile.UserID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("updating profile %s: %w", profile.UserID, ErrNotFound)
	}
	return nil
}

// DeleteUserProfile removes the profile and every application the user made.
func (s *Store) DeleteUserProfile(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return fmt.Errorf("deleting applications of %s: %w", userID, err)
		}
		res := tx.Where("user_id = ?", userID).Delete(&models.Profile{})
		if res.Error != nil {
			return fmt.Errorf("deleting profile %s: %w", userID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("deleting profile %s: %w", userID, ErrNotFound)
		}
		return nil
	})
}

// --- Jobs ---

// GetJobs lists active postings matching the filter.
func (s *Store) GetJobs(ctx context.Context, filter dtos.JobFilter, limit int) ([]models.Job, error) {
	query := s.DB.WithContext(ctx).Model(&models.Job{}).
		Preload("Company").
		Where("jobs.status = ?", models.JobActive).
		Limit(limitOrDefault(limit))

	if term := strings.TrimSpace(filter.Search); term != "" {
		query = query.Where("LOWER(jobs.title) LIKE ?", likePattern(term))
	}
	if region := filter.Region(); region != "" {
		query = query.Where("jobs.region = ?", region)
	}
	if jobType := filter.Type(); jobType != "" {
		query = query.Where("jobs.job_type = ?", jobType)
	}
	if level := filter.Level(); level != "" {
		query = query.Where("jobs.experience_level = ?", level)
	}
	if band, ok := filter.SalaryBand(); ok {
		// A zero bound is unknown, never a value.
		query = query.Where("(jobs.salary_min > 0 OR jobs.salary_max > 0)")
		if band.MinAtLeast > 0 {
			query = query.Where("jobs.salary_min >= ?", band.MinAtLeast)
		}
		if band.MaxBelow > 0 {
			query = query.Where("jobs.salary_max > 0 AND jobs.salary_max < ?", band.MaxBelow)
		}
	}

	switch filter.Sort {
	case dtos.SortSalary:
		query = query.Order("jobs.salary_max DESC")
	case dtos.SortRelevance:
		query = query.Order("jobs.featured DESC").Order("jobs.created_at DESC")
	case dtos.SortCompanyRating:
		query = query.Joins("LEFT JOIN companies ON companies.id = jobs.company_id").
			Order("companies.rating DESC")
	default:
		query = query.Order("jobs.created_at DESC")
	}

	var jobs []models.Job
	if err := query.Order("jobs.id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("fetching jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) GetFeaturedJobs(ctx context.Context, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Preload("Company").
		Where("featured = ? AND status = ?", true, models.JobActive).
		Order("created_at DESC").
		Limit(limitOrDefault(limit)).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("fetching featured jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) GetJobByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).Preload("Company").First(&job, id).Error; err != nil {
		return nil, fmt.Errorf("fetching job %d: %w", id, translate(err))
	}
	return &job, nil
}

// GetJobsByEmployer returns every posting of the employer, whatever its
// status, with application counts filled in.
func (s *Store) GetJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Preload("Company").
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("fetching jobs of %s: %w", employerID, err)
	}
	if len(jobs) == 0 {
		return jobs, nil
	}

	ids := make([]uint, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
	}
	var rows []struct {
		JobID uint
		N     int64
	}
	err = s.DB.WithContext(ctx).Model(&models.Application{}).
		Select("job_id, COUNT(*) AS n").
		Where("job_id IN ?", ids).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting applications of %s: %w", employerID, err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.JobID] = row.N
	}
	for i := range jobs {
		jobs[i].ApplicationCount = counts[jobs[i].ID]
	}
	return jobs, nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) (uint, error) {
	if err := s.DB.WithContext(ctx).Omit("Company").Create(job).Error; err != nil {
		return 0, fmt.Errorf("creating job: %w", err)
	}
	return job.ID, nil
}

func (s *Store) UpdateJob(ctx context.Context, job *models.Job) error {
	res := s.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":            job.Title,
		"description":      job.Description,
		"location":         job.Location,
		"region":           job.Region,
		"job_type":         job.JobType,
		"experience_level": job.ExperienceLevel,
		"salary_text":      job.SalaryText,
		"salary_min":       job.SalaryMin,
		"salary_max":       job.SalaryMax,
		"status":           job.Status,
		"featured":         job.Featured,
	})
	if res.Error != nil {
		return fmt.Errorf("updating job %d: %w", job.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("updating job %d: %w", job.ID, ErrNotFound)
	}
	return nil
}

// DeleteJob removes the posting together with its applications.
func (s *Store) DeleteJob(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return fmt.Errorf("deleting applications of job %d: %w", id, err)
		}
		res := tx.Delete(&models.Job{}, id)
		if res.Error != nil {
			return fmt.Errorf("deleting job %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("deleting job %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *Store) IncrementJobViews(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("counting view of job %d: %w", id, err)
	}
	return nil
}

// --- Applications ---

func (s *Store) GetApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("fetching applications of %s: %w", userID, err)
	}
	return apps, nil
}

func (s *Store) GetApplicationsByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Job").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("fetching applications for job %d: %w", jobID, err)
	}
	return s.attachProfiles(ctx, apps)
}

func (s *Store) GetApplicationsByEmployer(ctx context.Context, employerID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Joins(employerApplicationsJoin).
		Where("jobs.employer_id = ?", employerID).
		Order("applications.created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("fetching applications for employer %s: %w", employerID, err)
	}
	return s.attachProfiles(ctx, apps)
}

func (s *Store) GetApplicationByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := s.DB.WithContext(ctx).Preload("Job").First(&app, id).Error; err != nil {
		return nil, fmt.Errorf("fetching application %d: %w", id, translate(err))
	}
	return &app, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	if err := s.DB.WithContext(ctx).Omit("Job").Create(app).Error; err != nil {
		return fmt.Errorf("creating application: %w", err)
	}
	return nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id uint, status, nextStep string) error {
	updates := map[string]interface{}{"status": status}
	if nextStep != "" {
		updates["next_step"] = nextStep
	}
	res := s.DB.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("updating application %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("updating application %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) attachProfiles(ctx context.Context, apps []models.Application) ([]models.Application, error) {
	if len(apps) == 0 {
		return apps, nil
	}
	userIDs := make([]string, 0, len(apps))
	for _, app := range apps {
		userIDs = append(userIDs, app.UserID)
	}
	var profiles []models.Profile
	if err := s.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("fetching applicant profiles: %w", err)
	}
	byUser := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	for i := range apps {
		apps[i].Profile = byUser[apps[i].UserID]
	}
	return apps, nil
}

// --- Companies ---

func (s *Store) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, fmt.Errorf("fetching company %d: %w", id, translate(err))
	}
	companies := []models.Company{company}
	if err := s.fillOpenJobs(ctx, companies); err != nil {
		return nil, err
	}
	return &companies[0], nil
}

func (s *Store) GetCompanies(ctx context.Context, filter dtos.CompanyFilter, limit int) ([]models.Company, error) {
	query := s.DB.WithContext(ctx).Model(&models.Company{}).Limit(limitOrDefault(limit))

	if term := strings.TrimSpace(filter.Search); term != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(term))
	}
	if industry := filter.IndustryValue(); industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if size := filter.SizeValue(); size != "" {
		query = query.Where("size = ?", size)
	}

	switch filter.Sort {
	case dtos.SortMostJobs:
		query = query.Order("(SELECT COUNT(*) FROM jobs WHERE jobs.company_id = companies.id AND jobs.status = 'Active' AND jobs.deleted_at IS NULL) DESC")
	case dtos.SortNewestCompany:
		query = query.Order("created_at DESC")
	case dtos.SortAlphabetical:
		query = query.Order("name ASC")
	default:
		query = query.Order("rating DESC")
	}

	var companies []models.Company
	if err := query.Order("id ASC").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("fetching companies: %w", err)
	}
	if err := s.fillOpenJobs(ctx, companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	var taken int64
	if err := s.DB.WithContext(ctx).Unscoped().Model(&models.Company{}).
		Where("LOWER(name) = ?", strings.ToLower(company.Name)).
		Count(&taken).Error; err != nil {
		return fmt.Errorf("checking company %q: %w", company.Name, err)
	}
	if taken > 0 {
		return fmt.Errorf("creating company %q: %w", company.Name, ErrCompanyTaken)
	}
	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = ErrCompanyTaken
		}
		return fmt.Errorf("creating company %q: %w", company.Name, err)
	}
	return nil
}

func (s *Store) UpdateCompany(ctx context.Context, company *models.Company) error {
	res := s.DB.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", company.ID).
		Select("*").
		Omit("id", "created_at", "deleted_at", "owner_id").
		Updates(company)
	if res.Error != nil {
		return fmt.Errorf("updating company %d: %w", company.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("updating company %d: %w", company.ID, ErrNotFound)
	}
	return nil
}

func (s *Store) fillOpenJobs(ctx context.Context, companies []models.Company) error {
	if len(companies) == 0 {
		return nil
	}
	ids := make([]uint, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
	}
	var rows []struct {
		CompanyID uint
		N         int64
	}
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Select("company_id, COUNT(*) AS n").
		Where("company_id IN ? AND status = ?", ids, models.JobActive).
		Group("company_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("counting open jobs: %w", err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CompanyID] = row.N
	}
	for i := range companies {
		companies[i].OpenJobs = counts[companies[i].ID]
	}
	return nil
}

// --- Candidates & analytics ---

func (s *Store) GetCandidates(ctx context.Context, employerID, search string) ([]models.Profile, error) {
	applicants := s.DB.Model(&models.Application{}).
		Select("applications.user_id").
		Joins(employerApplicationsJoin).
		Where("jobs.employer_id = ?", employerID)

	query := s.DB.WithContext(ctx).Where("user_id IN (?)", applicants)
	if term := strings.TrimSpace(search); term != "" {
		pattern := likePattern(term)
		query = query.Where(
			"(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(headline) LIKE ? OR LOWER(skills) LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	var profiles []models.Profile
	if err := query.Order("first_name ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("fetching candidates for %s: %w", employerID, err)
	}
	return profiles, nil
}

// GetJobAnalytics runs the four dashboard counts concurrently.
func (s *Store) GetJobAnalytics(ctx context.Context, employerID string) (models.JobAnalytics, error) {
	var out models.JobAnalytics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Job{}).
			Where("employer_id = ? AND status = ?", employerID, models.JobActive).
			Count(&out.ActiveJobs).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Job{}).
			Where("employer_id = ? AND status = ?", employerID, models.JobFilled).
			Count(&out.JobsFilled).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Application{}).
			Joins(employerApplicationsJoin).
			Where("jobs.employer_id = ?", employerID).
			Count(&out.Applications).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Application{}).
			Joins(employerApplicationsJoin).
			Where("jobs.employer_id = ? AND applications.status = ?", employerID, models.StatusInterview).
			Count(&out.Interviews).Error
	})

	if err := g.Wait(); err != nil {
		return models.JobAnalytics{}, fmt.Errorf("fetching analytics for %s: %w", employerID, err)
	}
	return out, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
