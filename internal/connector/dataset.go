package connector

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/justsurfingit/jobwave/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed demo/dataset.yaml
var demoDataset []byte

// Dataset is the YAML form of the demo records. Relations are expressed by
// company name and job key so the file stays readable.
type Dataset struct {
	Companies    []seedCompany     `yaml:"companies"`
	Jobs         []seedJob         `yaml:"jobs"`
	Profiles     []seedProfile     `yaml:"profiles"`
	Applications []seedApplication `yaml:"applications"`
}

type seedCompany struct {
	Name           string  `yaml:"name"`
	Industry       string  `yaml:"industry"`
	Location       string  `yaml:"location"`
	Size           string  `yaml:"size"`
	Rating         float64 `yaml:"rating"`
	Description    string  `yaml:"description"`
	Website        string  `yaml:"website"`
	FoundedYear    int     `yaml:"founded_year"`
	OwnerID        string  `yaml:"owner_id"`
	CreatedDaysAgo int     `yaml:"created_days_ago"`
}

type seedJob struct {
	Key             string `yaml:"key"`
	Company         string `yaml:"company"`
	EmployerID      string `yaml:"employer_id"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	Location        string `yaml:"location"`
	Region          string `yaml:"region"`
	JobType         string `yaml:"job_type"`
	ExperienceLevel string `yaml:"experience_level"`
	Salary          string `yaml:"salary"`
	SalaryMin       int    `yaml:"salary_min"`
	SalaryMax       int    `yaml:"salary_max"`
	PostedDaysAgo   int    `yaml:"posted_days_ago"`
	Status          string `yaml:"status"`
	Views           int    `yaml:"views"`
	Featured        bool   `yaml:"featured"`
}

type seedProfile struct {
	UserID          string              `yaml:"user_id"`
	Role            string              `yaml:"role"`
	FirstName       string              `yaml:"first_name"`
	LastName        string              `yaml:"last_name"`
	Email           string              `yaml:"email"`
	Phone           string              `yaml:"phone"`
	City            string              `yaml:"city"`
	Country         string              `yaml:"country"`
	Website         string              `yaml:"website"`
	About           string              `yaml:"about"`
	Headline        string              `yaml:"headline"`
	YearsExperience int                 `yaml:"years_experience"`
	TalentStatus    string              `yaml:"talent_status"`
	ResumeURL       string              `yaml:"resume_url"`
	Skills          []string            `yaml:"skills"`
	Experiences     []models.Experience `yaml:"experiences"`
	Education       []models.Education  `yaml:"education"`
	Preferences     models.Preferences  `yaml:"preferences"`
	Company         string              `yaml:"company"`
}

type seedApplication struct {
	Job            string `yaml:"job"`
	UserID         string `yaml:"user_id"`
	Status         string `yaml:"status"`
	NextStep       string `yaml:"next_step"`
	ResumeURL      string `yaml:"resume_url"`
	AppliedDaysAgo int    `yaml:"applied_days_ago"`
}

// Snapshot holds materialized records with ids assigned from 1 in file
// order and every relation resolved.
type Snapshot struct {
	Companies    []models.Company
	Jobs         []models.Job
	Profiles     []models.Profile
	Applications []models.Application
}

func LoadDemoDataset() (*Dataset, error) {
	return ParseDataset(demoDataset)
}

func ParseDataset(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parsing demo dataset: %w", err)
	}
	return &ds, nil
}

// Materialize turns the dataset into records, dating them relative to now.
func (ds *Dataset) Materialize(now time.Time) (*Snapshot, error) {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	snap := &Snapshot{}

	companyIDs := make(map[string]uint, len(ds.Companies))
	for i, c := range ds.Companies {
		id := uint(i + 1)
		companyIDs[c.Name] = id
		snap.Companies = append(snap.Companies, models.Company{
			ID:          id,
			CreatedAt:   daysAgo(c.CreatedDaysAgo),
			UpdatedAt:   daysAgo(c.CreatedDaysAgo),
			Name:        c.Name,
			Industry:    c.Industry,
			Location:    c.Location,
			Size:        c.Size,
			Rating:      c.Rating,
			Description: c.Description,
			Website:     c.Website,
			FoundedYear: c.FoundedYear,
			OwnerID:     c.OwnerID,
		})
	}

	jobIDs := make(map[string]uint, len(ds.Jobs))
	for i, j := range ds.Jobs {
		companyID, ok := companyIDs[j.Company]
		if !ok {
			return nil, fmt.Errorf("job %q: unknown company %q", j.Key, j.Company)
		}
		id := uint(i + 1)
		jobIDs[j.Key] = id
		snap.Jobs = append(snap.Jobs, models.Job{
			ID:              id,
			CreatedAt:       daysAgo(j.PostedDaysAgo),
			UpdatedAt:       daysAgo(j.PostedDaysAgo),
			EmployerID:      j.EmployerID,
			CompanyID:       companyID,
			Title:           j.Title,
			Description:     j.Description,
			Location:        j.Location,
			Region:          j.Region,
			JobType:         j.JobType,
			ExperienceLevel: j.ExperienceLevel,
			SalaryText:      j.Salary,
			SalaryMin:       j.SalaryMin,
			SalaryMax:       j.SalaryMax,
			Status:          j.Status,
			Views:           j.Views,
			Featured:        j.Featured,
		})
	}

	for i, p := range ds.Profiles {
		profile := models.Profile{
			ID:              uint(i + 1),
			CreatedAt:       now,
			UpdatedAt:       now,
			UserID:          p.UserID,
			Role:            p.Role,
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			Email:           p.Email,
			Phone:           p.Phone,
			City:            p.City,
			Country:         p.Country,
			Website:         p.Website,
			About:           p.About,
			Headline:        p.Headline,
			YearsExperience: p.YearsExperience,
			TalentStatus:    p.TalentStatus,
			ResumeURL:       p.ResumeURL,
			Skills:          p.Skills,
			Experiences:     p.Experiences,
			Education:       p.Education,
			Preferences:     p.Preferences,
			Settings:        models.DefaultSettings(),
		}
		if p.Company != "" {
			companyID, ok := companyIDs[p.Company]
			if !ok {
				return nil, fmt.Errorf("profile %q: unknown company %q", p.UserID, p.Company)
			}
			profile.CompanyID = &companyID
		}
		snap.Profiles = append(snap.Profiles, profile)
	}

	for i, a := range ds.Applications {
		jobID, ok := jobIDs[a.Job]
		if !ok {
			return nil, fmt.Errorf("application %d: unknown job %q", i, a.Job)
		}
		snap.Applications = append(snap.Applications, models.Application{
			ID:        uint(i + 1),
			CreatedAt: daysAgo(a.AppliedDaysAgo),
			UpdatedAt: daysAgo(a.AppliedDaysAgo),
			JobID:     jobID,
			UserID:    a.UserID,
			Status:    a.Status,
			NextStep:  a.NextStep,
			ResumeURL: a.ResumeURL,
		})
	}

	return snap, nil
}
