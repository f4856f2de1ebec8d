package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
)

// Job posting statuses.
const (
	JobActive = "Active"
	JobClosed = "Closed"
	JobFilled = "Filled"
)

// Application statuses as stored. Views translate them to the labels each
// audience is used to (see StatusLabel).
const (
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusInterview = "interview"
	StatusRejected  = "rejected"
	StatusHired     = "hired"
)

var ApplicationStatuses = []string{StatusSubmitted, StatusReviewed, StatusInterview, StatusRejected, StatusHired}

type Experience struct {
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Years       string `json:"years" yaml:"years"`
}

type Preferences struct {
	JobTitles         []string `json:"job_titles" yaml:"job_titles"`
	JobTypes          []string `json:"job_types" yaml:"job_types"`
	Locations         []string `json:"locations" yaml:"locations"`
	SalaryExpectation string   `json:"salary_expectation" yaml:"salary_expectation"`
	Relocation        bool     `json:"relocation" yaml:"relocation"`
	Travel            bool     `json:"travel" yaml:"travel"`
	Notes             string   `json:"notes" yaml:"notes"`
}

type Settings struct {
	JobRecommendations bool `json:"job_recommendations"`
	ApplicationUpdates bool `json:"application_updates"`
	ProfileViews       bool `json:"profile_views"`
	JobAlerts          bool `json:"job_alerts"`
	VisibleToEmployers bool `json:"visible_to_employers"`
	AllowContact       bool `json:"allow_contact"`
	ShowSalary         bool `json:"show_salary"`
}

// DefaultSettings mirrors the toggles a fresh account starts with.
func DefaultSettings() Settings {
	return Settings{
		JobRecommendations: true,
		ApplicationUpdates: true,
		JobAlerts:          true,
		VisibleToEmployers: true,
		AllowContact:       true,
	}
}

type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID          string `gorm:"uniqueIndex;not null" json:"user_id"`
	Role            string `gorm:"not null;default:'jobseeker'" json:"role"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Website         string `json:"website"`
	About           string `gorm:"type:text" json:"about"`
	Headline        string `json:"headline"`
	YearsExperience int    `json:"years_experience"`
	TalentStatus    string `json:"talent_status"`
	ResumeURL       string `json:"resume_url"`

	Skills      []string     `gorm:"serializer:json;type:text" json:"skills"`
	Experiences []Experience `gorm:"serializer:json;type:text" json:"experiences"`
	Education   []Education  `gorm:"serializer:json;type:text" json:"education"`
	Preferences Preferences  `gorm:"serializer:json;type:text" json:"preferences"`
	Settings    Settings     `gorm:"serializer:json;type:text" json:"settings"`

	// Employers only.
	CompanyID *uint `json:"company_id,omitempty"`
}

func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Industry    string  `json:"industry"`
	Location    string  `json:"location"`
	Size        string  `json:"size"`
	Rating      float64 `json:"rating"`
	Description string  `gorm:"type:text" json:"description"`
	Website     string  `json:"website"`
	FoundedYear int     `json:"founded_year"`
	OwnerID     string  `gorm:"index" json:"owner_id"`

	// Filled by the connector, not persisted.
	OpenJobs int64 `gorm:"-" json:"open_jobs"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EmployerID string `gorm:"index" json:"employer_id"`

	// Foreign Key
	CompanyID uint `json:"company_id"`
	// Association: GORM needs Preload() to fill this
	Company Company `json:"company"`

	Title           string `gorm:"not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	Location        string `json:"location"`
	Region          string `gorm:"index" json:"region"`
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
	SalaryText      string `json:"salary"`
	SalaryMin       int    `json:"salary_min"`
	SalaryMax       int    `json:"salary_max"`
	Status          string `gorm:"default:'Active'" json:"status"`
	Views           int    `json:"views"`
	Featured        bool   `json:"featured"`

	// Filled on employer listings, not persisted.
	ApplicationCount int64 `gorm:"-" json:"applications,omitempty"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID uint `gorm:"index;uniqueIndex:idx_application_job_user" json:"job_id"`
	Job   Job  `json:"job"`

	UserID    string `gorm:"index;uniqueIndex:idx_application_job_user" json:"user_id"`
	Status    string `gorm:"default:'submitted'" json:"status"`
	NextStep  string `json:"next_step"`
	ResumeURL string `json:"resume_url"`

	// Applicant profile, attached on employer-side queries.
	Profile *Profile `gorm:"-" json:"profile,omitempty"`
}

// JobAnalytics are the employer dashboard counters.
type JobAnalytics struct {
	ActiveJobs   int64 `json:"active_jobs"`
	Applications int64 `json:"applications"`
	Interviews   int64 `json:"interviews"`
	JobsFilled   int64 `json:"jobs_filled"`
}
