// Package connector is the data-access layer of JobWave.
//
// Every method is a single CRUD-style call. Store talks to a live database
// through gorm; Mock answers from the embedded demo dataset when no database
// is configured so the UI stays usable in a disconnected demo mode.
package connector

import (
	"context"
	"errors"

	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit caps list queries when the caller passes a non-positive limit.
const DefaultLimit = 50

var ErrNotFound = errors.New("record not found")

// ErrCompanyTaken is returned when a company name is already in use.
var ErrCompanyTaken = errors.New("a company with that name already exists")

type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

type Connector interface {
	Mode() Mode

	GetUserProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateUserProfile(ctx context.Context, profile *models.Profile) error
	UpdateUserProfile(ctx context.Context, profile *models.Profile) error
	DeleteUserProfile(ctx context.Context, userID string) error

	GetJobs(ctx context.Context, filter dtos.JobFilter, limit int) ([]models.Job, error)
	GetFeaturedJobs(ctx context.Context, limit int) ([]models.Job, error)
	GetJobByID(ctx context.Context, id uint) (*models.Job, error)
	GetJobsByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) (uint, error)
	UpdateJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id uint) error
	IncrementJobViews(ctx context.Context, id uint) error

	GetApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error)
	GetApplicationsByJob(ctx context.Context, jobID uint) ([]models.Application, error)
	GetApplicationsByEmployer(ctx context.Context, employerID string) ([]models.Application, error)
	GetApplicationByID(ctx context.Context, id uint) (*models.Application, error)
	CreateApplication(ctx context.Context, app *models.Application) error
	UpdateApplicationStatus(ctx context.Context, id uint, status, nextStep string) error

	GetCompanyByID(ctx context.Context, id uint) (*models.Company, error)
	GetCompanies(ctx context.Context, filter dtos.CompanyFilter, limit int) ([]models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	UpdateCompany(ctx context.Context, company *models.Company) error

	// GetCandidates returns the profiles of everyone who applied to one of
	// the employer's postings, optionally narrowed by name or skill.
	GetCandidates(ctx context.Context, employerID, search string) ([]models.Profile, error)
	GetJobAnalytics(ctx context.Context, employerID string) (models.JobAnalytics, error)
}

// New picks the live store when a database handle is available and falls
// back to the demo dataset otherwise.
func New(db *gorm.DB, log *zap.Logger) (Connector, error) {
	if db != nil {
		return NewStore(db), nil
	}
	log.Warn("⚠️ No database configured, serving the demo dataset")
	data, err := LoadDemoDataset()
	if err != nil {
		return nil, err
	}
	return NewMock(data)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
