package services

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"go.uber.org/zap"
)

type CompanyService struct {
	conn connector.Connector
	log  *zap.Logger
}

func NewCompanyService(conn connector.Connector, log *zap.Logger) *CompanyService {
	return &CompanyService{conn: conn, log: log}
}

func (s *CompanyService) List(ctx context.Context, filter dtos.CompanyFilter) ([]models.Company, error) {
	return s.conn.GetCompanies(ctx, filter, 0)
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	return s.conn.GetCompanyByID(ctx, id)
}

// ForEmployer returns the company linked to the employer's profile, or
// connector.ErrNotFound when there is none yet.
func (s *CompanyService) ForEmployer(ctx context.Context, user auth.User) (*models.Company, error) {
	profile, err := s.conn.GetUserProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile.CompanyID == nil {
		return nil, connector.ErrNotFound
	}
	return s.conn.GetCompanyByID(ctx, *profile.CompanyID)
}

// Save updates the employer's company profile, creating and linking the
// company on first save. An unowned company with a matching name is
// adopted instead of duplicated.
func (s *CompanyService) Save(ctx context.Context, user auth.User, req *dtos.CompanyRequest) (*models.Company, error) {
	if !user.IsEmployer() {
		return nil, ErrForbidden
	}

	company, err := s.ForEmployer(ctx, user)
	switch {
	case errors.Is(err, connector.ErrNotFound):
		company = nil
	case err != nil:
		return nil, err
	}

	if company == nil {
		companies, err := s.conn.GetCompanies(ctx, dtos.CompanyFilter{}, 1000)
		if err != nil {
			return nil, err
		}
		if match := MatchCompany(companies, req.Name, req.Website); match != nil && (match.OwnerID == "" || match.OwnerID == user.ID) {
			company = match
		}
	}

	fields := models.Company{
		Name:        strings.TrimSpace(req.Name),
		Industry:    req.Industry,
		Size:        req.Size,
		Location:    req.Location,
		Website:     req.Website,
		FoundedYear: req.FoundedYear,
		Description: req.Description,
		Rating:      req.Rating,
		OwnerID:     user.ID,
	}

	if company == nil {
		company = &fields
		if err := s.conn.CreateCompany(ctx, company); err != nil {
			return nil, err
		}
		s.log.Info("🏢 Company created", zap.String("company", company.Name), zap.String("owner", user.ID))
	} else {
		if fields.Rating == 0 {
			fields.Rating = company.Rating
		}
		fields.ID = company.ID
		fields.CreatedAt = company.CreatedAt
		fields.OwnerID = company.OwnerID
		if err := s.conn.UpdateCompany(ctx, &fields); err != nil {
			return nil, err
		}
		company = &fields
	}

	if err := s.link(ctx, user, company.ID); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) link(ctx context.Context, user auth.User, companyID uint) error {
	profile, err := s.conn.GetUserProfile(ctx, user.ID)
	if err != nil {
		return err
	}
	if profile.CompanyID != nil && *profile.CompanyID == companyID {
		return nil
	}
	profile.CompanyID = &companyID
	return s.conn.UpdateUserProfile(ctx, profile)
}
