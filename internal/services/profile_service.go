package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Resume formats accepted by UploadResume, by detected MIME type.
var resumeTypes = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// DeleteConfirmation must be typed to delete an account.
const DeleteConfirmation = "DELETE"

type ProfileService struct {
	conn      connector.Connector
	log       *zap.Logger
	uploadDir string
	maxUpload int64
}

func NewProfileService(conn connector.Connector, log *zap.Logger, uploadDir string, maxUpload int64) *ProfileService {
	return &ProfileService{conn: conn, log: log, uploadDir: uploadDir, maxUpload: maxUpload}
}

// Ensure returns the user's profile, creating it on first sign-in.
func (s *ProfileService) Ensure(ctx context.Context, user auth.User) (*models.Profile, error) {
	profile, err := s.conn.GetUserProfile(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, connector.ErrNotFound) {
		return nil, err
	}

	profile = &models.Profile{
		UserID:    user.ID,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Settings:  models.DefaultSettings(),
	}
	if err := s.conn.CreateUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Info("👤 Profile created", zap.String("user", user.ID), zap.String("role", user.Role))
	return profile, nil
}

// UpdatePersonal saves the personal-information form. Skills arrive as a
// comma separated list.
func (s *ProfileService) UpdatePersonal(ctx context.Context, user auth.User, req *dtos.ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.Ensure(ctx, user)
	if err != nil {
		return nil, err
	}
	profile.FirstName = strings.TrimSpace(req.FirstName)
	profile.LastName = strings.TrimSpace(req.LastName)
	profile.Phone = req.Phone
	profile.City = req.City
	profile.Country = req.Country
	profile.Website = req.Website
	profile.About = req.About
	profile.Headline = req.Headline
	profile.Skills = SplitSkills(req.Skills)

	if err := s.conn.UpdateUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) UpdatePreferences(ctx context.Context, user auth.User, req *dtos.PreferencesRequest) (*models.Profile, error) {
	profile, err := s.Ensure(ctx, user)
	if err != nil {
		return nil, err
	}
	profile.Preferences = models.Preferences{
		JobTitles:         req.JobTitles,
		JobTypes:          req.JobTypes,
		Locations:         req.Locations,
		SalaryExpectation: req.SalaryExpectation,
		Relocation:        req.Relocation,
		Travel:            req.Travel,
		Notes:             req.Notes,
	}
	if err := s.conn.UpdateUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) UpdateSettings(ctx context.Context, user auth.User, req *dtos.SettingsRequest) (*models.Profile, error) {
	profile, err := s.Ensure(ctx, user)
	if err != nil {
		return nil, err
	}
	profile.Settings = models.Settings(*req)
	if err := s.conn.UpdateUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadResume stores a PDF or DOCX resume under the upload directory and
// links it from the profile. The format is detected from the content, not
// the file name.
func (s *ProfileService) UploadResume(ctx context.Context, user auth.User, data []byte) (string, error) {
	if int64(len(data)) > s.maxUpload {
		return "", ErrResumeTooLarge
	}
	mtype := mimetype.Detect(data)
	ext := ""
	for mime, e := range resumeTypes {
		if mtype.Is(mime) {
			ext = e
		}
	}
	if ext == "" {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedResume, mtype.String())
	}

	profile, err := s.Ensure(ctx, user)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.uploadDir, user.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("saving resume: %w", err)
	}

	url := "/uploads/" + user.ID + "/" + name
	profile.ResumeURL = url
	if err := s.conn.UpdateUserProfile(ctx, profile); err != nil {
		return "", err
	}
	s.log.Info("📄 Resume uploaded", zap.String("user", user.ID), zap.String("type", mtype.String()), zap.Int("bytes", len(data)))
	return url, nil
}

// DeleteAccount removes the profile, its applications and uploads. The
// caller must pass the literal confirmation text.
func (s *ProfileService) DeleteAccount(ctx context.Context, user auth.User, confirmation string) error {
	if confirmation != DeleteConfirmation {
		return ErrConfirmDelete
	}
	if err := s.conn.DeleteUserProfile(ctx, user.ID); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.uploadDir, user.ID)); err != nil {
		s.log.Warn("⚠️ Could not remove uploads", zap.String("user", user.ID), zap.Error(err))
	}
	s.log.Info("🗑️ Account deleted", zap.String("user", user.ID))
	return nil
}

// SplitSkills turns "Go, SQL,, go" into ["Go", "SQL"].
func SplitSkills(raw string) []string {
	skills := lo.Map(strings.Split(raw, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
	skills = lo.Compact(skills)
	return lo.UniqBy(skills, strings.ToLower)
}
