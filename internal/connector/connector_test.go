package connector

import (
	"testing"

	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoEmployer = "user_987654321"

// eachConnector runs the same expectations against the in-memory fallback
// and the gorm store.
func eachConnector(t *testing.T, fn func(t *testing.T, c Connector)) {
	t.Helper()
	t.Run("mock", func(t *testing.T) { fn(t, newTestMock(t)) })
	t.Run("store", func(t *testing.T) { fn(t, newTestStore(t)) })
}

func titles(jobs []models.Job) []string {
	return lo.Map(jobs, func(j models.Job, _ int) string { return j.Title })
}

func TestGetJobs_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter dtos.JobFilter
		want   []string
	}{
		{
			name:   "search is case-insensitive on title",
			filter: dtos.JobFilter{Search: "DEVELOPER"},
			want:   []string{"Frontend Developer", "Senior Full Stack Developer"},
		},
		{
			name:   "any values do not filter",
			filter: dtos.JobFilter{Location: dtos.AnyLocation, JobType: dtos.AnyType, Experience: dtos.AnyLevel, Salary: dtos.AnyRange},
			want:   []string{"Marketing Specialist", "Frontend Developer", "Senior Full Stack Developer", "Product Manager", "AI Research Scientist", "UX/UI Designer", "Data Scientist", "DevOps Engineer"},
		},
		{
			name:   "region",
			filter: dtos.JobFilter{Location: "Europe"},
			want:   []string{"Frontend Developer"},
		},
		{
			name:   "job type",
			filter: dtos.JobFilter{JobType: "Contract"},
			want:   []string{"DevOps Engineer"},
		},
		{
			name:   "experience level",
			filter: dtos.JobFilter{Experience: "Senior"},
			want:   []string{"Senior Full Stack Developer", "Product Manager", "Data Scientist"},
		},
		{
			name:   "under 50K",
			filter: dtos.JobFilter{Salary: dtos.SalaryUnder50K},
			want:   []string{"Marketing Specialist"},
		},
		{
			name:   "50K to 100K",
			filter: dtos.JobFilter{Salary: dtos.Salary50To100K},
			want:   []string{"Frontend Developer"},
		},
		{
			name:   "100K to 150K excludes a max of exactly 150K",
			filter: dtos.JobFilter{Salary: dtos.Salary100To150K},
			want:   []string{"Product Manager", "DevOps Engineer"},
		},
		{
			name:   "over 150K",
			filter: dtos.JobFilter{Salary: dtos.SalaryOver150K},
			want:   []string{},
		},
		{
			name:   "unknown salary option is ignored",
			filter: dtos.JobFilter{Salary: "lots", Location: "Remote"},
			want:   []string{"Marketing Specialist", "Senior Full Stack Developer", "AI Research Scientist", "DevOps Engineer"},
		},
	}

	eachConnector(t, func(t *testing.T, c Connector) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				jobs, err := c.GetJobs(t.Context(), tt.filter, 0)
				require.NoError(t, err)
				assert.Equal(t, tt.want, titles(jobs))
			})
		}
	})
}

func TestGetJobs_SalaryBandsSkipUnknownBounds(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		for _, j := range []models.Job{
			{Title: "Staff Open Ended", SalaryMin: 150000},
			{Title: "Competitive Pay"},
		} {
			j.EmployerID = demoEmployer
			j.CompanyID = 1
			j.Region = "Remote"
			j.JobType = "Full-time"
			j.Status = models.JobActive
			_, err := c.CreateJob(ctx, &j)
			require.NoError(t, err)
		}

		tests := []struct {
			salary string
			want   []string
		}{
			{dtos.SalaryUnder50K, []string{"Marketing Specialist"}},
			{dtos.Salary50To100K, []string{"Frontend Developer"}},
			{dtos.Salary100To150K, []string{"Product Manager", "DevOps Engineer"}},
			{dtos.SalaryOver150K, []string{"Staff Open Ended"}},
		}
		for _, tt := range tests {
			jobs, err := c.GetJobs(ctx, dtos.JobFilter{Salary: tt.salary}, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(jobs), tt.salary)
		}

		jobs, err := c.GetJobs(ctx, dtos.JobFilter{Search: "competitive"}, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Competitive Pay"}, titles(jobs), "listed without a salary filter")
	})
}

func TestGetJobs_SortAndLimit(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		jobs, err := c.GetJobs(t.Context(), dtos.JobFilter{Sort: dtos.SortSalary}, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"AI Research Scientist", "Data Scientist", "Senior Full Stack Developer"}, titles(jobs))

		jobs, err = c.GetJobs(t.Context(), dtos.JobFilter{Sort: dtos.SortCompanyRating}, 2)
		require.NoError(t, err)
		assert.Equal(t, "TechNova Inc.", jobs[0].Company.Name)
		assert.Equal(t, "TechNova Inc.", jobs[1].Company.Name)

		jobs, err = c.GetJobs(t.Context(), dtos.JobFilter{Sort: dtos.SortRelevance}, 0)
		require.NoError(t, err)
		for _, j := range jobs[:4] {
			assert.True(t, j.Featured, j.Title)
		}
	})
}

func TestGetFeaturedJobs(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		jobs, err := c.GetFeaturedJobs(t.Context(), 4)
		require.NoError(t, err)
		assert.Equal(t, []string{"Senior Full Stack Developer", "UX/UI Designer", "Data Scientist", "DevOps Engineer"}, titles(jobs))
		assert.Equal(t, "TechNova Inc.", jobs[0].Company.Name)
	})
}

func TestJobLifecycle(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		id, err := c.CreateJob(ctx, &models.Job{
			EmployerID: demoEmployer,
			CompanyID:  1,
			Title:      "Go Engineer",
			Region:     "Remote",
			JobType:    "Full-time",
			Status:     models.JobActive,
			SalaryMin:  90000,
			SalaryMax:  120000,
		})
		require.NoError(t, err)
		require.NotZero(t, id)

		job, err := c.GetJobByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Go Engineer", job.Title)
		assert.Equal(t, "TechNova Inc.", job.Company.Name)

		job.Status = models.JobClosed
		require.NoError(t, c.UpdateJob(ctx, job))
		jobs, err := c.GetJobs(ctx, dtos.JobFilter{Search: "go engineer"}, 0)
		require.NoError(t, err)
		assert.Empty(t, jobs, "closed postings are not listed")

		require.NoError(t, c.IncrementJobViews(ctx, id))
		job, err = c.GetJobByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, job.Views)

		require.NoError(t, c.DeleteJob(ctx, id))
		_, err = c.GetJobByID(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, c.DeleteJob(ctx, id), ErrNotFound)
	})
}

func TestGetJobsByEmployer_CountsApplications(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		jobs, err := c.GetJobsByEmployer(t.Context(), demoEmployer)
		require.NoError(t, err)
		counts := lo.SliceToMap(jobs, func(j models.Job) (string, int64) { return j.Title, j.ApplicationCount })
		assert.Equal(t, map[string]int64{
			"Senior Full Stack Developer": 4,
			"Project Manager":             1,
			"Marketing Specialist":        1,
			"QA Intern":                   1,
		}, counts)
	})
}

func TestApplications(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		apps, err := c.GetApplicationsByUser(ctx, "user_123456789")
		require.NoError(t, err)
		require.Len(t, apps, 4)
		assert.Equal(t, "Frontend Developer", apps[0].Job.Title)
		assert.Equal(t, "WebWizards", apps[0].Job.Company.Name)

		byEmployer, err := c.GetApplicationsByEmployer(ctx, demoEmployer)
		require.NoError(t, err)
		assert.Len(t, byEmployer, 7)
		for _, a := range byEmployer {
			require.NotNil(t, a.Profile, "application %d", a.ID)
		}

		byJob, err := c.GetApplicationsByJob(ctx, byEmployer[0].JobID)
		require.NoError(t, err)
		assert.NotEmpty(t, byJob)

		require.NoError(t, c.UpdateApplicationStatus(ctx, apps[0].ID, models.StatusHired, "Offer sent"))
		got, err := c.GetApplicationByID(ctx, apps[0].ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusHired, got.Status)
		assert.Equal(t, "Offer sent", got.NextStep)

		assert.ErrorIs(t, c.UpdateApplicationStatus(ctx, 9999, models.StatusHired, ""), ErrNotFound)
	})
}

func TestCreateApplication_RejectsDuplicates(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		jobs, err := c.GetJobs(ctx, dtos.JobFilter{Search: "devops"}, 0)
		require.NoError(t, err)
		require.Len(t, jobs, 1)

		app := &models.Application{JobID: jobs[0].ID, UserID: "user_new", Status: models.StatusSubmitted}
		require.NoError(t, c.CreateApplication(ctx, app))
		assert.NotZero(t, app.ID)

		dup := &models.Application{JobID: jobs[0].ID, UserID: "user_new", Status: models.StatusSubmitted}
		assert.Error(t, c.CreateApplication(ctx, dup))
	})
}

func TestProfiles(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		_, err := c.GetUserProfile(ctx, "user_unknown")
		assert.ErrorIs(t, err, ErrNotFound)

		p := &models.Profile{UserID: "user_unknown", Role: models.RoleJobSeeker, FirstName: "Ada", Skills: []string{"Go"}}
		require.NoError(t, c.CreateUserProfile(ctx, p))

		got, err := c.GetUserProfile(ctx, "user_unknown")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, got.Skills)

		got.Skills = []string{"Go", "SQL"}
		got.City = ""
		got.Preferences.Relocation = true
		require.NoError(t, c.UpdateUserProfile(ctx, got))

		got, err = c.GetUserProfile(ctx, "user_unknown")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
		assert.True(t, got.Preferences.Relocation)

		seeded, err := c.GetUserProfile(ctx, "user_123456789")
		require.NoError(t, err)
		assert.Len(t, seeded.Experiences, 2)
		assert.Equal(t, "$100K - $120K", seeded.Preferences.SalaryExpectation)

		require.NoError(t, c.DeleteUserProfile(ctx, "user_123456789"))
		apps, err := c.GetApplicationsByUser(ctx, "user_123456789")
		require.NoError(t, err)
		assert.Empty(t, apps)
		assert.ErrorIs(t, c.DeleteUserProfile(ctx, "user_123456789"), ErrNotFound)
	})
}

func TestCompanies(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		companies, err := c.GetCompanies(ctx, dtos.CompanyFilter{}, 0)
		require.NoError(t, err)
		require.Len(t, companies, 9)
		assert.Equal(t, "TechNova Inc.", companies[0].Name)
		assert.EqualValues(t, 2, companies[0].OpenJobs)

		tech, err := c.GetCompanies(ctx, dtos.CompanyFilter{Industry: "Technology", Size: dtos.AnySize}, 0)
		require.NoError(t, err)
		assert.Len(t, tech, 6)

		large, err := c.GetCompanies(ctx, dtos.CompanyFilter{Size: "Large (1000+)"}, 0)
		require.NoError(t, err)
		assert.Len(t, large, 2)

		found, err := c.GetCompanies(ctx, dtos.CompanyFilter{Search: "flow"}, 0)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "DataFlow Analytics", found[0].Name)

		most, err := c.GetCompanies(ctx, dtos.CompanyFilter{Sort: dtos.SortMostJobs}, 1)
		require.NoError(t, err)
		assert.Equal(t, "TechNova Inc.", most[0].Name)

		alpha, err := c.GetCompanies(ctx, dtos.CompanyFilter{Sort: dtos.SortAlphabetical}, 1)
		require.NoError(t, err)
		assert.Equal(t, "CloudSphere", alpha[0].Name)

		company, err := c.GetCompanyByID(ctx, companies[0].ID)
		require.NoError(t, err)
		company.Description = "Updated"
		require.NoError(t, c.UpdateCompany(ctx, company))
		company, err = c.GetCompanyByID(ctx, companies[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", company.Description)
		assert.Equal(t, demoEmployer, company.OwnerID)

		created := &models.Company{Name: "Acme", Industry: "Retail"}
		require.NoError(t, c.CreateCompany(ctx, created))
		assert.NotZero(t, created.ID)

		err = c.CreateCompany(ctx, &models.Company{Name: "ACME"})
		assert.ErrorIs(t, err, ErrCompanyTaken)
	})
}

func TestCandidatesAndAnalytics(t *testing.T) {
	eachConnector(t, func(t *testing.T, c Connector) {
		ctx := t.Context()
		candidates, err := c.GetCandidates(ctx, demoEmployer, "")
		require.NoError(t, err)
		names := lo.Map(candidates, func(p models.Profile, _ int) string { return p.FirstName })
		assert.Equal(t, []string{"David", "Demo", "Emily", "John", "Michael", "Sarah"}, names)

		react, err := c.GetCandidates(ctx, demoEmployer, "react")
		require.NoError(t, err)
		assert.Len(t, react, 3)

		stats, err := c.GetJobAnalytics(ctx, demoEmployer)
		require.NoError(t, err)
		assert.Equal(t, models.JobAnalytics{ActiveJobs: 2, Applications: 7, Interviews: 2, JobsFilled: 1}, stats)

		none, err := c.GetJobAnalytics(ctx, "employer_nobody")
		require.NoError(t, err)
		assert.Zero(t, none)
	})
}
