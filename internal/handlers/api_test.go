package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/justsurfingit/jobwave/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "mock", resp["mode"])
}

func TestAPI_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/api/v1/jobs", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestListJobs_FiltersByRegion(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/api/v1/jobs?location=Remote", &seeker)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
		Jobs  []struct {
			Region string `json:"region"`
			Status string `json:"status"`
		} `json:"jobs"`
	}
	decode(t, w, &resp)
	require.NotZero(t, resp.Count)
	assert.Len(t, resp.Jobs, resp.Count)
	for _, j := range resp.Jobs {
		assert.Equal(t, "Remote", j.Region)
		assert.Equal(t, "Active", j.Status)
	}
}

func TestGetJob(t *testing.T) {
	app := newTestApp(t)
	id := app.jobID(t, "Senior Full Stack Developer")

	w := app.get(fmt.Sprintf("/api/v1/jobs/%d", id), &seeker)
	require.Equal(t, http.StatusOK, w.Code)
	var job struct {
		Title           string `json:"title"`
		DescriptionHTML string `json:"description_html"`
		StatusColor     string `json:"status_color"`
	}
	decode(t, w, &job)
	assert.Equal(t, "Senior Full Stack Developer", job.Title)
	assert.Contains(t, job.DescriptionHTML, "<strong>React</strong>")
	assert.Equal(t, services.ColorBlue, job.StatusColor)

	assert.Equal(t, http.StatusNotFound, app.get("/api/v1/jobs/9999", &seeker).Code)
	assert.Equal(t, http.StatusBadRequest, app.get("/api/v1/jobs/abc", &seeker).Code)
}

func TestCreateJob(t *testing.T) {
	app := newTestApp(t)
	req := map[string]any{
		"title":        "Platform Engineer",
		"description":  "Run the **platform**.",
		"location":     "Berlin, Germany",
		"job_type":     "Full-time",
		"salary_range": "€70K - €90K",
	}

	t.Run("job seekers may not post", func(t *testing.T) {
		w := app.sendJSON(t, http.MethodPost, "/api/v1/jobs", req, &seeker)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("employer posts under their company", func(t *testing.T) {
		w := app.sendJSON(t, http.MethodPost, "/api/v1/jobs", req, &employer)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var job struct {
			ID        uint   `json:"id"`
			Region    string `json:"region"`
			SalaryMin int    `json:"salary_min"`
			SalaryMax int    `json:"salary_max"`
			Company   struct {
				Name string `json:"name"`
			} `json:"company"`
		}
		decode(t, w, &job)
		assert.NotZero(t, job.ID)
		assert.Equal(t, "Europe", job.Region)
		assert.Equal(t, 70000, job.SalaryMin)
		assert.Equal(t, 90000, job.SalaryMax)
		assert.Equal(t, "TechNova Inc.", job.Company.Name)
	})

	t.Run("missing title", func(t *testing.T) {
		w := app.sendJSON(t, http.MethodPost, "/api/v1/jobs", map[string]any{"description": "x"}, &employer)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateAndDeleteJob_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	own := app.jobID(t, "Marketing Specialist")
	other := app.jobID(t, "UX/UI Designer")

	w := app.sendJSON(t, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%d", other), map[string]any{"title": "Hijacked"}, &employer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.sendJSON(t, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%d", own), map[string]any{"status": "Paused"}, &employer)
	assert.Equal(t, http.StatusBadRequest, w.Code, "status must be Active, Closed or Filled")

	w = app.sendJSON(t, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%d", own), map[string]any{"salary_range": "$60K - $70K"}, &employer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var job struct {
		SalaryMax int `json:"salary_max"`
	}
	decode(t, w, &job)
	assert.Equal(t, 70000, job.SalaryMax)

	w = app.sendJSON(t, http.MethodDelete, fmt.Sprintf("/api/v1/jobs/%d", own), nil, &employer)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, app.get(fmt.Sprintf("/api/v1/jobs/%d", own), &employer).Code)
}

func TestParseJob_DisabledWithoutKey(t *testing.T) {
	app := newTestApp(t)

	w := app.sendJSON(t, http.MethodPost, "/api/v1/jobs/extract", map[string]any{"raw_html": "<h1>Engineer</h1>"}, &employer)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "job extraction is disabled")

	w = app.sendJSON(t, http.MethodPost, "/api/v1/jobs/extract", map[string]any{}, &employer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplications_SeekerAndEmployerViews(t *testing.T) {
	app := newTestApp(t)

	var board struct {
		Applications []struct {
			Label string `json:"label"`
		} `json:"applications"`
		Tabs []struct {
			Name string `json:"name"`
		} `json:"tabs"`
	}
	decode(t, app.get("/api/v1/applications", &seeker), &board)
	assert.Len(t, board.Applications, 4)
	assert.Len(t, board.Tabs, 4)

	var list struct {
		Count int `json:"count"`
	}
	decode(t, app.get("/api/v1/applications?status=Interview", &employer), &list)
	assert.Equal(t, 2, list.Count)

	w := app.get("/api/v1/applications?status=Unknown", &employer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApply_API(t *testing.T) {
	app := newTestApp(t)
	id := app.jobID(t, "Data Scientist")

	w := app.sendJSON(t, http.MethodPost, "/api/v1/applications", map[string]any{"job_id": id}, &seeker)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.sendJSON(t, http.MethodPost, "/api/v1/applications", map[string]any{"job_id": id}, &seeker)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.sendJSON(t, http.MethodPost, "/api/v1/applications", map[string]any{"job_id": id}, &employer)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChangeStatus_API(t *testing.T) {
	app := newTestApp(t)
	jobID := app.jobID(t, "Senior Full Stack Developer")

	var resp struct {
		Applications []struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		} `json:"applications"`
	}
	decode(t, app.get(fmt.Sprintf("/api/v1/jobs/%d/applications", jobID), &employer), &resp)
	require.NotEmpty(t, resp.Applications)
	appID := resp.Applications[0].ID

	w := app.sendJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/applications/%d/status", appID), map[string]any{"status": "Maybe"}, &employer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.sendJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/applications/%d/status", appID), map[string]any{"status": "Hired"}, &employer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var changed map[string]any
	decode(t, w, &changed)
	assert.Equal(t, "hired", changed["status"])
	assert.Equal(t, "Hired", changed["label"])
	assert.Equal(t, services.ColorGreen, changed["color"])
	assert.Equal(t, "Offer extended", changed["next_step"])

	other := auth.User{ID: "user_other", Role: "employer"}
	w = app.sendJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/applications/%d/status", appID), map[string]any{"status": "Rejected"}, &other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.get(fmt.Sprintf("/api/v1/jobs/%d/applications", jobID), &other)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCompanies_API(t *testing.T) {
	app := newTestApp(t)

	var list struct {
		Count     int `json:"count"`
		Companies []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"companies"`
	}
	decode(t, app.get("/api/v1/companies?industry=Technology", &seeker), &list)
	assert.Equal(t, 6, list.Count)

	w := app.get(fmt.Sprintf("/api/v1/companies/%d", list.Companies[0].ID), &seeker)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.sendJSON(t, http.MethodPut, "/api/v1/company", map[string]any{"name": "Acme"}, &seeker)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.sendJSON(t, http.MethodPut, "/api/v1/company", map[string]any{
		"name":     "TechNova Inc.",
		"industry": "Technology",
		"website":  "not a url",
	}, &employer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.sendJSON(t, http.MethodPut, "/api/v1/company", map[string]any{
		"name":        "TechNova Inc.",
		"industry":    "Technology",
		"description": "Enterprise software, remote first.",
	}, &employer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved struct {
		Description string  `json:"description"`
		Rating      float64 `json:"rating"`
	}
	decode(t, w, &saved)
	assert.Equal(t, "Enterprise software, remote first.", saved.Description)
	assert.NotZero(t, saved.Rating, "saving keeps the existing rating")

	rival := auth.User{ID: "user_rival", FirstName: "Rita", LastName: "Rival", Role: models.RoleEmployer}
	w = app.sendJSON(t, http.MethodPut, "/api/v1/company", map[string]any{
		"name":     "TechNova Inc.",
		"industry": "Technology",
	}, &rival)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestProfile_API(t *testing.T) {
	app := newTestApp(t)
	fresh := auth.User{ID: "user_fresh", Email: "fresh@jobwave.dev", FirstName: "Fresh", LastName: "Face", Role: "jobseeker"}

	w := app.get("/api/v1/profile", &fresh)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		UserID   string `json:"user_id"`
		Settings struct {
			JobAlerts bool `json:"job_alerts"`
		} `json:"settings"`
	}
	decode(t, w, &profile)
	assert.Equal(t, "user_fresh", profile.UserID)
	assert.True(t, profile.Settings.JobAlerts)

	// One session, so the name change shows up in later lookups.
	token := app.sessions.Create(fresh)
	req := jsonRequest(t, http.MethodPut, "/api/v1/profile", map[string]any{
		"first_name": "Renamed",
		"last_name":  "Face",
		"skills":     "Go, SQL, go",
	})
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	w = app.do(req, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Skills []string `json:"skills"`
	}
	decode(t, w, &updated)
	assert.Equal(t, []string{"Go", "SQL"}, updated.Skills)

	user, ok := app.sessions.Lookup(token)
	require.True(t, ok)
	assert.Equal(t, "Renamed", user.FirstName)
}

func TestDashboard_API(t *testing.T) {
	app := newTestApp(t)

	var analytics struct {
		ActiveJobs   int `json:"active_jobs"`
		Applications int `json:"applications"`
		Interviews   int `json:"interviews"`
		JobsFilled   int `json:"jobs_filled"`
	}
	decode(t, app.get("/api/v1/analytics", &employer), &analytics)
	assert.Equal(t, 2, analytics.ActiveJobs)
	assert.Equal(t, 7, analytics.Applications)
	assert.Equal(t, 2, analytics.Interviews)
	assert.Equal(t, 1, analytics.JobsFilled)

	var candidates struct {
		Count int `json:"count"`
	}
	decode(t, app.get("/api/v1/candidates?search=react", &employer), &candidates)
	assert.Equal(t, 3, candidates.Count)

	assert.Equal(t, http.StatusForbidden, app.get("/api/v1/analytics", &seeker).Code)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("fetching job 7: %w", connector.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("job 7: %w", services.ErrForbidden), http.StatusForbidden},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrMissingCredentials, http.StatusBadRequest},
		{services.ErrInvalidStatus, http.StatusBadRequest},
		{services.ErrAlreadyApplied, http.StatusConflict},
		{fmt.Errorf("creating company %q: %w", "Acme", connector.ErrCompanyTaken), http.StatusConflict},
		{fmt.Errorf("%w: got text/plain", services.ErrUnsupportedResume), http.StatusUnsupportedMediaType},
		{services.ErrResumeTooLarge, http.StatusRequestEntityTooLarge},
		{services.ErrExtractionDisabled, http.StatusServiceUnavailable},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
	assert.Equal(t, "Something went wrong, please try again", userMessage(errors.New("connection refused")))
}
