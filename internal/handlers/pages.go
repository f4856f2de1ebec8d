package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/justsurfingit/jobwave/internal/services"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type stat struct {
	Value string
	Label string
}

var homeStats = []stat{
	{"5000+", "Active Jobs"},
	{"2M+", "Job Seekers"},
	{"10K+", "Companies"},
	{"85%", "Success Rate"},
}

const featuredOnHome = 4

// PageHandler renders the server-side pages and handles their forms.
type PageHandler struct {
	deps *Deps
}

func NewPageHandler(d *Deps) *PageHandler {
	return &PageHandler{deps: d}
}

// render adds the layout data every page needs.
func (h *PageHandler) render(c *gin.Context, code int, name, nav, title string, data gin.H) {
	user, _ := auth.CurrentUser(c)
	data["Title"] = title
	data["Nav"] = nav
	data["User"] = user
	data["Flash"] = popFlash(c)
	data["Demo"] = h.deps.Conn.Mode() == connector.ModeMock
	c.HTML(code, name, data)
}

func (h *PageHandler) pageError(c *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		h.deps.Log.Error("❌ Page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	h.render(c, code, "error.tmpl", "", "Error", gin.H{"Code": code, "Message": userMessage(err)})
}

func (h *PageHandler) Home(c *gin.Context) {
	featured, err := h.deps.Jobs.Featured(c.Request.Context(), featuredOnHome)
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, "home.tmpl", "home", "Home", gin.H{
		"Featured":  featured,
		"Stats":     homeStats,
		"Locations": dtos.LocationOptions,
	})
}

func (h *PageHandler) Jobs(c *gin.Context) {
	var filter dtos.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.pageError(c, err)
		return
	}
	ctx := c.Request.Context()
	user := currentUser(c)

	jobs, err := h.deps.Jobs.Search(ctx, filter)
	if err != nil {
		h.pageError(c, err)
		return
	}
	applied, err := h.appliedJobs(ctx, user)
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, "jobs.tmpl", "jobs", "Jobs", gin.H{
		"Jobs":      jobs,
		"Filter":    filter,
		"Applied":   applied,
		"Locations": dtos.LocationOptions,
		"JobTypes":  dtos.JobTypeOptions,
		"Levels":    dtos.ExperienceOptions,
		"Salaries":  dtos.SalaryOptions,
		"Sorts":     dtos.JobSortOptions,
	})
}

func (h *PageHandler) Job(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.pageError(c, connector.ErrNotFound)
		return
	}
	ctx := c.Request.Context()
	user := currentUser(c)

	job, err := h.deps.Jobs.Get(ctx, id)
	if err != nil {
		h.pageError(c, err)
		return
	}
	applied, err := h.appliedJobs(ctx, user)
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, "job.tmpl", "jobs", job.Title, gin.H{
		"Job":     job,
		"Owner":   job.EmployerID == user.ID,
		"Applied": applied[job.ID],
	})
}

// appliedJobs is the set of job ids the seeker has applied to.
func (h *PageHandler) appliedJobs(ctx context.Context, user auth.User) (map[uint]bool, error) {
	if user.IsEmployer() {
		return map[uint]bool{}, nil
	}
	apps, err := h.deps.Conn.GetApplicationsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(apps, func(a models.Application) (uint, bool) { return a.JobID, true }), nil
}

func (h *PageHandler) Companies(c *gin.Context) {
	var filter dtos.CompanyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.pageError(c, err)
		return
	}
	companies, err := h.deps.Companies.List(c.Request.Context(), filter)
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, "companies.tmpl", "companies", "Companies", gin.H{
		"Companies":  companies,
		"Filter":     filter,
		"Industries": dtos.IndustryOptions,
		"Sizes":      dtos.CompanySizeOptions,
		"Sorts":      dtos.CompanySortOptions,
	})
}

// Applications is the job seeker's board. Employers are sent to their
// dashboard.
func (h *PageHandler) Applications(c *gin.Context) {
	user := currentUser(c)
	if user.IsEmployer() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	tabs, err := h.deps.Applications.Board(c.Request.Context(), user)
	if err != nil {
		h.pageError(c, err)
		return
	}
	tab := c.DefaultQuery("tab", tabs[0].Name)
	if !lo.ContainsBy(tabs, func(t services.BoardTab) bool { return t.Name == tab }) {
		tab = tabs[0].Name
	}
	h.render(c, http.StatusOK, "applications.tmpl", "applications", "My Applications", gin.H{
		"Tabs": tabs,
		"Tab":  tab,
	})
}

// Dashboard is the employer view. Job seekers are sent to their board.
func (h *PageHandler) Dashboard(c *gin.Context) {
	user := currentUser(c)
	if !user.IsEmployer() {
		c.Redirect(http.StatusFound, "/applications")
		return
	}
	var filter dtos.EmployerApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.pageError(c, err)
		return
	}
	search := c.Query("search")
	ctx := c.Request.Context()

	dashboard, err := h.deps.Dashboard.Load(ctx, user, filter, search)
	if err != nil {
		h.pageError(c, err)
		return
	}
	company, err := h.deps.Companies.ForEmployer(ctx, user)
	if err != nil && !errors.Is(err, connector.ErrNotFound) {
		h.pageError(c, err)
		return
	}

	var form dtos.CompanyRequest
	if company != nil {
		form = dtos.CompanyRequest{
			Name:        company.Name,
			Industry:    company.Industry,
			Size:        company.Size,
			Location:    company.Location,
			Website:     company.Website,
			FoundedYear: company.FoundedYear,
			Description: company.Description,
		}
	}

	h.render(c, http.StatusOK, "dashboard.tmpl", "dashboard", "Dashboard", gin.H{
		"D":             dashboard,
		"Filter":        filter,
		"Search":        search,
		"StatusOptions": dtos.EmployerStatusOptions,
		"DateOptions":   dtos.DateOptions,
		"StatusLabels":  dtos.EmployerStatusOptions[1:],
		"JobTypes":      dtos.JobTypeOptions[1:],
		"Levels":        dtos.ExperienceOptions[1:],
		"Industries":    dtos.IndustryOptions[1:],
		"Sizes":         dtos.CompanySizeOptions[1:],
		"HasCompany":    company != nil,
		"CompanyForm":   form,
	})
}

func (h *PageHandler) Profile(c *gin.Context) {
	profile, err := h.deps.Profiles.Ensure(c.Request.Context(), currentUser(c))
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.render(c, http.StatusOK, "profile.tmpl", "profile", "Profile", gin.H{
		"Profile":            profile,
		"Countries":          dtos.CountryOptions,
		"PrefTitles":         dtos.PreferenceTitleOptions,
		"PrefTypes":          dtos.PreferenceTypeOptions,
		"PrefLocations":      dtos.PreferenceLocationOptions,
		"SalaryExpectations": dtos.SalaryExpectationOptions,
		"Confirm":            services.DeleteConfirmation,
	})
}
