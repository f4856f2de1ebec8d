package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/config"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/logger"
	"github.com/justsurfingit/jobwave/internal/services"
	"github.com/justsurfingit/jobwave/internal/web"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Deps is everything the handlers need, built once in main.
type Deps struct {
	Config       *config.Config
	Log          *zap.Logger
	Conn         connector.Connector
	Shim         *auth.Shim
	Sessions     *auth.SessionStore
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Companies    *services.CompanyService
	Profiles     *services.ProfileService
	Dashboard    *services.DashboardService
	LLM          *services.LLMService
}

// NewRouter wires the pages and the JSON API.
func NewRouter(d *Deps) *gin.Engine {
	r := gin.New()
	r.Use(logger.Requests(d.Log), logger.Recovery(d.Log))
	r.Use(cors.New(corsConfig(d.Config.AllowedOrigins)))
	r.SetHTMLTemplate(web.Templates)
	r.MaxMultipartMemory = d.Config.MaxUploadBytes
	r.StaticFS("/static", web.Static())

	limiter := auth.NewIPRateLimiter(d.Config.LoginRate)
	requireUser := auth.RequireUser(d.Sessions)

	pages := NewPageHandler(d)
	r.GET("/login", pages.LoginPage)
	r.POST("/login", limiter.Middleware(), pages.SignIn)
	r.POST("/signup", limiter.Middleware(), pages.SignUp)
	r.GET("/logout", pages.Logout)

	site := r.Group("/", requireUser)
	{
		site.GET("/", pages.Home)
		site.GET("/jobs", pages.Jobs)
		site.GET("/jobs/:id", pages.Job)
		site.POST("/jobs/:id/apply", pages.Apply)
		site.GET("/companies", pages.Companies)
		site.GET("/applications", pages.Applications)

		site.GET("/dashboard", pages.Dashboard)
		site.POST("/dashboard/jobs", pages.PostJob)
		site.POST("/dashboard/jobs/:id/close", pages.CloseJob)
		site.POST("/dashboard/jobs/:id/delete", pages.DeleteJob)
		site.POST("/dashboard/applications/:id/status", pages.ChangeStatus)
		site.POST("/dashboard/company", pages.SaveCompany)

		site.GET("/profile", pages.Profile)
		site.POST("/profile", pages.UpdateProfile)
		site.POST("/profile/resume", pages.UploadResume)
		site.POST("/profile/preferences", pages.UpdatePreferences)
		site.POST("/profile/settings", pages.UpdateSettings)
		site.POST("/profile/delete", pages.DeleteAccount)

		site.Static("/uploads", d.Config.UploadDir)
	}

	jobHandler := NewJobHandler(d.LLM, d.Jobs, d.Applications, d.Log)
	applicationHandler := NewApplicationHandler(d.Applications, d.Log)
	companyHandler := NewCompanyHandler(d.Companies, d.Log)
	profileHandler := NewProfileHandler(d.Profiles, d.Sessions, d.Log)
	dashboardHandler := NewDashboardHandler(d.Dashboard, d.Log)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck(d.Conn))

		secured := api.Group("", requireUser)

		// Job Routes
		secured.GET("/jobs", jobHandler.ListJobs)
		secured.POST("/jobs", jobHandler.CreateJob)
		secured.POST("/jobs/extract", jobHandler.ParseJob)
		secured.GET("/jobs/:id", jobHandler.GetJob)
		secured.PUT("/jobs/:id", jobHandler.UpdateJob)
		secured.DELETE("/jobs/:id", jobHandler.DeleteJob)
		secured.GET("/jobs/:id/applications", jobHandler.JobApplications)

		secured.GET("/applications", applicationHandler.List)
		secured.POST("/applications", applicationHandler.Apply)
		secured.PATCH("/applications/:id/status", applicationHandler.ChangeStatus)

		secured.GET("/companies", companyHandler.List)
		secured.GET("/companies/:id", companyHandler.Get)
		secured.PUT("/company", companyHandler.Save)

		secured.GET("/profile", profileHandler.Get)
		secured.PUT("/profile", profileHandler.Update)

		secured.GET("/analytics", dashboardHandler.Analytics)
		secured.GET("/candidates", dashboardHandler.Candidates)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || lo.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	return cfg
}

// HealthCheck reports liveness and whether the demo dataset is being served.
func HealthCheck(conn connector.Connector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": conn.Mode()})
	}
}

func currentUser(c *gin.Context) auth.User {
	user, _ := auth.CurrentUser(c)
	return user
}

// paramID parses the :id path segment.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
