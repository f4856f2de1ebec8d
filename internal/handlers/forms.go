package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/services"
	"go.uber.org/zap"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// formFailed sends the browser back with the error as a banner.
func (h *PageHandler) formFailed(c *gin.Context, back string, err error) {
	if statusOf(err) == http.StatusInternalServerError {
		h.deps.Log.Error("❌ Form failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	redirectWith(c, back, flashError, userMessage(err))
}

func invalidForm(c *gin.Context, back string, err error) {
	redirectWith(c, back, flashError, "Please check the form: "+err.Error())
}

// Apply files an application from the jobs pages.
func (h *PageHandler) Apply(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		redirectWith(c, "/jobs", flashError, "Unknown job")
		return
	}
	app, err := h.deps.Applications.Apply(c.Request.Context(), currentUser(c), &dtos.ApplicationRequest{JobID: id})
	if err != nil {
		h.formFailed(c, fmt.Sprintf("/jobs/%d", id), err)
		return
	}
	redirectWith(c, "/applications", flashSuccess, fmt.Sprintf("Applied to %s at %s", app.Job.Title, app.Job.Company.Name))
}

func (h *PageHandler) PostJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/dashboard", err)
		return
	}
	if _, err := h.deps.Jobs.CreateJob(c.Request.Context(), currentUser(c), &req); err != nil {
		h.formFailed(c, "/dashboard", err)
		return
	}
	redirectWith(c, "/dashboard", flashSuccess, "Job posted successfully!")
}

func (h *PageHandler) CloseJob(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		redirectWith(c, "/dashboard", flashError, "Unknown job")
		return
	}
	if err := h.deps.Jobs.CloseJob(c.Request.Context(), currentUser(c), id); err != nil {
		h.formFailed(c, "/dashboard", err)
		return
	}
	redirectWith(c, "/dashboard", flashSuccess, "Job closed")
}

func (h *PageHandler) DeleteJob(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		redirectWith(c, "/dashboard", flashError, "Unknown job")
		return
	}
	if err := h.deps.Jobs.DeleteJob(c.Request.Context(), currentUser(c), id); err != nil {
		h.formFailed(c, "/dashboard", err)
		return
	}
	redirectWith(c, "/dashboard", flashSuccess, "Job deleted")
}

func (h *PageHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		redirectWith(c, "/dashboard", flashError, "Unknown application")
		return
	}
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/dashboard", err)
		return
	}
	app, err := h.deps.Applications.ChangeStatus(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		h.formFailed(c, "/dashboard", err)
		return
	}
	redirectWith(c, "/dashboard", flashSuccess, "Status updated to "+services.EmployerStatusLabel(app.Status))
}

func (h *PageHandler) SaveCompany(c *gin.Context) {
	var req dtos.CompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/dashboard", err)
		return
	}
	company, err := h.deps.Companies.Save(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		h.formFailed(c, "/dashboard", err)
		return
	}
	redirectWith(c, "/dashboard", flashSuccess, company.Name+" profile saved")
}

func (h *PageHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/profile", err)
		return
	}
	user := currentUser(c)
	profile, err := h.deps.Profiles.UpdatePersonal(c.Request.Context(), user, &req)
	if err != nil {
		h.formFailed(c, "/profile", err)
		return
	}
	refreshSessionName(c, h.deps.Sessions, user, profile.FirstName, profile.LastName)
	redirectWith(c, "/profile", flashSuccess, "Profile updated")
}

func (h *PageHandler) UploadResume(c *gin.Context) {
	header, err := c.FormFile("resume")
	if err != nil {
		redirectWith(c, "/profile", flashError, "Choose a PDF or DOCX file to upload")
		return
	}
	f, err := header.Open()
	if err != nil {
		h.formFailed(c, "/profile", fmt.Errorf("opening upload: %w", err))
		return
	}
	defer f.Close()

	// One byte over the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(f, h.deps.Config.MaxUploadBytes+1))
	if err != nil {
		h.formFailed(c, "/profile", fmt.Errorf("reading upload: %w", err))
		return
	}
	if _, err := h.deps.Profiles.UploadResume(c.Request.Context(), currentUser(c), data); err != nil {
		h.formFailed(c, "/profile", err)
		return
	}
	redirectWith(c, "/profile", flashSuccess, "Resume uploaded successfully!")
}

func (h *PageHandler) UpdatePreferences(c *gin.Context) {
	var req dtos.PreferencesRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/profile", err)
		return
	}
	if _, err := h.deps.Profiles.UpdatePreferences(c.Request.Context(), currentUser(c), &req); err != nil {
		h.formFailed(c, "/profile", err)
		return
	}
	redirectWith(c, "/profile", flashSuccess, "Preferences saved")
}

func (h *PageHandler) UpdateSettings(c *gin.Context) {
	var req dtos.SettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/profile", err)
		return
	}
	if _, err := h.deps.Profiles.UpdateSettings(c.Request.Context(), currentUser(c), &req); err != nil {
		h.formFailed(c, "/profile", err)
		return
	}
	redirectWith(c, "/profile", flashSuccess, "Settings saved")
}

// DeleteAccount removes the account and ends the session.
func (h *PageHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	if err := h.deps.Profiles.DeleteAccount(c.Request.Context(), user, c.PostForm("confirm")); err != nil {
		h.formFailed(c, "/profile", err)
		return
	}
	h.deps.Shim.Forget(user.Email)
	h.deps.Sessions.Invalidate(auth.SessionToken(c))
	auth.ClearSessionCookie(c)
	redirectWith(c, "/login", flashSuccess, "Your account has been deleted")
}
