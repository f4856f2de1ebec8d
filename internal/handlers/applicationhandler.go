package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/services"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	log                *zap.Logger
}

func NewApplicationHandler(a *services.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a, log: log}
}

// List is the GET /applications endpoint. Job seekers get their board,
// employers the applications to their postings narrowed by the query.
func (h *ApplicationHandler) List(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	if !user.IsEmployer() {
		tabs, err := h.ApplicationService.Board(ctx, user)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"applications": tabs[0].Applications, "tabs": tabs})
		return
	}

	var filter dtos.EmployerApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	apps, err := h.ApplicationService.EmployerApplications(ctx, user, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(apps), "applications": apps})
}

// Apply is the POST /applications endpoint.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.ApplicationService.Apply(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ChangeStatus is the PATCH /applications/:id/status endpoint.
func (h *ApplicationHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.ApplicationService.ChangeStatus(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        app.ID,
		"status":    app.Status,
		"label":     services.EmployerStatusLabel(app.Status),
		"color":     services.StatusColor(app.Status),
		"next_step": app.NextStep,
	})
}
