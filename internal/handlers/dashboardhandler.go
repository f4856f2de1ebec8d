package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/services"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	DashboardService *services.DashboardService
	log              *zap.Logger
}

func NewDashboardHandler(d *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{DashboardService: d, log: log}
}

func (h *DashboardHandler) Analytics(c *gin.Context) {
	analytics, err := h.DashboardService.Analytics(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// Candidates is the talent pool, searched with ?search=.
func (h *DashboardHandler) Candidates(c *gin.Context) {
	candidates, err := h.DashboardService.Candidates(c.Request.Context(), currentUser(c), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(candidates), "candidates": candidates})
}
