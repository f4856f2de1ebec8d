package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/services"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
	log            *zap.Logger
}

func NewCompanyHandler(s *services.CompanyService, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{CompanyService: s, log: log}
}

func (h *CompanyHandler) List(c *gin.Context) {
	var filter dtos.CompanyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	companies, err := h.CompanyService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(companies), "companies": companies})
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company id"})
		return
	}
	company, err := h.CompanyService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Save is the PUT /company endpoint: the caller's own company profile.
func (h *CompanyHandler) Save(c *gin.Context) {
	var req dtos.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	company, err := h.CompanyService.Save(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
