package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/services"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
	sessions       *auth.SessionStore
	log            *zap.Logger
}

func NewProfileHandler(p *services.ProfileService, sessions *auth.SessionStore, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{ProfileService: p, sessions: sessions, log: log}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.ProfileService.Ensure(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update is the PUT /profile endpoint for the personal information form.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user := currentUser(c)
	profile, err := h.ProfileService.UpdatePersonal(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	refreshSessionName(c, h.sessions, user, profile.FirstName, profile.LastName)
	c.JSON(http.StatusOK, profile)
}

// refreshSessionName keeps the name shown in the header in step with the
// profile.
func refreshSessionName(c *gin.Context, sessions *auth.SessionStore, user auth.User, first, last string) {
	if first == "" && last == "" {
		return
	}
	user.FirstName, user.LastName = first, last
	sessions.Update(auth.SessionToken(c), user)
}
