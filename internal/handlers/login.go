package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"go.uber.org/zap"
)

// LoginPage shows the sign-in and create-account forms. Signed-in users
// go straight home.
func (h *PageHandler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil {
		if _, ok := h.deps.Sessions.Lookup(token); ok {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	h.render(c, http.StatusOK, "login.tmpl", "login", "Sign In", gin.H{})
}

func (h *PageHandler) SignIn(c *gin.Context) {
	var req dtos.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/login", err)
		return
	}
	user, err := h.deps.Shim.SignIn(req)
	if err != nil {
		redirectWith(c, "/login", flashError, err.Error())
		return
	}
	h.startSession(c, user, "Welcome back, "+user.FirstName+"!")
}

func (h *PageHandler) SignUp(c *gin.Context) {
	var req dtos.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, "/login", err)
		return
	}
	user, err := h.deps.Shim.SignUp(req)
	if err != nil {
		redirectWith(c, "/login", flashError, err.Error())
		return
	}
	h.deps.Log.Info("👤 Account created", zap.String("user", user.ID), zap.String("role", user.Role))
	h.startSession(c, user, "Account created, welcome "+user.FirstName+"!")
}

// startSession makes sure the user has a profile, then sets the cookie.
func (h *PageHandler) startSession(c *gin.Context, user auth.User, greeting string) {
	if _, err := h.deps.Profiles.Ensure(c.Request.Context(), user); err != nil {
		h.formFailed(c, "/login", err)
		return
	}
	token := h.deps.Sessions.Create(user)
	auth.SetSessionCookie(c, token, h.deps.Sessions.TTL())
	h.deps.Log.Info("🔑 Signed in", zap.String("user", user.ID), zap.String("role", user.Role))
	redirectWith(c, "/", flashSuccess, greeting)
}

func (h *PageHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil {
		h.deps.Sessions.Invalidate(token)
	}
	auth.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}
