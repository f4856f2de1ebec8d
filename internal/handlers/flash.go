package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "jobwave_flash"

// Flash is a one-shot banner carried across a redirect. gin escapes the
// cookie value on write and unescapes it on read.
type Flash struct {
	Kind    string // success or error
	Message string
}

func setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+":"+message, 60, "/", "", false, true)
}

// popFlash reads and clears the banner of the previous request.
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	kind, message, ok := strings.Cut(raw, ":")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

// redirectWith sets a banner and sends the browser to path.
func redirectWith(c *gin.Context, path, kind, message string) {
	setFlash(c, kind, message)
	c.Redirect(http.StatusSeeOther, path)
}
