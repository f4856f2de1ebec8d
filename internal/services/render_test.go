package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := string(RenderMarkdown("Build with **React** and <script>alert(1)</script> [docs](https://example.com)"))
	assert.Contains(t, html, "<strong>React</strong>")
	assert.Contains(t, html, `href="https://example.com"`)
	assert.NotContains(t, html, "<script>")
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", Ago(now.Add(-10*time.Second), now))
	assert.Equal(t, "2 days ago", Ago(now.AddDate(0, 0, -2), now))
	assert.Equal(t, "1 week ago", Ago(now.AddDate(0, 0, -7), now))
}
