// Package web holds the page templates and static assets, compiled into
// the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/justsurfingit/jobwave/internal/services"
	"github.com/samber/lo"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates is the parsed page set, one template per file name
// ("home.tmpl", "jobs.tmpl", ...). Parsed once at package init.
var Templates = template.Must(template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.tmpl"))

// Static serves the embedded stylesheet.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"seekerLabel":   services.SeekerStatusLabel,
		"employerLabel": services.EmployerStatusLabel,
		"badge":         badge,
		"join":          strings.Join,
		"comma":         comma,
		"rating":        func(r float64) string { return fmt.Sprintf("%.1f", r) },
		"contains":      func(list []string, v string) bool { return lo.Contains(list, v) },
		"initials":      initials,
		"year":          func() int { return time.Now().Year() },
	}
}

// badge is the inline style of a status pill. Colours only ever come from
// the status tables in services.
func badge(color string) template.CSS {
	return template.CSS("background-color: " + color)
}

func comma(n any) string {
	switch v := n.(type) {
	case int:
		return humanize.Comma(int64(v))
	case int64:
		return humanize.Comma(v)
	case uint:
		return humanize.Comma(int64(v))
	default:
		return fmt.Sprint(v)
	}
}

func initials(first, last string) string {
	out := ""
	for _, s := range []string{first, last} {
		if s != "" {
			out += strings.ToUpper(s[:1])
		}
	}
	return out
}
