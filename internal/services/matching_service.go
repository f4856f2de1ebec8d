package services

import (
	"net/url"
	"strings"

	"github.com/justsurfingit/jobwave/internal/models"
)

// MatchCompany finds the existing company a free-text name (typed by an
// employer or extracted from a posting) refers to. It returns nil when no
// company matches.
func MatchCompany(companies []models.Company, name, website string) *models.Company {
	wanted := normalizeCompanyName(name)
	domain := hostOf(website)

	for i := range companies {
		companyName := normalizeCompanyName(companies[i].Name)
		// Very short names match everything.
		if len(companyName) < 3 {
			continue
		}

		// Exact name, ignoring case and legal suffix.
		if wanted != "" && wanted == companyName {
			return &companies[i]
		}

		// "TechNova" for "TechNova Inc." and the other way around.
		if wanted != "" && len(wanted) >= 3 && (strings.Contains(wanted, companyName) || strings.Contains(companyName, wanted)) {
			return &companies[i]
		}

		// Same website host.
		if domain != "" && domain == hostOf(companies[i].Website) {
			return &companies[i]
		}
	}
	return nil
}

var legalSuffixes = []string{" inc.", " inc", " llc", " ltd.", " ltd", " corp.", " corp", " gmbh"}

func normalizeCompanyName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, ",")
	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	return strings.TrimRight(name, " ,")
}

// hostOf reduces https://www.example.com/careers to example.com.
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
