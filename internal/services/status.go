package services

import (
	"strings"

	"github.com/justsurfingit/jobwave/internal/models"
)

// Badge colours.
const (
	ColorBlue   = "#00A8E8"
	ColorOrange = "#FFA500"
	ColorGreen  = "#4CAF50"
	ColorRed    = "#FF6347"
	ColorGrey   = "#6c757d"
)

var seekerLabels = map[string]string{
	models.StatusSubmitted: "Application Submitted",
	models.StatusReviewed:  "Application Review",
	models.StatusInterview: "Interview Scheduled",
	models.StatusRejected:  "Rejected",
	models.StatusHired:     "Hired",
}

var employerLabels = map[string]string{
	models.StatusSubmitted: "New",
	models.StatusReviewed:  "Reviewed",
	models.StatusInterview: "Interview",
	models.StatusRejected:  "Rejected",
	models.StatusHired:     "Hired",
}

// StatusColor is the badge colour of an application status. Seekers and
// employers see the same colours under different labels.
func StatusColor(status string) string {
	switch status {
	case models.StatusInterview:
		return ColorBlue
	case models.StatusSubmitted, models.StatusReviewed:
		return ColorOrange
	case models.StatusHired:
		return ColorGreen
	default:
		return ColorRed
	}
}

func SeekerStatusLabel(status string) string {
	if label, ok := seekerLabels[status]; ok {
		return label
	}
	return status
}

func EmployerStatusLabel(status string) string {
	if label, ok := employerLabels[status]; ok {
		return label
	}
	return status
}

// StatusFromEmployerLabel maps a dashboard label such as "New" back to the
// stored status. Stored values are accepted as well.
func StatusFromEmployerLabel(label string) (string, bool) {
	for status, l := range employerLabels {
		if strings.EqualFold(l, label) || status == label {
			return status, true
		}
	}
	return "", false
}

// TalentStatusColor colours the talent-pool badge of a candidate.
func TalentStatusColor(status string) string {
	switch status {
	case "Interviewing":
		return ColorBlue
	case "Active":
		return ColorGreen
	case "Contacted":
		return ColorOrange
	default:
		return ColorGrey
	}
}

// JobStatusColor colours a posting on the employer dashboard.
func JobStatusColor(status string) string {
	if status == models.JobActive {
		return ColorBlue
	}
	return ColorRed
}
