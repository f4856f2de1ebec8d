package services

import (
	"testing"

	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusColor(t *testing.T) {
	tests := map[string]string{
		models.StatusInterview: "#00A8E8",
		models.StatusSubmitted: "#FFA500",
		models.StatusReviewed:  "#FFA500",
		models.StatusHired:     "#4CAF50",
		models.StatusRejected:  "#FF6347",
		"withdrawn":            "#FF6347",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusColor(status), status)
	}
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Interview Scheduled", SeekerStatusLabel(models.StatusInterview))
	assert.Equal(t, "Application Review", SeekerStatusLabel(models.StatusReviewed))
	assert.Equal(t, "New", EmployerStatusLabel(models.StatusSubmitted))
	assert.Equal(t, "mystery", EmployerStatusLabel("mystery"))

	for _, label := range []string{"New", "new", "submitted"} {
		status, ok := StatusFromEmployerLabel(label)
		assert.True(t, ok, label)
		assert.Equal(t, models.StatusSubmitted, status)
	}
	_, ok := StatusFromEmployerLabel("Ghosted")
	assert.False(t, ok)

	status, ok := StatusFromEmployerLabel(models.StatusHired)
	assert.True(t, ok)
	assert.Equal(t, models.StatusHired, status)
}

func TestTalentAndJobStatusColor(t *testing.T) {
	assert.Equal(t, "#00A8E8", TalentStatusColor("Interviewing"))
	assert.Equal(t, "#4CAF50", TalentStatusColor("Active"))
	assert.Equal(t, "#FFA500", TalentStatusColor("Contacted"))
	assert.Equal(t, "#6c757d", TalentStatusColor("New"))

	assert.Equal(t, "#00A8E8", JobStatusColor(models.JobActive))
	assert.Equal(t, "#FF6347", JobStatusColor(models.JobFilled))
}
