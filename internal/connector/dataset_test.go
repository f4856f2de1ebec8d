package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoDataset_Materialize(t *testing.T) {
	snap := demoSnapshot(t)

	assert.Len(t, snap.Companies, 9)
	assert.Len(t, snap.Jobs, 10)
	assert.Len(t, snap.Profiles, 7)
	assert.Len(t, snap.Applications, 10)

	for i, j := range snap.Jobs {
		assert.EqualValues(t, i+1, j.ID)
		assert.NotZero(t, j.CompanyID, j.Title)
	}

	employer := snap.Profiles[1]
	require.NotNil(t, employer.CompanyID)
	assert.EqualValues(t, 1, *employer.CompanyID)
	assert.True(t, employer.Settings.JobAlerts)

	assert.Equal(t, fixedNow.AddDate(0, 0, -2), snap.Jobs[0].CreatedAt)
}

func TestDataset_UnknownReferences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "job with unknown company",
			raw:  "jobs:\n  - key: a\n    company: Nowhere\n",
			want: `job "a": unknown company "Nowhere"`,
		},
		{
			name: "application with unknown job",
			raw:  "applications:\n  - job: missing\n    user_id: u\n",
			want: `application 0: unknown job "missing"`,
		},
		{
			name: "profile with unknown company",
			raw:  "profiles:\n  - user_id: u\n    company: Ghost\n",
			want: `profile "u": unknown company "Ghost"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ParseDataset([]byte(tt.raw))
			require.NoError(t, err)
			_, err = ds.Materialize(fixedNow)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestParseDataset_InvalidYAML(t *testing.T) {
	_, err := ParseDataset([]byte("companies: [unterminated"))
	assert.ErrorContains(t, err, "parsing demo dataset")
}
