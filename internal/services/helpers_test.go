package services

import (
	"testing"

	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	demoSeeker   = auth.User{ID: auth.DemoSeekerID, FirstName: "Demo", LastName: "User", Role: models.RoleJobSeeker}
	demoEmployer = auth.User{ID: auth.DemoEmployerID, FirstName: "Demo", LastName: "Employer", Role: models.RoleEmployer}
)

func newTestConnector(t *testing.T) connector.Connector {
	t.Helper()
	ds, err := connector.LoadDemoDataset()
	require.NoError(t, err)
	mock, err := connector.NewMock(ds)
	require.NoError(t, err)
	return mock
}

func jobByTitle(t *testing.T, jobs []JobView, title string) JobView {
	t.Helper()
	for _, j := range jobs {
		if j.Title == title {
			return j
		}
	}
	t.Fatalf("no job titled %q", title)
	return JobView{}
}

var nopLog = zap.NewNop()
