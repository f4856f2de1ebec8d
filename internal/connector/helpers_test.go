package connector

import (
	"testing"
	"time"

	"github.com/justsurfingit/jobwave/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func demoSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	ds, err := LoadDemoDataset()
	require.NoError(t, err)
	snap, err := ds.Materialize(fixedNow)
	require.NoError(t, err)
	return snap
}

func newTestMock(t *testing.T) *Mock {
	t.Helper()
	return newMockFromSnapshot(demoSnapshot(t), func() time.Time { return fixedNow })
}

// newTestStore returns a Store over a private in-memory SQLite database
// seeded with the demo dataset.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	ds, err := LoadDemoDataset()
	require.NoError(t, err)
	require.NoError(t, Seed(t.Context(), db, ds))
	return NewStore(db)
}
