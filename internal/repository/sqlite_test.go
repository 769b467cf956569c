package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "violations.db")

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	records, _, err := ParseViolations(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.NoError(t, repo.SaveViolations(ctx, records))

	count, err := repo.CountViolations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	loaded, err := repo.LoadViolations(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, "Dorchester", loaded[0].City)
	require.NotNil(t, loaded[0].StatusTime)
	assert.True(t, records[0].StatusTime.Equal(*loaded[0].StatusTime))
	require.NotNil(t, loaded[0].Latitude)
	assert.InDelta(t, 42.3, *loaded[0].Latitude, 1e-9)

	assert.Nil(t, loaded[1].StatusTime)
	assert.Nil(t, loaded[1].Latitude)
	assert.Empty(t, loaded[2].City)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "violations.db")

	require.NoError(t, RunMigrations(path))
	assert.NoError(t, RunMigrations(path))
}
