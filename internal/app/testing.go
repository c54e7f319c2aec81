//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	RunRecorderService runs.RunRecorderService
	RunMetadataService runs.RunMetadataService

	DBContext *persistence.TestContext
}

// SetupTestServices initializes the run-history services on a fresh database
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	recorder, err := NewRunRecorderService(dbContext.RunRepo, logger)
	require.NoError(t, err, "Failed to create RunRecorderService")

	metadata, err := NewRunMetadataService(dbContext.RunRepo, logger)
	require.NoError(t, err, "Failed to create RunMetadataService")

	return &TestServices{
		RunRecorderService: recorder,
		RunMetadataService: metadata,
		DBContext:          dbContext,
	}
}
