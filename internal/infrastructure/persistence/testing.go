//go:build integration
// +build integration

package persistence

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB      *gorm.DB
	RunRepo runs.RunRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)
	runRepo, err := NewGormRunRepository(db, logger)
	require.NoError(t, err, "Failed to create run repository")

	return &TestContext{
		DB:      db,
		RunRepo: runRepo,
	}
}

// CreateTestRun creates a successful run whose trace holds stepCount empty steps
func CreateTestRun(t *testing.T, algorithm, operation string, stepCount int) *runs.RunMeta {
	t.Helper()

	steps := make([]map[string]string, stepCount)
	for i := range steps {
		steps[i] = map[string]string{"step": algorithm}
	}
	trace, err := json.Marshal(map[string]any{"steps": steps})
	require.NoError(t, err)

	return &runs.RunMeta{
		ID:              uuid.NewString(),
		Algorithm:       algorithm,
		Operation:       operation,
		Status:          runs.StatusSuccess,
		StepCount:       stepCount,
		Trace:           trace,
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateFailedRun creates a run that ended in a validation error
func CreateFailedRun(t *testing.T, algorithm, operation, message string) *runs.RunMeta {
	t.Helper()

	return &runs.RunMeta{
		ID:              uuid.NewString(),
		Algorithm:       algorithm,
		Operation:       operation,
		Status:          runs.StatusError,
		ErrorMessage:    message,
		DateTimeCreated: time.Now().UTC(),
	}
}
