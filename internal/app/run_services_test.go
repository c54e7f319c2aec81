//go:build unit
// +build unit

package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunRepository struct {
	mock.Mock
}

func (m *mockRunRepository) Create(ctx context.Context, run *runs.RunMeta) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockRunRepository) List(ctx context.Context, query *runs.RunQuery) ([]*runs.RunMeta, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]*runs.RunMeta); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRunRepository) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	args := m.Called(ctx, runID)
	if run, ok := args.Get(0).(*runs.RunMeta); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRunRepository) DeleteByID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func TestStepCount(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   int
	}{
		{"trace steps", &cryptoalg.DHSetupResult{Steps: make([]trace.Step, 3)}, 3},
		{"letter steps", &cryptoalg.CaesarResult{Steps: make([]cryptoalg.LetterStep, 5)}, 5},
		{"des rounds", &cryptoalg.DESResult{Rounds: make([]cryptoalg.DESRound, 16)}, 16},
		{"aes blocks", &cryptoalg.AESResult{Blocks: []cryptoalg.AESBlock{
			{Steps: make([]cryptoalg.AESStep, 40)},
			{Steps: make([]cryptoalg.AESStep, 40)},
		}}, 80},
		{"no trace", &cryptoalg.IPsecLayout{}, 0},
		{"nil pointer", (*cryptoalg.HMACResult)(nil), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stepCount(tt.result))
		})
	}
}

func TestRunRecorderService_Record(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	t.Run("success stores the trace", func(t *testing.T) {
		repo := new(mockRunRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*runs.RunMeta")).Return(nil)

		service, err := NewRunRecorderService(repo, logger)
		require.NoError(t, err)

		result := &cryptoalg.DHSetupResult{Steps: []trace.Step{{Label: "1. Public parameters"}}}
		run, err := service.Record(context.Background(), "dh", "setup", result, nil)
		require.NoError(t, err)

		assert.Equal(t, runs.StatusSuccess, run.Status)
		assert.Equal(t, 1, run.StepCount)
		assert.NotEmpty(t, run.ID)
		assert.True(t, json.Valid(run.Trace))
		assert.Contains(t, string(run.Trace), "1. Public parameters")
		repo.AssertExpectations(t)
	})

	t.Run("failure stores the message only", func(t *testing.T) {
		repo := new(mockRunRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*runs.RunMeta")).Return(nil)

		service, err := NewRunRecorderService(repo, logger)
		require.NoError(t, err)

		run, err := service.Record(context.Background(), "caesar", "encrypt", nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText))
		require.NoError(t, err)

		assert.Equal(t, runs.StatusError, run.Status)
		assert.Equal(t, cryptoalg.MsgMissingText, run.ErrorMessage)
		assert.Empty(t, run.Trace)
		assert.Zero(t, run.StepCount)
	})

	t.Run("long messages are truncated", func(t *testing.T) {
		repo := new(mockRunRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		service, err := NewRunRecorderService(repo, logger)
		require.NoError(t, err)

		run, err := service.Record(context.Background(), "hmac", "compute", nil, errors.New(strings.Repeat("x", 2000)))
		require.NoError(t, err)
		assert.Len(t, run.ErrorMessage, maxErrorMessageLength)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(mockRunRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		service, err := NewRunRecorderService(repo, logger)
		require.NoError(t, err)

		_, err = service.Record(context.Background(), "dh", "setup", &cryptoalg.DHSetupResult{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewRunRecorderService(nil, logger)
		assert.Error(t, err)
	})
}

func TestRunMetadataService(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	ctx := context.Background()

	stored := &runs.RunMeta{ID: "run-1", Status: runs.StatusSuccess, Trace: []byte(`{"steps":[]}`)}
	failed := &runs.RunMeta{ID: "run-2", Status: runs.StatusError, ErrorMessage: "Missing key"}

	repo := new(mockRunRepository)
	repo.On("List", ctx, mock.Anything).Return([]*runs.RunMeta{stored, failed}, nil)
	repo.On("GetByID", ctx, "run-1").Return(stored, nil)
	repo.On("GetByID", ctx, "run-2").Return(failed, nil)
	repo.On("GetByID", ctx, "missing").Return(nil, runs.ErrRunNotFound)
	repo.On("DeleteByID", ctx, "run-1").Return(nil)
	repo.On("DeleteByID", ctx, "missing").Return(runs.ErrRunNotFound)

	service, err := NewRunMetadataService(repo, logger)
	require.NoError(t, err)

	list, err := service.List(ctx, runs.NewRunQuery())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	trace, err := service.GetTraceByID(ctx, "run-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"steps":[]}`, string(trace))

	_, err = service.GetTraceByID(ctx, "run-2")
	assert.ErrorIs(t, err, runs.ErrNoTrace)

	_, err = service.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, runs.ErrRunNotFound)

	require.NoError(t, service.DeleteByID(ctx, "run-1"))
	assert.ErrorIs(t, service.DeleteByID(ctx, "missing"), runs.ErrRunNotFound)

	repo.AssertExpectations(t)
}

func TestNewEngine(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	t.Run("wires every processor", func(t *testing.T) {
		engine, err := NewEngine(logger, cryptography.NewSeededRandomSource(1), config.DefaultEngineSettings())
		require.NoError(t, err)
		assert.NotNil(t, engine.Classical)
		assert.NotNil(t, engine.BlockCipher)
		assert.NotNil(t, engine.DSA)
		assert.NotNil(t, engine.IPsec)
		assert.Equal(t, 16, engine.Settings.EccMaxPrivateScalar)
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		settings := config.DefaultEngineSettings()
		settings.DsaMaxSignAttempts = 0
		_, err := NewEngine(logger, cryptography.NewSeededRandomSource(1), settings)
		assert.Error(t, err)
	})

	t.Run("rejects a nil random source", func(t *testing.T) {
		_, err := NewEngine(logger, nil, config.DefaultEngineSettings())
		assert.Error(t, err)
	})
}
