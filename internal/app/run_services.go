package app

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/google/uuid"
)

// maxErrorMessageLength matches the error_message column width
const maxErrorMessageLength = 1024

// runRecorderService implements the RunRecorderService interface
type runRecorderService struct {
	runRepo runs.RunRepository
	logger  logger.Logger
	now     func() time.Time
}

// NewRunRecorderService creates a new runRecorderService instance
func NewRunRecorderService(runRepo runs.RunRepository, logger logger.Logger) (runs.RunRecorderService, error) {
	if runRepo == nil {
		return nil, fmt.Errorf("run repository cannot be nil")
	}
	return &runRecorderService{
		runRepo: runRepo,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Record stores the outcome of one verbose computation.
func (s *runRecorderService) Record(ctx context.Context, algorithm, operation string, result any, runErr error) (*runs.RunMeta, error) {
	run := &runs.RunMeta{
		ID:              uuid.New().String(),
		Algorithm:       algorithm,
		Operation:       operation,
		Status:          runs.StatusSuccess,
		DateTimeCreated: s.now(),
	}

	if runErr != nil {
		run.Status = runs.StatusError
		run.ErrorMessage = truncate(runErr.Error(), maxErrorMessageLength)
	} else {
		trace, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s %s trace: %w", algorithm, operation, err)
		}
		run.Trace = trace
		run.StepCount = stepCount(result)
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// stepCount totals the trace entries of a result: its Steps, the DES Rounds,
// or the Steps of every AES block. Results without a trace count zero.
func stepCount(result any) int {
	v := reflect.ValueOf(result)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return 0
	}

	if f := v.FieldByName("Steps"); f.IsValid() && f.Kind() == reflect.Slice {
		return f.Len()
	}
	if f := v.FieldByName("Rounds"); f.IsValid() && f.Kind() == reflect.Slice {
		return f.Len()
	}
	if f := v.FieldByName("Blocks"); f.IsValid() && f.Kind() == reflect.Slice {
		total := 0
		for i := 0; i < f.Len(); i++ {
			total += stepCount(f.Index(i).Interface())
		}
		return total
	}
	return 0
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// runMetadataService implements the RunMetadataService interface
type runMetadataService struct {
	runRepo runs.RunRepository
	logger  logger.Logger
}

// NewRunMetadataService creates a new runMetadataService instance
func NewRunMetadataService(runRepo runs.RunRepository, logger logger.Logger) (runs.RunMetadataService, error) {
	if runRepo == nil {
		return nil, fmt.Errorf("run repository cannot be nil")
	}
	return &runMetadataService{
		runRepo: runRepo,
		logger:  logger,
	}, nil
}

// List retrieves run metadata based on a query.
func (s *runMetadataService) List(ctx context.Context, query *runs.RunQuery) ([]*runs.RunMeta, error) {
	runList, err := s.runRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return runList, nil
}

// GetByID retrieves a run by its ID.
func (s *runMetadataService) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return run, nil
}

// GetTraceByID returns the JSON trace of a run. Failed runs have none.
func (s *runMetadataService) GetTraceByID(ctx context.Context, runID string) ([]byte, error) {
	run, err := s.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status == runs.StatusError {
		return nil, fmt.Errorf("run %s failed: %w", runID, runs.ErrNoTrace)
	}

	return run.Trace, nil
}

// DeleteByID deletes a run by its ID.
func (s *runMetadataService) DeleteByID(ctx context.Context, runID string) error {
	if err := s.runRepo.DeleteByID(ctx, runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Run %s removed from history", runID))
	return nil
}
