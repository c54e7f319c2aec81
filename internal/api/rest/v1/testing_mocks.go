package v1

import (
	"context"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"

	"github.com/stretchr/testify/mock"
)

// MockRunRecorderService is a mock for runs.RunRecorderService
type MockRunRecorderService struct {
	mock.Mock
}

func (m *MockRunRecorderService) Record(ctx context.Context, algorithm, operation string, result any, runErr error) (*runs.RunMeta, error) {
	args := m.Called(ctx, algorithm, operation, result, runErr)
	if run, ok := args.Get(0).(*runs.RunMeta); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRunMetadataService is a mock for runs.RunMetadataService
type MockRunMetadataService struct {
	mock.Mock
}

func (m *MockRunMetadataService) List(ctx context.Context, query *runs.RunQuery) ([]*runs.RunMeta, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]*runs.RunMeta); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRunMetadataService) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	args := m.Called(ctx, runID)
	if run, ok := args.Get(0).(*runs.RunMeta); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRunMetadataService) GetTraceByID(ctx context.Context, runID string) ([]byte, error) {
	args := m.Called(ctx, runID)
	if trace, ok := args.Get(0).([]byte); ok {
		return trace, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRunMetadataService) DeleteByID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}
