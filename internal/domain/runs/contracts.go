package runs

import (
	"context"
)

// RunRecorderService stores the outcome of a verbose computation.
type RunRecorderService interface {
	// Record persists one run. result is serialized as the trace when runErr is nil,
	// otherwise the run is stored with status error and runErr's message.
	// It returns the stored RunMeta and any error encountered while persisting it.
	Record(ctx context.Context, algorithm, operation string, result any, runErr error) (*RunMeta, error)
}

// RunMetadataService defines methods for browsing and deleting recorded runs.
type RunMetadataService interface {
	// List retrieves run metadata considering a query filter when set.
	List(ctx context.Context, query *RunQuery) ([]*RunMeta, error)

	// GetByID retrieves a run by its unique ID.
	// It returns ErrRunNotFound when the ID is unknown.
	GetByID(ctx context.Context, runID string) (*RunMeta, error)

	// GetTraceByID returns the stored JSON trace of a run.
	GetTraceByID(ctx context.Context, runID string) ([]byte, error)

	// DeleteByID removes a run and its trace.
	DeleteByID(ctx context.Context, runID string) error
}

// RunRepository defines the interface for run persistence
type RunRepository interface {
	Create(ctx context.Context, run *RunMeta) error
	List(ctx context.Context, query *RunQuery) ([]*RunMeta, error)
	GetByID(ctx context.Context, runID string) (*RunMeta, error)
	DeleteByID(ctx context.Context, runID string) error
}
