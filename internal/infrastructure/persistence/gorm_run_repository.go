package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRunRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRunRepository creates a new GORM-based RunRepository implementation
func NewGormRunRepository(db *gorm.DB, logger logger.Logger) (runs.RunRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormRunRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRunRepository) Create(ctx context.Context, run *runs.RunMeta) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RunModel{}
	model.FromDomain(run)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	r.logger.Info(fmt.Sprintf("Created run %s (%s %s, %s)", run.ID, run.Algorithm, run.Operation, run.Status))
	return nil
}

func (r *gormRunRepository) List(ctx context.Context, query *runs.RunQuery) ([]*runs.RunMeta, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.RunModel
	// The trace column is only loaded by GetByID
	dbQuery := r.db.WithContext(ctx).Model(&models.RunModel{}).Omit("trace")

	if query.Algorithm != "" {
		dbQuery = dbQuery.Where("algorithm = ?", query.Algorithm)
	}
	if query.Operation != "" {
		dbQuery = dbQuery.Where("operation = ?", query.Operation)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	domainList := make([]*runs.RunMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormRunRepository) GetByID(ctx context.Context, runID string) (*runs.RunMeta, error) {
	var model models.RunModel
	if err := r.db.WithContext(ctx).Where("id = ?", runID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run with ID %s: %w", runID, runs.ErrRunNotFound)
		}
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRunRepository) DeleteByID(ctx context.Context, runID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", runID).Delete(&models.RunModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete run: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("run with ID %s: %w", runID, runs.ErrRunNotFound)
	}

	r.logger.Info(fmt.Sprintf("Deleted run %s", runID))
	return nil
}
