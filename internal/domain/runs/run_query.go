package runs

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RunQuery filters and pages the run history
type RunQuery struct {
	Algorithm       string    `form:"algorithm" validate:"omitempty,max=50"`
	Operation       string    `form:"operation" validate:"omitempty,max=50"`
	Status          string    `form:"status" validate:"omitempty,oneof=success error"`
	DateTimeCreated time.Time `form:"dateTimeCreated" time_format:"2006-01-02T15:04:05Z07:00"`

	Limit  int `form:"limit" validate:"gte=0,lte=1000"`
	Offset int `form:"offset" validate:"gte=0"`

	SortBy    string `form:"sortBy" validate:"omitempty,oneof=id algorithm operation status step_count date_time_created"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// NewRunQuery returns a query listing the newest runs first
func NewRunQuery() *RunQuery {
	return &RunQuery{
		Limit:     100,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating RunQuery struct
func (q *RunQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}
