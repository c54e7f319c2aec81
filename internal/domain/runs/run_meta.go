package runs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Run outcomes
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrRunNotFound is returned when no run matches the requested ID
var ErrRunNotFound = errors.New("run not found")

// ErrNoTrace is returned when the trace of a failed run is requested
var ErrNoTrace = errors.New("run has no trace")

// RunMeta entity: one recorded verbose computation and its trace
type RunMeta struct {
	ID              string          `json:"id" validate:"required,uuid4"`
	Algorithm       string          `json:"algorithm" validate:"required,min=1,max=50"`
	Operation       string          `json:"operation" validate:"required,min=1,max=50"`
	Status          string          `json:"status" validate:"required,oneof=success error"`
	ErrorMessage    string          `json:"error_message,omitempty" validate:"max=1024"`
	StepCount       int             `json:"step_count" validate:"gte=0"`
	Trace           json.RawMessage `json:"-"`
	DateTimeCreated time.Time       `json:"date_time_created" validate:"required"`
}

// Validate for validating RunMeta struct
func (r *RunMeta) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		return formatValidationErrors(err)
	}

	if r.Status == StatusError && r.ErrorMessage == "" {
		return fmt.Errorf("validation failed: [Field: ErrorMessage, Tag: required_if]")
	}
	if r.Status == StatusSuccess && len(r.Trace) > 0 && !json.Valid(r.Trace) {
		return fmt.Errorf("validation failed: [Field: Trace, Tag: json]")
	}

	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
