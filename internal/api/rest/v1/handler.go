package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RunIDHeader carries the ID under which a computation was recorded
const RunIDHeader = "X-Run-ID"

// validatable is implemented by every request DTO
type validatable interface {
	Validate() error
}

// textual is implemented by requests whose free-text fields are length limited
type textual interface {
	textFields() []string
}

// baseHandler holds what every compute handler shares: binding, recording and error mapping
type baseHandler struct {
	recorder      runs.RunRecorderService
	logger        logger.Logger
	maxTextLength int
}

// bind decodes the JSON body into request and validates it. On failure the
// 400 response has been written, the run is recorded and false is returned.
func (h *baseHandler) bind(ctx *gin.Context, algorithm, operation string, request validatable) bool {
	if err := ctx.ShouldBindJSON(request); err != nil {
		h.fail(ctx, algorithm, operation, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}

	return h.validate(ctx, algorithm, operation, request)
}

func (h *baseHandler) validate(ctx *gin.Context, algorithm, operation string, request validatable) bool {
	if err := request.Validate(); err != nil {
		h.fail(ctx, algorithm, operation, http.StatusBadRequest, err)
		return false
	}

	if t, ok := request.(textual); ok && h.maxTextLength > 0 {
		for _, field := range t.textFields() {
			if utf8.RuneCountInString(field) > h.maxTextLength {
				h.fail(ctx, algorithm, operation, http.StatusBadRequest, fmt.Errorf("text exceeds %d characters", h.maxTextLength))
				return false
			}
		}
	}
	return true
}

// bindOptional is bind for routes whose body may be omitted entirely
func (h *baseHandler) bindOptional(ctx *gin.Context, algorithm, operation string, request validatable) bool {
	if ctx.Request.Body == nil || ctx.Request.ContentLength == 0 {
		return h.validate(ctx, algorithm, operation, request)
	}
	if err := ctx.ShouldBindJSON(request); err != nil && !errors.Is(err, io.EOF) {
		h.fail(ctx, algorithm, operation, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return h.validate(ctx, algorithm, operation, request)
}

// respond records the run and writes the result. Validation errors map to
// 400, every other error to 500.
func (h *baseHandler) respond(ctx *gin.Context, algorithm, operation string, result any, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if cryptoalg.IsValidationError(err) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error(fmt.Sprintf("%s %s failed: %v", algorithm, operation, err))
		}
		h.fail(ctx, algorithm, operation, status, err)
		return
	}

	h.record(ctx, algorithm, operation, result, nil)
	ctx.JSON(http.StatusOK, result)
}

func (h *baseHandler) fail(ctx *gin.Context, algorithm, operation string, status int, err error) {
	h.record(ctx, algorithm, operation, nil, err)
	ctx.JSON(status, ErrorResponse{Message: err.Error()})
}

// record stores the run; a failure here never changes the response
func (h *baseHandler) record(ctx *gin.Context, algorithm, operation string, result any, runErr error) {
	if h.recorder == nil {
		return
	}

	run, err := h.recorder.Record(ctx, algorithm, operation, result, runErr)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("Failed to record %s %s run: %v", algorithm, operation, err))
		return
	}
	ctx.Header(RunIDHeader, run.ID)
}

func isNotFound(err error) bool {
	return errors.Is(err, runs.ErrRunNotFound) || errors.Is(err, runs.ErrNoTrace)
}
