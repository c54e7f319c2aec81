package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"

	"github.com/gin-gonic/gin"
)

// RunHandler defines the interface for browsing the run history
type RunHandler interface {
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	GetTraceByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type runHandler struct {
	runMetadataService runs.RunMetadataService
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runMetadataService runs.RunMetadataService) RunHandler {
	return &runHandler{
		runMetadataService: runMetadataService,
	}
}

// ListMetadata handles the GET request to list recorded runs with optional query parameters
// @Summary List recorded runs
// @Description Fetch runs filtered by algorithm, operation, status and creation date, with pagination and sorting options.
// @Tags Run
// @Produce json
// @Param algorithm query string false "Algorithm"
// @Param operation query string false "Operation"
// @Param status query string false "success or error"
// @Param dateTimeCreated query string false "Runs created at or after (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} RunMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /runs [get]
func (handler *runHandler) ListMetadata(ctx *gin.Context) {
	query := runs.NewRunQuery()

	query.Algorithm = ctx.Query("algorithm")
	query.Operation = ctx.Query("operation")
	query.Status = ctx.Query("status")

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "dateTimeCreated must be RFC3339"})
			return
		}
		query.DateTimeCreated = parsedTime
	}

	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		if raw := ctx.Query(name); len(raw) > 0 {
			value, err := strconv.Atoi(raw)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("%s must be an integer", name)})
				return
			}
			*target = value
		}
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	runList, err := handler.runMetadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := make([]RunMetaResponse, 0, len(runList))
	for _, run := range runList {
		listResponse = append(listResponse, newRunMetaResponse(run))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID handles the GET request to retrieve one run by ID
// @Summary Retrieve run metadata by ID
// @Tags Run
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} RunMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /runs/{id} [get]
func (handler *runHandler) GetMetadataByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	run, err := handler.runMetadataService.GetByID(ctx, runID)
	if err != nil {
		writeLookupError(ctx, runID, err)
		return
	}

	ctx.JSON(http.StatusOK, newRunMetaResponse(run))
}

// GetTraceByID handles the GET request for the stored trace of a run
// @Summary Retrieve the JSON trace of a run
// @Tags Run
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} object "The result exactly as it was returned"
// @Failure 404 {object} ErrorResponse
// @Router /runs/{id}/trace [get]
func (handler *runHandler) GetTraceByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	trace, err := handler.runMetadataService.GetTraceByID(ctx, runID)
	if err != nil {
		writeLookupError(ctx, runID, err)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", trace)
}

// DeleteByID handles the DELETE request to remove a run from the history
// @Summary Delete a run by ID
// @Tags Run
// @Param id path string true "Run ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /runs/{id} [delete]
func (handler *runHandler) DeleteByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	if err := handler.runMetadataService.DeleteByID(ctx, runID); err != nil {
		writeLookupError(ctx, runID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func writeLookupError(ctx *gin.Context, runID string, err error) {
	if isNotFound(err) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("run with id %s: %v", runID, err)})
		return
	}
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
}
