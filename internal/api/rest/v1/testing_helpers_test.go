//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupRouter serves every route on a deterministic engine
func setupRouter(t *testing.T, recorder runs.RunRecorderService, metadata runs.RunMetadataService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := testutil.SetupTestLogger(t)
	engine, err := app.NewEngine(logger, cryptography.NewSeededRandomSource(42), config.DefaultEngineSettings())
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r, engine, recorder, metadata, logger)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, BasePath+path, nil)
	} else {
		req, _ = http.NewRequest(method, BasePath+path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Message
}
