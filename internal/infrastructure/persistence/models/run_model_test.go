//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/stretchr/testify/assert"
)

func TestRunModel_ToDomain(t *testing.T) {
	runModel := &RunModel{
		ID:              "test-id",
		Algorithm:       "dsa",
		Operation:       "sign",
		Status:          runs.StatusSuccess,
		StepCount:       5,
		Trace:           []byte(`{"r":3}`),
		DateTimeCreated: time.Now(),
	}

	runMeta := runModel.ToDomain()

	assert.Equal(t, runModel.ID, runMeta.ID)
	assert.Equal(t, runModel.Algorithm, runMeta.Algorithm)
	assert.Equal(t, runModel.Operation, runMeta.Operation)
	assert.Equal(t, runModel.Status, runMeta.Status)
	assert.Equal(t, runModel.StepCount, runMeta.StepCount)
	assert.JSONEq(t, string(runModel.Trace), string(runMeta.Trace))
	assert.Equal(t, runModel.DateTimeCreated, runMeta.DateTimeCreated)
}

func TestRunModel_FromDomain(t *testing.T) {
	runMeta := &runs.RunMeta{
		ID:              "test-id",
		Algorithm:       "caesar",
		Operation:       "encrypt",
		Status:          runs.StatusError,
		ErrorMessage:    "Missing text",
		DateTimeCreated: time.Now(),
	}

	runModel := &RunModel{}
	runModel.FromDomain(runMeta)

	assert.Equal(t, runMeta.ID, runModel.ID)
	assert.Equal(t, runMeta.Algorithm, runModel.Algorithm)
	assert.Equal(t, runMeta.Operation, runModel.Operation)
	assert.Equal(t, runMeta.Status, runModel.Status)
	assert.Equal(t, runMeta.ErrorMessage, runModel.ErrorMessage)
	assert.Empty(t, runModel.Trace)
	assert.Equal(t, runMeta.DateTimeCreated, runModel.DateTimeCreated)
}
