//go:build unit
// +build unit

package cryptography

import (
	"math/big"
	"testing"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const testSeed = 42

func setupClassicalProcessor(t *testing.T) cryptoalg.ClassicalProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewClassicalProcessor(logger, NewSeededRandomSource(testSeed))
	require.NoError(t, err)
	return processor
}

func testEngineSettings() config.EngineSettings {
	return config.DefaultEngineSettings()
}

func requireValidationError(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, cryptoalg.IsValidationError(err), "expected validation error, got %T: %v", err, err)
	if msg != "" {
		require.Equal(t, msg, err.Error())
	}
}

func bi(v int64) *big.Int {
	return big.NewInt(v)
}

// zeroSource makes every range draw return its lower bound.
type zeroSource struct{}

func (zeroSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
