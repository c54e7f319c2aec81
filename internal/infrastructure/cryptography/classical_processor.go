package cryptography

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// classicalProcessor implements cryptoalg.ClassicalProcessor
type classicalProcessor struct {
	logger logger.Logger
	random cryptoalg.RandomSource
}

// NewClassicalProcessor creates a processor for the classical ciphers. random
// backs the auto-generated Vernam and OTP keys.
func NewClassicalProcessor(logger logger.Logger, random cryptoalg.RandomSource) (cryptoalg.ClassicalProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &classicalProcessor{
		logger: logger,
		random: random,
	}, nil
}

// cleanLetters upper-cases text and drops everything outside A-Z.
func cleanLetters(text string) string {
	var b strings.Builder
	for _, r := range text {
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fitKey repeats or truncates key to exactly n units.
func fitKey[T any](key []T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = key[i%len(key)]
	}
	return out
}

func letterIndex(b byte) int {
	return int(b - 'A')
}

func letterAt(i int) string {
	return string(alphabet[modInt(i, 26)])
}

func (p *classicalProcessor) traced(cipher, mode string, steps int) {
	logTraced(p.logger, cipher, mode, steps)
}

// logTraced writes the one Info line every completed operation emits.
func logTraced(l logger.Logger, algorithm, operation string, steps int) {
	l.Info(fmt.Sprintf("%s %s traced with %d steps", algorithm, operation, steps))
}
