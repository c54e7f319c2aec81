package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// prngProcessor struct that implements the PRNGProcessor interface
type prngProcessor struct {
	logger     logger.Logger
	maxSamples int
}

// NewPRNGProcessor creates and returns a new instance of prngProcessor
func NewPRNGProcessor(logger logger.Logger, settings config.EngineSettings) (cryptoalg.PRNGProcessor, error) {
	if settings.PrngMaxSamples < 1 {
		return nil, fmt.Errorf("prng max samples must be positive, got %d", settings.PrngMaxSamples)
	}
	return &prngProcessor{logger: logger, maxSamples: settings.PrngMaxSamples}, nil
}

// LCG records one step per iteration and flags the first return to the seed
func (g *prngProcessor) LCG(m, a, c, seed *big.Int, n int) (*cryptoalg.LCGResult, error) {
	if err := requireAtLeast("m", m, 2); err != nil {
		return nil, err
	}
	for _, v := range []struct {
		name  string
		value *big.Int
	}{{"a", a}, {"c", c}, {"seed", seed}} {
		if err := requireAtLeast(v.name, v.value, 0); err != nil {
			return nil, err
		}
	}
	if n < 1 || n > g.maxSamples {
		return nil, cryptoalg.NewValidationError("the number of samples must be in [1, %d]", g.maxSamples)
	}

	rec := trace.NewRecorder[trace.Step](n + 2)
	rec.Record(trace.Step{
		Label:       "Start",
		Description: fmt.Sprintf("Initial seed X0 = %s. Parameters: m=%s, a=%s, c=%s.", seed, m, a, c),
		Formula:     "X(n+1) = (a * X(n) + c) mod m",
		Result:      seed,
	})

	sequence := make([]*big.Int, 0, n+1)
	sequence = append(sequence, seed)
	period := 0
	x := seed
	for i := 1; i <= n; i++ {
		term := add(mul(a, x), c)
		next := mod(term, m)
		rec.Record(trace.Step{
			Label:    fmt.Sprintf("Iteration %d (X%d)", i, i),
			Operands: []trace.Operand{trace.Op("term", term)},
			Formula:  fmt.Sprintf("(%s * %s + %s) mod %s = %s mod %s", a, x, c, m, term, m),
			Result:   next,
		})
		sequence = append(sequence, next)
		x = next

		if period == 0 && i < n && next.Cmp(seed) == 0 {
			period = i
			rec.Record(trace.Step{
				Label:       "Cycle detected",
				Description: fmt.Sprintf("X%d (%s) equals the initial seed. The sequence repeats with period %d from here on.", i, next, i),
				Result:      i,
			})
		}
	}

	logTraced(g.logger, "LCG", "generate", rec.Len())
	return &cryptoalg.LCGResult{
		M:        m,
		A:        a,
		C:        c,
		Seed:     seed,
		Sequence: sequence,
		Period:   period,
		Cycle:    period > 0,
		Steps:    rec.Steps(),
	}, nil
}
