package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

// eccMaxEnumerationPrime bounds the field size Points will walk
const eccMaxEnumerationPrime = 4099

// eccProcessor struct that implements the ECCProcessor interface
type eccProcessor struct {
	logger    logger.Logger
	random    cryptoalg.RandomSource
	maxScalar *big.Int
}

// NewECCProcessor creates and returns a new instance of eccProcessor. Generated
// private scalars are bounded by settings.EccMaxPrivateScalar.
func NewECCProcessor(logger logger.Logger, random cryptoalg.RandomSource, settings config.EngineSettings) (cryptoalg.ECCProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if settings.EccMaxPrivateScalar < 2 {
		return nil, fmt.Errorf("ecc max private scalar must be at least 2, got %d", settings.EccMaxPrivateScalar)
	}
	return &eccProcessor{
		logger:    logger,
		random:    random,
		maxScalar: big.NewInt(int64(settings.EccMaxPrivateScalar)),
	}, nil
}

func (e *eccProcessor) Params() cryptoalg.Curve {
	return cryptoalg.DefaultCurve()
}

// Points lists every (x, y) with y^2 = x^3 + ax + b mod p, then the point at infinity
func (e *eccProcessor) Points(curve cryptoalg.Curve) (*cryptoalg.ECCPointsResult, error) {
	if err := validateCurve(curve); err != nil {
		return nil, err
	}
	if curve.P.Cmp(big.NewInt(eccMaxEnumerationPrime)) > 0 {
		return nil, cryptoalg.NewValidationError("point enumeration needs p <= %d", eccMaxEnumerationPrime)
	}

	points := []cryptoalg.ECPoint{}
	for x := big.NewInt(0); x.Cmp(curve.P) < 0; x.Add(x, one) {
		rhs := curveRHS(curve, x)
		if rhs.Sign() == 0 {
			points = append(points, cryptoalg.ECPoint{X: new(big.Int).Set(x), Y: big.NewInt(0)})
			continue
		}
		y := new(big.Int).ModSqrt(rhs, curve.P)
		if y == nil {
			continue
		}
		other := sub(curve.P, y)
		if other.Cmp(y) < 0 {
			y, other = other, y
		}
		points = append(points,
			cryptoalg.ECPoint{X: new(big.Int).Set(x), Y: y},
			cryptoalg.ECPoint{X: new(big.Int).Set(x), Y: other},
		)
	}
	points = append(points, cryptoalg.InfinityPoint())

	e.logger.Info(fmt.Sprintf("ECC enumerated %d points over GF(%s)", len(points), curve.P))
	return &cryptoalg.ECCPointsResult{Curve: curve, Points: points, Count: len(points)}, nil
}

// Multiply computes k*P by double-and-add over the bits of k, least significant first
func (e *eccProcessor) Multiply(curve cryptoalg.Curve, k *big.Int, p cryptoalg.ECPoint) (*cryptoalg.ECCMultiplyResult, error) {
	if err := validateCurve(curve); err != nil {
		return nil, err
	}
	if err := requireAtLeast("k", k, 0); err != nil {
		return nil, err
	}
	if err := requireOnCurve(curve, p, "P"); err != nil {
		return nil, err
	}

	res := scalarMultiply(curve, k, p)
	logTraced(e.logger, "ECC", "scalar multiplication", len(res.Steps))
	return res, nil
}

// GenerateKeys returns Q = d*G for a small private scalar d
func (e *eccProcessor) GenerateKeys(curve cryptoalg.Curve, d *big.Int) (*cryptoalg.ECCKeyResult, error) {
	if err := validateCurve(curve); err != nil {
		return nil, err
	}

	var err error
	if d == nil {
		if d, err = randomInRange(e.random, two, e.maxScalar); err != nil {
			return nil, err
		}
	} else if err = requireAtLeast("d", d, 1); err != nil {
		return nil, err
	}

	mult := scalarMultiply(curve, d, curve.G)
	steps := make([]trace.Step, 0, len(mult.Steps)+1)
	steps = append(steps, trace.Step{
		Label:       "Private key",
		Description: fmt.Sprintf("d = %s is kept small so the trace stays short. The public key is Q = d * G.", d),
		Operands:    []trace.Operand{trace.Op("max", new(big.Int).Set(e.maxScalar))},
		Result:      new(big.Int).Set(d),
	})
	steps = append(steps, mult.Steps...)

	logTraced(e.logger, "ECC", "key generation", len(steps))
	return &cryptoalg.ECCKeyResult{Curve: curve, PrivateKey: d, PublicKey: mult.Result, Steps: steps}, nil
}

// SharedSecret computes S = d*Q
func (e *eccProcessor) SharedSecret(curve cryptoalg.Curve, d *big.Int, q cryptoalg.ECPoint) (*cryptoalg.ECCMultiplyResult, error) {
	if err := validateCurve(curve); err != nil {
		return nil, err
	}
	if err := requireAtLeast("d", d, 1); err != nil {
		return nil, err
	}
	if err := requireOnCurve(curve, q, "Q"); err != nil {
		return nil, err
	}

	res := scalarMultiply(curve, d, q)
	logTraced(e.logger, "ECC", "shared secret", len(res.Steps))
	return res, nil
}

func scalarMultiply(curve cryptoalg.Curve, k *big.Int, p cryptoalg.ECPoint) *cryptoalg.ECCMultiplyResult {
	binary := k.Text(2)
	rec := trace.NewRecorder[trace.Step](2 + 2*len(binary))
	rec.Record(trace.Step{
		Label:       "Start",
		Description: fmt.Sprintf("Computing %s * P starting from P = %s and the accumulator O.", k, p),
		Operands:    []trace.Operand{trace.Op("P", p)},
	})
	rec.Record(trace.Step{
		Label:       "Binary expansion",
		Description: fmt.Sprintf("k = %s in binary is %s", k, binary),
		Result:      binary,
	})

	acc := cryptoalg.InfinityPoint()
	base := p.Clone()
	for i := 0; i < len(binary); i++ {
		if k.Bit(i) == 1 {
			next, desc, formula := pointAdd(curve, acc, base)
			rec.Record(trace.Step{
				Label:       fmt.Sprintf("Bit %d is 1: add", i),
				Description: fmt.Sprintf("R = R + %s. %s -> %s", base, desc, next),
				Operands:    []trace.Operand{trace.Op("R", acc), trace.Op("base", base)},
				Formula:     formula,
				Result:      next,
			})
			acc = next
		} else {
			rec.Record(trace.Step{
				Label:       fmt.Sprintf("Bit %d is 0: skip", i),
				Description: fmt.Sprintf("R stays %s", acc),
				Operands:    []trace.Operand{trace.Op("R", acc), trace.Op("base", base)},
				Result:      acc,
			})
		}

		if i < len(binary)-1 {
			next, desc, formula := pointAdd(curve, base, base)
			rec.Record(trace.Step{
				Label:       fmt.Sprintf("Double base (2^%d -> 2^%d)", i, i+1),
				Description: fmt.Sprintf("base = %s + %s. %s -> %s", base, base, desc, next),
				Operands:    []trace.Operand{trace.Op("base", base)},
				Formula:     formula,
				Result:      next,
			})
			base = next
		}
	}

	return &cryptoalg.ECCMultiplyResult{
		Curve:  curve,
		Scalar: k,
		Binary: binary,
		Point:  p,
		Result: acc,
		Steps:  rec.Steps(),
	}
}

// pointAdd returns P + Q with a description of the case taken and the slope formula.
func pointAdd(curve cryptoalg.Curve, p, q cryptoalg.ECPoint) (cryptoalg.ECPoint, string, string) {
	if p.Infinity {
		return q.Clone(), "P is the point at infinity, the sum is Q", ""
	}
	if q.Infinity {
		return p.Clone(), "Q is the point at infinity, the sum is P", ""
	}

	var lambda *big.Int
	var desc, formula string
	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) != 0 {
			return cryptoalg.InfinityPoint(), "P and Q are opposite points, the sum is O", ""
		}
		if p.Y.Sign() == 0 {
			return cryptoalg.InfinityPoint(), "Vertical tangent (y = 0), the double is O", ""
		}
		num := mod(add(mul(big.NewInt(3), mul(p.X, p.X)), curve.A), curve.P)
		den := mod(mul(two, p.Y), curve.P)
		inv := modInverse(den, curve.P)
		lambda = mod(mul(num, inv), curve.P)
		desc = "Doubling"
		formula = fmt.Sprintf("lambda = (3x^2 + a) * (2y)^-1 mod p = (%s * %s) mod %s = %s", num, inv, curve.P, lambda)
	} else {
		num := mod(sub(q.Y, p.Y), curve.P)
		den := mod(sub(q.X, p.X), curve.P)
		inv := modInverse(den, curve.P)
		lambda = mod(mul(num, inv), curve.P)
		desc = "Addition"
		formula = fmt.Sprintf("lambda = (y2 - y1) * (x2 - x1)^-1 mod p = (%s * %s) mod %s = %s", num, inv, curve.P, lambda)
	}

	x3 := mod(sub(sub(mul(lambda, lambda), p.X), q.X), curve.P)
	y3 := mod(sub(mul(lambda, sub(p.X, x3)), p.Y), curve.P)
	formula += fmt.Sprintf("; x3 = lambda^2 - x1 - x2 = %s; y3 = lambda(x1 - x3) - y1 = %s", x3, y3)
	return cryptoalg.ECPoint{X: x3, Y: y3}, desc, formula
}

// curveRHS evaluates x^3 + ax + b mod p.
func curveRHS(curve cryptoalg.Curve, x *big.Int) *big.Int {
	x3 := new(big.Int).Exp(x, big.NewInt(3), nil)
	return mod(add(add(x3, mul(curve.A, x)), curve.B), curve.P)
}

func isOnCurve(curve cryptoalg.Curve, p cryptoalg.ECPoint) bool {
	if p.Infinity {
		return true
	}
	if p.X == nil || p.Y == nil {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(curve.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(curve.P) >= 0 {
		return false
	}
	return mod(mul(p.Y, p.Y), curve.P).Cmp(curveRHS(curve, p.X)) == 0
}

func requireOnCurve(curve cryptoalg.Curve, p cryptoalg.ECPoint, name string) error {
	if !isOnCurve(curve, p) {
		return cryptoalg.NewValidationError("%s = %s is not a point of the curve", name, p)
	}
	return nil
}

// validateCurve requires a prime field, a non-singular curve and an affine base point on it.
func validateCurve(curve cryptoalg.Curve) error {
	if err := requirePrime("p", curve.P, 3); err != nil {
		return err
	}
	if curve.A == nil || curve.B == nil {
		return cryptoalg.NewValidationError("Missing curve coefficients a and b")
	}
	disc := add(mul(big.NewInt(4), new(big.Int).Exp(curve.A, big.NewInt(3), nil)), mul(big.NewInt(27), mul(curve.B, curve.B)))
	if mod(disc, curve.P).Sign() == 0 {
		return cryptoalg.NewValidationError("the curve is singular (4a^3 + 27b^2 = 0 mod p)")
	}
	if curve.G.Infinity || !isOnCurve(curve, curve.G) {
		return cryptoalg.NewValidationError("G = %s is not a point of the curve", curve.G)
	}
	return nil
}
