package cryptoalg

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

// ECPoint is an affine point of a short Weierstrass curve or the point at infinity.
type ECPoint struct {
	X        *big.Int
	Y        *big.Int
	Infinity bool
}

// InfinityPoint returns the identity element
func InfinityPoint() ECPoint {
	return ECPoint{Infinity: true}
}

// NewECPoint builds an affine point
func NewECPoint(x, y int64) ECPoint {
	return ECPoint{X: big.NewInt(x), Y: big.NewInt(y)}
}

// Equal compares two points by value
func (p ECPoint) Equal(o ECPoint) bool {
	if p.Infinity || o.Infinity {
		return p.Infinity == o.Infinity
	}
	return p.X.Cmp(o.X) == 0 && p.Y.Cmp(o.Y) == 0
}

// Clone returns a point that shares no big.Int with p
func (p ECPoint) Clone() ECPoint {
	if p.Infinity {
		return InfinityPoint()
	}
	return ECPoint{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

// CloneAny lets trace steps snapshot points stored as operands
func (p ECPoint) CloneAny() any {
	return p.Clone()
}

func (p ECPoint) String() string {
	if p.Infinity {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

type ecPointJSON struct {
	X        *big.Int `json:"x"`
	Y        *big.Int `json:"y"`
	Infinity bool     `json:"infinity"`
	Display  string   `json:"str"`
}

// MarshalJSON emits x and y as numbers (null at infinity) along with a display string
func (p ECPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(ecPointJSON{X: p.X, Y: p.Y, Infinity: p.Infinity, Display: p.String()})
}

// UnmarshalJSON accepts {"x":..,"y":..} or {"infinity":true}
func (p *ECPoint) UnmarshalJSON(data []byte) error {
	var raw ecPointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Infinity {
		*p = InfinityPoint()
		return nil
	}
	if raw.X == nil || raw.Y == nil {
		return fmt.Errorf("point requires x and y or infinity=true")
	}
	*p = ECPoint{X: raw.X, Y: raw.Y}
	return nil
}

// Curve is y^2 = x^3 + ax + b over GF(p) with base point G
type Curve struct {
	P *big.Int `json:"p"`
	A *big.Int `json:"a"`
	B *big.Int `json:"b"`
	G ECPoint  `json:"G"`
}

// DefaultCurve returns y^2 = x^3 + 2x + 2 mod 17 with G = (5, 1)
func DefaultCurve() Curve {
	return Curve{P: big.NewInt(17), A: big.NewInt(2), B: big.NewInt(2), G: NewECPoint(5, 1)}
}

// ECCProcessor traces point arithmetic on small curves.
type ECCProcessor interface {
	// Params returns the default curve
	Params() Curve

	// Points enumerates every affine point of the curve plus infinity.
	Points(curve Curve) (*ECCPointsResult, error)

	// Multiply computes k*P by double-and-add.
	Multiply(curve Curve, k *big.Int, p ECPoint) (*ECCMultiplyResult, error)

	// GenerateKeys picks d in [2, max] (or uses the supplied d) and returns d*G.
	GenerateKeys(curve Curve, d *big.Int) (*ECCKeyResult, error)

	// SharedSecret computes d*Q for a private scalar d and the counterparty's public point Q.
	SharedSecret(curve Curve, d *big.Int, q ECPoint) (*ECCMultiplyResult, error)
}

// ECCPointsResult lists the points of a curve, the point at infinity last
type ECCPointsResult struct {
	Curve  Curve     `json:"curve"`
	Points []ECPoint `json:"points"`
	Count  int       `json:"count"`
}

// ECCMultiplyResult is the double-and-add trace of a scalar multiplication
type ECCMultiplyResult struct {
	Curve  Curve        `json:"curve"`
	Scalar *big.Int     `json:"k"`
	Binary string       `json:"k_binary"`
	Point  ECPoint      `json:"point"`
	Result ECPoint      `json:"result"`
	Steps  []trace.Step `json:"steps"`
}

// ECCKeyResult is a key pair (d, Q = d*G) with the multiplication steps
type ECCKeyResult struct {
	Curve      Curve        `json:"curve"`
	PrivateKey *big.Int     `json:"private_key"`
	PublicKey  ECPoint      `json:"public_key"`
	Steps      []trace.Step `json:"steps"`
}
