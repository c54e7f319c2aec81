package cryptography

import (
	"math/big"
	"unicode"
	"unicode/utf8"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// isPrime is exact for the demonstration-size values the engine works with.
func isPrime(n *big.Int) bool {
	return n.Sign() > 0 && n.ProbablyPrime(20)
}

func gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	return x
}

// extendedGCD returns g, s, t with a*s + b*t = g = gcd(a, b).
func extendedGCD(a, b *big.Int) (*big.Int, *big.Int, *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}
	return oldR, oldS, oldT
}

// modInverse returns a^-1 mod m, or nil when gcd(a, m) != 1.
func modInverse(a, m *big.Int) *big.Int {
	g, s, _ := extendedGCD(new(big.Int).Mod(a, m), m)
	if g.Cmp(one) != 0 {
		return nil
	}
	return s.Mod(s, m)
}

func modExp(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// mod returns the non-negative residue of a mod m.
func mod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}

func mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func sub(a, b *big.Int) *big.Int {
	return new(big.Int).Sub(a, b)
}

// modInt is the int counterpart of mod for the letter ciphers.
func modInt(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func gcdInt(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func modInverseInt(a, m int) (int, bool) {
	inv := modInverse(big.NewInt(int64(a)), big.NewInt(int64(m)))
	if inv == nil {
		return 0, false
	}
	return int(inv.Int64()), true
}

// requireAtLeast rejects a missing value or one below min.
func requireAtLeast(name string, v *big.Int, min int64) error {
	if v == nil {
		return cryptoalg.NewValidationError("Missing %s", name)
	}
	if v.Cmp(big.NewInt(min)) < 0 {
		return cryptoalg.NewValidationError("%s must be at least %d", name, min)
	}
	return nil
}

// requireBetween rejects a missing value or one outside [lo, hi].
func requireBetween(name string, v, lo, hi *big.Int) error {
	if v == nil {
		return cryptoalg.NewValidationError("Missing %s", name)
	}
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return cryptoalg.NewValidationError("%s must be in [%s, %s]", name, lo, hi)
	}
	return nil
}

// requirePrime rejects a missing, non-prime or too small modulus.
func requirePrime(name string, v *big.Int, min int64) error {
	if err := requireAtLeast(name, v, min); err != nil {
		return err
	}
	if !isPrime(v) {
		return cryptoalg.NewValidationError("%s = %s is not prime", name, v)
	}
	return nil
}

// decodeCodePoint renders m as a character, or "?" when m is not a printable code point.
func decodeCodePoint(m *big.Int) string {
	if !m.IsInt64() || m.Int64() > unicode.MaxRune {
		return "?"
	}
	r := rune(m.Int64())
	if !utf8.ValidRune(r) || !(unicode.IsPrint(r) || unicode.IsSpace(r)) {
		return "?"
	}
	return string(r)
}
