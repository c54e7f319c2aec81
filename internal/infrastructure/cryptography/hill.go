package cryptography

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

type hillMatrix [3][3]int

func (m hillMatrix) determinant() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// inverse returns the adjugate scaled by detInv, all mod 26.
func (m hillMatrix) inverse(detInv int) hillMatrix {
	var inv hillMatrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			r0, r1 := others(r)
			c0, c1 := others(c)
			minor := m[r0][c0]*m[r1][c1] - m[r0][c1]*m[r1][c0]
			cofactor := minor
			if (r+c)%2 == 1 {
				cofactor = -minor
			}
			// adjugate is the transposed cofactor matrix
			inv[c][r] = modInt(cofactor*detInv, 26)
		}
	}
	return inv
}

func others(i int) (int, int) {
	switch i {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

type hillKey struct {
	chars   string
	matrix  hillMatrix
	det     int
	inverse hillMatrix
}

func newHillKey(key string) (hillKey, error) {
	chars := cleanLetters(key)
	if len(chars) != 9 {
		return hillKey{}, cryptoalg.NewValidationError("Key must contain exactly 9 valid letters for a 3x3 matrix")
	}
	var m hillMatrix
	for i := 0; i < 9; i++ {
		m[i/3][i%3] = letterIndex(chars[i])
	}
	det := modInt(m.determinant(), 26)
	detInv, ok := modInverseInt(det, 26)
	if !ok {
		return hillKey{}, cryptoalg.NewValidationError("Key Not Invertible! Determinant %d is not coprime to 26.", det)
	}
	return hillKey{chars: chars, matrix: m, det: det, inverse: m.inverse(detInv)}, nil
}

func (p *classicalProcessor) HillEncrypt(text, key string) (*cryptoalg.HillResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	k, err := newHillKey(key)
	if err != nil {
		return nil, err
	}
	clean := cleanLetters(text)
	clean += strings.Repeat("X", modInt(-len(clean), 3))
	return p.hill(clean, k, k.matrix, cryptoalg.ModeEncrypt), nil
}

func (p *classicalProcessor) HillDecrypt(text, key string) (*cryptoalg.HillResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	k, err := newHillKey(key)
	if err != nil {
		return nil, err
	}
	clean := cleanLetters(text)
	if len(clean)%3 != 0 {
		return nil, cryptoalg.NewValidationError("Ciphertext length must be a multiple of 3")
	}
	return p.hill(clean, k, k.inverse, cryptoalg.ModeDecrypt), nil
}

func (p *classicalProcessor) hill(text string, k hillKey, m hillMatrix, mode string) *cryptoalg.HillResult {
	out := make([]byte, 0, len(text))
	rec := trace.NewRecorder[cryptoalg.HillStep](len(text) / 3)

	for i := 0; i < len(text); i += 3 {
		chars := []string{text[i : i+1], text[i+1 : i+2], text[i+2 : i+3]}
		vals := []int{letterIndex(text[i]), letterIndex(text[i+1]), letterIndex(text[i+2])}
		calcs := make([]cryptoalg.HillRowCalc, 3)

		for r := 0; r < 3; r++ {
			sum := m[r][0]*vals[0] + m[r][1]*vals[1] + m[r][2]*vals[2]
			res := modInt(sum, 26)
			out = append(out, alphabet[res])
			calcs[r] = cryptoalg.HillRowCalc{
				Row:     r,
				Formula: fmt.Sprintf("(%d*%d) + (%d*%d) + (%d*%d)", m[r][0], vals[0], m[r][1], vals[1], m[r][2], vals[2]),
				Sum:     sum,
				Mod:     res,
				Char:    letterAt(res),
			}
		}

		rec.Record(cryptoalg.HillStep{
			Chunk:       i / 3,
			InputChars:  chars,
			InputValues: vals,
			Calcs:       calcs,
		})
	}

	p.traced("Hill", mode, rec.Len())
	return &cryptoalg.HillResult{
		Mode:          mode,
		Text:          text,
		KeyChars:      k.chars,
		KeyMatrix:     k.matrix,
		Determinant:   k.det,
		InverseMatrix: k.inverse,
		Result:        string(out),
		Steps:         rec.Steps(),
	}
}
