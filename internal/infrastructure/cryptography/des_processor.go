package cryptography

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

const desHexDigits = 16

// permute picks bits out of the inWidth-bit value in, in table order.
func permute(in uint64, inWidth int, table []byte) uint64 {
	var out uint64
	for _, pos := range table {
		out = out<<1 | (in>>(inWidth-int(pos)))&1
	}
	return out
}

func rotl28(v uint64, n int) uint64 {
	const mask = 1<<28 - 1
	return (v<<n | v>>(28-n)) & mask
}

func bits(v uint64, width int) string {
	return fmt.Sprintf("%0*b", width, v)
}

// normalizeDESHex strips whitespace, upper-cases and pads with 0 or truncates to 16 digits.
func normalizeDESHex(s, field string) (string, uint64, error) {
	h := strings.ToUpper(stripSpaces(s))
	if h == "" {
		if field == "key" {
			return "", 0, cryptoalg.NewValidationError(cryptoalg.MsgMissingKey)
		}
		return "", 0, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if len(h) < desHexDigits {
		h += strings.Repeat("0", desHexDigits-len(h))
	}
	h = h[:desHexDigits]
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return "", 0, cryptoalg.NewValidationError("DES %s must be hexadecimal", field)
	}
	return h, v, nil
}

// DESEncrypt encrypts a single 64-bit block through 16 Feistel rounds.
func (p *blockCipherProcessor) DESEncrypt(plaintextHex, keyHex string) (*cryptoalg.DESResult, error) {
	ptHex, pt, err := normalizeDESHex(plaintextHex, "plaintext")
	if err != nil {
		return nil, err
	}
	kHex, key, err := normalizeDESHex(keyHex, "key")
	if err != nil {
		return nil, err
	}

	pc1 := permute(key, 64, desPC1[:])
	roundKeys, schedule := desKeySchedule(pc1)

	ip := permute(pt, 64, desInitialPermutation[:])
	l, r := ip>>32, ip&0xffffffff
	l0, r0 := l, r

	rec := trace.NewRecorder[cryptoalg.DESRound](16)
	for i := 0; i < 16; i++ {
		expanded := permute(r, 32, desExpansion[:])
		xored := expanded ^ roundKeys[i]

		var sOut uint64
		lookups := make([]cryptoalg.DESSBoxLookup, 8)
		for box := 0; box < 8; box++ {
			chunk := (xored >> (42 - 6*box)) & 0x3f
			row := int((chunk>>4)&0x2 | chunk&0x1)
			col := int((chunk >> 1) & 0xf)
			val := desSBoxes[box][row][col]
			sOut = sOut<<4 | uint64(val)
			lookups[box] = cryptoalg.DESSBoxLookup{
				Box:        box + 1,
				Input:      bits(chunk, 6),
				Row:        row,
				Col:        col,
				Output:     int(val),
				OutputBits: bits(uint64(val), 4),
			}
		}
		permuted := permute(sOut, 32, desPermutation[:])
		newR := l ^ permuted

		rec.Record(cryptoalg.DESRound{
			Round:      i + 1,
			LBefore:    bits(l, 32),
			RBefore:    bits(r, 32),
			Expanded:   bits(expanded, 48),
			RoundKey:   bits(roundKeys[i], 48),
			Xored:      bits(xored, 48),
			SBoxes:     lookups,
			SBoxOutput: bits(sOut, 32),
			Permuted:   bits(permuted, 32),
			LAfter:     bits(r, 32),
			RAfter:     bits(newR, 32),
		})
		l, r = r, newR
	}

	// the halves are swapped once more before the final permutation
	preOutput := r<<32 | l
	ct := permute(preOutput, 64, desFinalPermutation[:])

	p.logger.Info(fmt.Sprintf("DES encrypt traced %d rounds", rec.Len()))
	return &cryptoalg.DESResult{
		PlaintextHex:       ptHex,
		KeyHex:             kHex,
		PlaintextBits:      bits(pt, 64),
		KeyPC1:             bits(pc1, 56),
		KeySchedule:        schedule,
		InitialPermutation: bits(ip, 64),
		L0:                 bits(l0, 32),
		R0:                 bits(r0, 32),
		Rounds:             rec.Steps(),
		PreOutput:          bits(preOutput, 64),
		CiphertextBits:     bits(ct, 64),
		CiphertextHex:      fmt.Sprintf("%016X", ct),
	}, nil
}

// desKeySchedule derives the 16 round keys from the 56-bit PC-1 output.
func desKeySchedule(pc1 uint64) ([16]uint64, []cryptoalg.DESKeyRound) {
	var keys [16]uint64
	schedule := make([]cryptoalg.DESKeyRound, 0, 16)
	c, d := pc1>>28, pc1&(1<<28-1)

	for i := 0; i < 16; i++ {
		cBefore, dBefore := c, d
		c = rotl28(c, desShifts[i])
		d = rotl28(d, desShifts[i])
		keys[i] = permute(c<<28|d, 56, desPC2[:])

		schedule = append(schedule, cryptoalg.DESKeyRound{
			Round:   i + 1,
			Shift:   desShifts[i],
			CBefore: bits(cBefore, 28),
			DBefore: bits(dBefore, 28),
			CAfter:  bits(c, 28),
			DAfter:  bits(d, 28),
			KeyBits: bits(keys[i], 48),
			KeyHex:  fmt.Sprintf("%012X", keys[i]),
		})
	}
	return keys, schedule
}
