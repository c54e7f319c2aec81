package cryptography

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

const (
	aesBlockSize = 16
	aesRounds    = 10
	aesKeyWords  = 4 * (aesRounds + 1)
)

type aesWord [4]byte

func (w aesWord) hex() string {
	return hex.EncodeToString(w[:])
}

func (w aesWord) xor(o aesWord) aesWord {
	return aesWord{w[0] ^ o[0], w[1] ^ o[1], w[2] ^ o[2], w[3] ^ o[3]}
}

// blockCipherProcessor implements cryptoalg.BlockCipherProcessor
type blockCipherProcessor struct {
	logger logger.Logger
}

// NewBlockCipherProcessor creates the AES and DES tracer
func NewBlockCipherProcessor(logger logger.Logger) (cryptoalg.BlockCipherProcessor, error) {
	return &blockCipherProcessor{logger: logger}, nil
}

// AESEncrypt encrypts text under AES-128, one independent block at a time.
func (p *blockCipherProcessor) AESEncrypt(text, key string) (*cryptoalg.AESResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}

	k := make([]byte, aesBlockSize)
	copy(k, key)
	words, schedule := aesExpandKey(k)

	padded := pkcs7Pad([]byte(text), aesBlockSize)
	blocks := make([]cryptoalg.AESBlock, 0, len(padded)/aesBlockSize)
	var ciphertext bytes.Buffer

	for i := 0; i < len(padded); i += aesBlockSize {
		block := aesEncryptBlock(padded[i:i+aesBlockSize], words)
		block.Index = i / aesBlockSize
		ciphertext.WriteString(block.OutputHex)
		blocks = append(blocks, block)
	}

	p.logger.Info(fmt.Sprintf("AES encrypt traced %d block(s)", len(blocks)))
	return &cryptoalg.AESResult{
		Text:          text,
		KeyHex:        hex.EncodeToString(k),
		PaddedHex:     hex.EncodeToString(padded),
		KeySchedule:   schedule,
		Blocks:        blocks,
		CiphertextHex: ciphertext.String(),
	}, nil
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

// aesExpandKey derives the 44 schedule words from a 16-byte key.
func aesExpandKey(key []byte) ([aesKeyWords]aesWord, []cryptoalg.AESKeyWord) {
	var w [aesKeyWords]aesWord
	schedule := make([]cryptoalg.AESKeyWord, 0, aesKeyWords)

	for i := 0; i < 4; i++ {
		copy(w[i][:], key[4*i:4*i+4])
		schedule = append(schedule, cryptoalg.AESKeyWord{
			Index:   i,
			Word:    w[i].hex(),
			Formula: fmt.Sprintf("w[%d] = key[%d..%d]", i, 4*i, 4*i+3),
		})
	}

	for i := 4; i < aesKeyWords; i++ {
		entry := cryptoalg.AESKeyWord{Index: i, Previous: w[i-1].hex()}
		temp := w[i-1]
		if i%4 == 0 {
			rot := aesWord{temp[1], temp[2], temp[3], temp[0]}
			sub := aesWord{aesSBox[rot[0]], aesSBox[rot[1]], aesSBox[rot[2]], aesSBox[rot[3]]}
			rcon := aesWord{aesRcon[i/4], 0, 0, 0}
			temp = sub.xor(rcon)

			entry.AfterRot = rot.hex()
			entry.AfterSub = sub.hex()
			entry.Rcon = rcon.hex()
			entry.Formula = fmt.Sprintf("w[%d] = w[%d] XOR SubWord(RotWord(w[%d])) XOR Rcon[%d]", i, i-4, i-1, i/4)
		} else {
			entry.Formula = fmt.Sprintf("w[%d] = w[%d] XOR w[%d]", i, i-4, i-1)
		}
		w[i] = w[i-4].xor(temp)
		entry.Word = w[i].hex()
		schedule = append(schedule, entry)
	}
	return w, schedule
}

func aesRoundKey(w [aesKeyWords]aesWord, round int) cryptoalg.AESState {
	var k cryptoalg.AESState
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			k[r][c] = w[4*round+c][r]
		}
	}
	return k
}

func aesEncryptBlock(in []byte, w [aesKeyWords]aesWord) cryptoalg.AESBlock {
	var state cryptoalg.AESState
	for i, b := range in {
		state[i%4][i/4] = b
	}
	initial := state
	rec := trace.NewRecorder[cryptoalg.AESStep](1 + 4*(aesRounds-1) + 3)

	addRoundKey := func(round int) {
		k := aesRoundKey(w, round)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				state[r][c] ^= k[r][c]
			}
		}
		rec.Record(cryptoalg.AESStep{Round: round, Operation: cryptoalg.AESAddRoundKey, State: state, RoundKey: &k})
	}
	subBytes := func(round int) {
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				state[r][c] = aesSBox[state[r][c]]
			}
		}
		rec.Record(cryptoalg.AESStep{Round: round, Operation: cryptoalg.AESSubBytes, State: state})
	}
	shiftRows := func(round int) {
		for r := 1; r < 4; r++ {
			row := state[r]
			for c := 0; c < 4; c++ {
				state[r][c] = row[(c+r)%4]
			}
		}
		rec.Record(cryptoalg.AESStep{Round: round, Operation: cryptoalg.AESShiftRows, State: state})
	}
	mixColumns := func(round int) {
		for c := 0; c < 4; c++ {
			a0, a1, a2, a3 := state[0][c], state[1][c], state[2][c], state[3][c]
			state[0][c] = gfMul(a0, 2) ^ gfMul(a1, 3) ^ a2 ^ a3
			state[1][c] = a0 ^ gfMul(a1, 2) ^ gfMul(a2, 3) ^ a3
			state[2][c] = a0 ^ a1 ^ gfMul(a2, 2) ^ gfMul(a3, 3)
			state[3][c] = gfMul(a0, 3) ^ a1 ^ a2 ^ gfMul(a3, 2)
		}
		rec.Record(cryptoalg.AESStep{Round: round, Operation: cryptoalg.AESMixColumns, State: state})
	}

	addRoundKey(0)
	for round := 1; round < aesRounds; round++ {
		subBytes(round)
		shiftRows(round)
		mixColumns(round)
		addRoundKey(round)
	}
	subBytes(aesRounds)
	shiftRows(aesRounds)
	addRoundKey(aesRounds)

	out := make([]byte, aesBlockSize)
	for i := range out {
		out[i] = state[i%4][i/4]
	}

	return cryptoalg.AESBlock{
		InputHex:     hex.EncodeToString(in),
		InitialState: initial,
		OutputHex:    hex.EncodeToString(out),
		Steps:        rec.Steps(),
	}
}
