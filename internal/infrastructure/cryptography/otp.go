package cryptography

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

func (p *classicalProcessor) OTPEncrypt(text, key string) (*cryptoalg.OTPResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	input := []byte(text)

	generated := key == ""
	keyUsed := key
	var keyBytes []byte
	if generated {
		b, err := randomBytes(p.random, len(input))
		if err != nil {
			return nil, err
		}
		keyBytes = b
		keyUsed = hex.EncodeToString(b)
	} else {
		keyBytes = []byte(key)
	}

	res := p.otp(input, keyBytes, cryptoalg.ModeEncrypt)
	res.Text = text
	res.KeyUsed = keyUsed
	res.GeneratedKey = generated
	res.ResultText = printable(hexBytes(res.ResultHex))
	return res, nil
}

func (p *classicalProcessor) OTPDecrypt(cipherHex, keyHex string) (*cryptoalg.OTPResult, error) {
	if strings.TrimSpace(cipherHex) == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if strings.TrimSpace(keyHex) == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingKey)
	}
	input, err := hex.DecodeString(stripSpaces(cipherHex))
	if err != nil {
		return nil, cryptoalg.NewValidationError("Ciphertext must be a hex string")
	}
	keyBytes, err := hex.DecodeString(stripSpaces(keyHex))
	if err != nil || len(keyBytes) == 0 {
		return nil, cryptoalg.NewValidationError("Key must be a hex string")
	}

	res := p.otp(input, keyBytes, cryptoalg.ModeDecrypt)
	res.Text = strings.ToLower(stripSpaces(cipherHex))
	res.KeyUsed = strings.ToLower(stripSpaces(keyHex))

	plain := hexBytes(res.ResultHex)
	if utf8.Valid(plain) {
		res.ResultText = string(plain)
	} else {
		res.ResultText = printable(plain)
	}
	return res, nil
}

func (p *classicalProcessor) otp(input, key []byte, mode string) *cryptoalg.OTPResult {
	key = fitKey(key, len(input))
	out := make([]byte, len(input))
	rec := trace.NewRecorder[cryptoalg.OTPStep](len(input))

	for i := range input {
		out[i] = input[i] ^ key[i]
		rec.Record(cryptoalg.OTPStep{
			Position:   i,
			Char:       displayByte(input[i], "."),
			CharCode:   input[i],
			CharBin:    fmt.Sprintf("%08b", input[i]),
			KeyChar:    displayByte(key[i], "."),
			KeyCode:    key[i],
			KeyBin:     fmt.Sprintf("%08b", key[i]),
			ResultCode: out[i],
			ResultBin:  fmt.Sprintf("%08b", out[i]),
			ResultHex:  fmt.Sprintf("%02x", out[i]),
			ResultChar: displayByte(out[i], ""),
		})
	}

	p.traced("OTP", mode, rec.Len())
	return &cryptoalg.OTPResult{
		Mode:        mode,
		KeyBytesHex: hex.EncodeToString(key),
		ResultHex:   hex.EncodeToString(out),
		Steps:       rec.Steps(),
	}
}

// displayByte renders printable ASCII as itself and anything else as placeholder.
func displayByte(b byte, placeholder string) string {
	if b >= 32 && b <= 126 {
		return string(rune(b))
	}
	return placeholder
}

func printable(bs []byte) string {
	var sb strings.Builder
	for _, b := range bs {
		sb.WriteString(displayByte(b, ""))
	}
	return sb.String()
}

func hexBytes(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
