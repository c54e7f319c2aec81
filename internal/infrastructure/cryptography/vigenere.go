package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

func (p *classicalProcessor) VigenereEncrypt(text, key string) (*cryptoalg.VigenereResult, error) {
	return p.vigenere(text, key, cryptoalg.ModeEncrypt)
}

func (p *classicalProcessor) VigenereDecrypt(text, key string) (*cryptoalg.VigenereResult, error) {
	return p.vigenere(text, key, cryptoalg.ModeDecrypt)
}

func (p *classicalProcessor) vigenere(text, key, mode string) (*cryptoalg.VigenereResult, error) {
	clean, cleanKey, err := letterInputs(text, key)
	if err != nil {
		return nil, err
	}

	fullKey := fitKey([]byte(cleanKey), len(clean))
	out, steps := addLetterKey(clean, fullKey, mode)

	p.traced("Vigenere", mode, len(steps))
	return &cryptoalg.VigenereResult{
		Mode:    mode,
		Text:    clean,
		Key:     cleanKey,
		FullKey: string(fullKey),
		Result:  out,
		Steps:   steps,
	}, nil
}

func (p *classicalProcessor) VernamEncrypt(text, key string) (*cryptoalg.VernamResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	clean := cleanLetters(text)
	if clean == "" {
		return nil, cryptoalg.NewValidationError("No valid letters in text")
	}

	generated := key == ""
	var cleanKey string
	if generated {
		k, err := p.randomLetters(len(clean))
		if err != nil {
			return nil, err
		}
		cleanKey = k
	} else if cleanKey = cleanLetters(key); cleanKey == "" {
		return nil, cryptoalg.NewValidationError("No valid letters in key")
	}

	return p.vernam(clean, cleanKey, generated, cryptoalg.ModeEncrypt), nil
}

func (p *classicalProcessor) VernamDecrypt(text, key string) (*cryptoalg.VernamResult, error) {
	clean, cleanKey, err := letterInputs(text, key)
	if err != nil {
		return nil, err
	}
	return p.vernam(clean, cleanKey, false, cryptoalg.ModeDecrypt), nil
}

func (p *classicalProcessor) vernam(clean, cleanKey string, generated bool, mode string) *cryptoalg.VernamResult {
	keyUsed := fitKey([]byte(cleanKey), len(clean))
	out, steps := addLetterKey(clean, keyUsed, mode)

	p.traced("Vernam", mode, len(steps))
	return &cryptoalg.VernamResult{
		Mode:         mode,
		Text:         clean,
		KeyUsed:      string(keyUsed),
		GeneratedKey: generated,
		Result:       out,
		Steps:        steps,
	}
}

func (p *classicalProcessor) randomLetters(n int) (string, error) {
	out := make([]byte, n)
	upper := big.NewInt(25)
	for i := range out {
		v, err := randomInRange(p.random, zero, upper)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[v.Int64()]
	}
	return string(out), nil
}

// letterInputs validates and cleans a text and a mandatory letter key.
func letterInputs(text, key string) (string, string, error) {
	if text == "" {
		return "", "", cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if key == "" {
		return "", "", cryptoalg.NewValidationError(cryptoalg.MsgMissingKey)
	}
	clean := cleanLetters(text)
	if clean == "" {
		return "", "", cryptoalg.NewValidationError("No valid letters in text")
	}
	cleanKey := cleanLetters(key)
	if cleanKey == "" {
		return "", "", cryptoalg.NewValidationError("No valid letters in key")
	}
	return clean, cleanKey, nil
}

// addLetterKey adds (or subtracts, when decrypting) key letter i to text letter i mod 26.
// key must already be as long as text.
func addLetterKey(text string, key []byte, mode string) (string, []cryptoalg.LetterStep) {
	out := make([]byte, len(text))
	rec := trace.NewRecorder[cryptoalg.LetterStep](len(text))

	for i := 0; i < len(text); i++ {
		in := letterIndex(text[i])
		k := letterIndex(key[i])
		sum, op := in+k, "+"
		if mode == cryptoalg.ModeDecrypt {
			sum, op = in-k, "-"
		}
		res := modInt(sum, 26)
		out[i] = alphabet[res]

		rec.Record(cryptoalg.LetterStep{
			Position:    i,
			Input:       string(text[i]),
			InputIndex:  in,
			Key:         string(key[i]),
			KeyIndex:    k,
			Sum:         sum,
			Formula:     fmt.Sprintf("(%d %s %d) mod 26 = %d", in, op, k, res),
			Output:      letterAt(res),
			OutputIndex: res,
		})
	}
	return string(out), rec.Steps()
}
