package cryptography

import (
	"fmt"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

func (p *classicalProcessor) CaesarEncrypt(text string, shift int) (*cryptoalg.CaesarResult, error) {
	return p.caesar(text, shift, cryptoalg.ModeEncrypt)
}

func (p *classicalProcessor) CaesarDecrypt(text string, shift int) (*cryptoalg.CaesarResult, error) {
	return p.caesar(text, shift, cryptoalg.ModeDecrypt)
}

func (p *classicalProcessor) caesar(text string, shift int, mode string) (*cryptoalg.CaesarResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}

	s := modInt(shift, 26)
	effective := s
	op := "+"
	if mode == cryptoalg.ModeDecrypt {
		effective = modInt(-s, 26)
		op = "-"
	}
	cipherAlphabet := alphabet[effective:] + alphabet[:effective]

	clean := cleanLetters(text)
	out := make([]byte, len(clean))
	rec := trace.NewRecorder[cryptoalg.LetterStep](len(clean))

	for i := 0; i < len(clean); i++ {
		in := letterIndex(clean[i])
		sum := in + s
		if mode == cryptoalg.ModeDecrypt {
			sum = in - s
		}
		res := modInt(sum, 26)
		out[i] = alphabet[res]

		rec.Record(cryptoalg.LetterStep{
			Position:    i,
			Input:       string(clean[i]),
			InputIndex:  in,
			KeyIndex:    s,
			Sum:         sum,
			Formula:     fmt.Sprintf("(%d %s %d) mod 26 = %d", in, op, s, res),
			Output:      string(out[i]),
			OutputIndex: res,
		})
	}

	p.traced("Caesar", mode, rec.Len())
	return &cryptoalg.CaesarResult{
		Mode:             mode,
		Text:             clean,
		Shift:            s,
		StandardAlphabet: alphabet,
		CipherAlphabet:   cipherAlphabet,
		Result:           string(out),
		Steps:            rec.Steps(),
	}, nil
}

func (p *classicalProcessor) MonoalphabeticEncrypt(text, keyword string) (*cryptoalg.MonoalphabeticResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}

	cipherAlphabet := keywordAlphabet(cleanLetters(keyword), alphabet)
	clean := cleanLetters(text)
	out := make([]byte, len(clean))
	rec := trace.NewRecorder[cryptoalg.LetterStep](len(clean))

	for i := 0; i < len(clean); i++ {
		in := letterIndex(clean[i])
		out[i] = cipherAlphabet[in]
		rec.Record(cryptoalg.LetterStep{
			Position:    i,
			Input:       string(clean[i]),
			InputIndex:  in,
			Key:         string(out[i]),
			KeyIndex:    in,
			Formula:     fmt.Sprintf("cipher_alphabet[%d] = %c", in, out[i]),
			Output:      string(out[i]),
			OutputIndex: letterIndex(out[i]),
		})
	}

	p.traced("Monoalphabetic", cryptoalg.ModeEncrypt, rec.Len())
	return &cryptoalg.MonoalphabeticResult{
		Text:             clean,
		Keyword:          cleanLetters(keyword),
		StandardAlphabet: alphabet,
		CipherAlphabet:   cipherAlphabet,
		Result:           string(out),
		Steps:            rec.Steps(),
	}, nil
}

// keywordAlphabet lists the distinct letters of keyword followed by the
// remaining letters of base in order.
func keywordAlphabet(keyword, base string) string {
	seen := make(map[byte]bool, len(base))
	out := make([]byte, 0, len(base))
	for i := 0; i < len(keyword); i++ {
		c := keyword[i]
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for i := 0; i < len(base); i++ {
		if !seen[base[i]] {
			out = append(out, base[i])
		}
	}
	return string(out)
}
