package cryptography

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

// playfairAlphabet is the 25-letter alphabet with I and J merged
const playfairAlphabet = "ABCDEFGHIKLMNOPQRSTUVWXYZ"

const playfairFiller = 'X'

type playfairSquare struct {
	keyString string
	matrix    [5][5]string
	coords    map[byte]cryptoalg.GridCoord
}

func newPlayfairSquare(key string) playfairSquare {
	keyString := keywordAlphabet(strings.ReplaceAll(cleanLetters(key), "J", "I"), playfairAlphabet)
	sq := playfairSquare{keyString: keyString, coords: make(map[byte]cryptoalg.GridCoord, 25)}
	for i := 0; i < 25; i++ {
		r, c := i/5, i%5
		sq.matrix[r][c] = string(keyString[i])
		sq.coords[keyString[i]] = cryptoalg.GridCoord{Row: r, Col: c}
	}
	return sq
}

func (sq playfairSquare) at(c cryptoalg.GridCoord) byte {
	return sq.matrix[c.Row][c.Col][0]
}

// playfairDigraphs splits text into pairs, inserting the filler between
// repeated letters and after a lone trailing letter.
func playfairDigraphs(text string) ([]string, []cryptoalg.PlayfairNote) {
	digraphs := make([]string, 0, len(text)/2+1)
	notes := []cryptoalg.PlayfairNote{}

	for i := 0; i < len(text); {
		a := text[i]
		switch {
		case i+1 >= len(text):
			pair := string([]byte{a, playfairFiller})
			digraphs = append(digraphs, pair)
			notes = append(notes, cryptoalg.PlayfairNote{
				Pair: pair,
				Note: fmt.Sprintf("Padding: '%c' is alone at the end, appended '%c'", a, playfairFiller),
			})
			i++
		case text[i+1] == a:
			pair := string([]byte{a, playfairFiller})
			digraphs = append(digraphs, pair)
			notes = append(notes, cryptoalg.PlayfairNote{
				Pair: pair,
				Note: fmt.Sprintf("Double '%c' found, inserted '%c' => '%s'", a, playfairFiller, pair),
			})
			i++
		default:
			digraphs = append(digraphs, text[i:i+2])
			i += 2
		}
	}
	return digraphs, notes
}

func (p *classicalProcessor) PlayfairEncrypt(text, key string) (*cryptoalg.PlayfairResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	clean := strings.ReplaceAll(cleanLetters(text), "J", "I")
	digraphs, notes := playfairDigraphs(clean)
	return p.playfair(clean, newPlayfairSquare(key), digraphs, notes, cryptoalg.ModeEncrypt), nil
}

func (p *classicalProcessor) PlayfairDecrypt(text, key string) (*cryptoalg.PlayfairResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	clean := strings.ReplaceAll(cleanLetters(text), "J", "I")
	if len(clean)%2 != 0 {
		return nil, cryptoalg.NewValidationError("Ciphertext must contain an even number of letters")
	}
	digraphs := make([]string, 0, len(clean)/2)
	for i := 0; i < len(clean); i += 2 {
		digraphs = append(digraphs, clean[i:i+2])
	}
	return p.playfair(clean, newPlayfairSquare(key), digraphs, nil, cryptoalg.ModeDecrypt), nil
}

func (p *classicalProcessor) playfair(clean string, sq playfairSquare, digraphs []string, notes []cryptoalg.PlayfairNote, mode string) *cryptoalg.PlayfairResult {
	// +1 moves right/down when encrypting, -1 moves left/up when decrypting
	dir, rowWord, colWord := 1, "RIGHT", "BELOW"
	if mode == cryptoalg.ModeDecrypt {
		dir, rowWord, colWord = -1, "LEFT", "ABOVE"
	}

	var out strings.Builder
	rec := trace.NewRecorder[cryptoalg.PlayfairStep](len(digraphs))

	for _, pair := range digraphs {
		in := [2]cryptoalg.GridCoord{sq.coords[pair[0]], sq.coords[pair[1]]}
		var res [2]cryptoalg.GridCoord
		var rule, desc string

		switch {
		case in[0].Row == in[1].Row:
			rule = cryptoalg.PlayfairSameRow
			desc = fmt.Sprintf("The letters share a row: take the letter immediately to the %s (wrap-around).", rowWord)
			for i := range in {
				res[i] = cryptoalg.GridCoord{Row: in[i].Row, Col: modInt(in[i].Col+dir, 5)}
			}
		case in[0].Col == in[1].Col:
			rule = cryptoalg.PlayfairSameColumn
			desc = fmt.Sprintf("The letters share a column: take the letter immediately %s (wrap-around).", colWord)
			for i := range in {
				res[i] = cryptoalg.GridCoord{Row: modInt(in[i].Row+dir, 5), Col: in[i].Col}
			}
		default:
			rule = cryptoalg.PlayfairRectangle
			desc = "The letters form a rectangle: take the opposite corner in the SAME ROW."
			res[0] = cryptoalg.GridCoord{Row: in[0].Row, Col: in[1].Col}
			res[1] = cryptoalg.GridCoord{Row: in[1].Row, Col: in[0].Col}
		}

		result := string([]byte{sq.at(res[0]), sq.at(res[1])})
		out.WriteString(result)
		rec.Record(cryptoalg.PlayfairStep{
			Pair:            pair,
			Rule:            rule,
			RuleDescription: desc,
			CoordsIn:        in,
			CoordsOut:       res,
			Result:          result,
		})
	}

	if notes == nil {
		notes = []cryptoalg.PlayfairNote{}
	}

	p.traced("Playfair", mode, rec.Len())
	return &cryptoalg.PlayfairResult{
		Mode:          mode,
		Text:          clean,
		KeyString:     sq.keyString,
		Matrix:        sq.matrix,
		Digraphs:      digraphs,
		Preprocessing: notes,
		Result:        out.String(),
		Steps:         rec.Steps(),
	}
}
