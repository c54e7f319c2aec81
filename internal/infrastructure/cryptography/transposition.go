package cryptography

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

const transpositionFiller = "_"

func (p *classicalProcessor) RailFenceEncrypt(text string, rails int) (*cryptoalg.RailFenceResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if rails < 2 {
		return nil, cryptoalg.NewValidationError("Rails must be at least 2")
	}

	chars := []rune(text)
	// rails beyond the text length stay empty, the zigzag never reaches them
	rows := min(rails, len(chars))
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, len(chars))
	}

	coords := make([]cryptoalg.RailCell, 0, len(chars))
	row, down := 0, false
	for col, ch := range chars {
		if row == 0 || row == rows-1 {
			down = !down
		}
		grid[row][col] = string(ch)
		coords = append(coords, cryptoalg.RailCell{Row: row, Col: col, Char: string(ch)})
		if down {
			row++
		} else {
			row--
		}
	}

	rec := trace.NewRecorder[cryptoalg.GridStep](len(chars) + 1)
	rec.Record(cryptoalg.GridStep{
		Description: "Placed characters on rails in zigzag pattern",
		Grid:        grid,
	})

	var out strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < len(chars); c++ {
			ch := grid[r][c]
			if ch == "" {
				continue
			}
			out.WriteString(ch)
			rec.Record(cryptoalg.GridStep{
				Description:     fmt.Sprintf("Read character '%s' from Rail %d", ch, r+1),
				HighlightCell:   &cryptoalg.GridCoord{Row: r, Col: c},
				Chunk:           ch,
				CiphertextSoFar: out.String(),
			})
		}
	}

	p.traced("Rail fence", cryptoalg.ModeEncrypt, rec.Len())
	return &cryptoalg.RailFenceResult{
		Text:   text,
		Rails:  rails,
		Grid:   trace.CloneGrid(grid),
		Coords: coords,
		Result: out.String(),
		Steps:  rec.Steps(),
	}, nil
}

func (p *classicalProcessor) RowTranspositionEncrypt(text, key string) (*cryptoalg.RowTranspositionResult, error) {
	if text == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingText)
	}
	if key == "" {
		return nil, cryptoalg.NewValidationError(cryptoalg.MsgMissingKey)
	}

	keyChars := []rune(key)
	order := columnOrder(keyChars)
	cols := len(keyChars)

	chars := []rune(text)
	rows := (len(chars) + cols - 1) / cols
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			if i := r*cols + c; i < len(chars) {
				grid[r][c] = string(chars[i])
			} else {
				grid[r][c] = transpositionFiller
			}
		}
	}

	rec := trace.NewRecorder[cryptoalg.GridStep](cols + 1)
	rec.Record(cryptoalg.GridStep{
		Description: "Grid filled row by row",
		Grid:        grid,
	})

	var out strings.Builder
	for _, col := range order {
		var chunk strings.Builder
		for _, row := range grid {
			chunk.WriteString(row[col])
		}
		out.WriteString(chunk.String())

		c := col
		rec.Record(cryptoalg.GridStep{
			Description:     fmt.Sprintf("Read column %d (key value: %c)", col+1, keyChars[col]),
			HighlightColumn: &c,
			Chunk:           chunk.String(),
			CiphertextSoFar: out.String(),
		})
	}

	p.traced("Row transposition", cryptoalg.ModeEncrypt, rec.Len())
	return &cryptoalg.RowTranspositionResult{
		Key:         key,
		Text:        text,
		ColumnOrder: order,
		Grid:        trace.CloneGrid(grid),
		Result:      out.String(),
		Steps:       rec.Steps(),
	}, nil
}

// columnOrder returns column indices in reading order. A key made of the digits
// 1..n is a 1-based label per column; any other key is ordered by its
// characters, ties left to right.
func columnOrder(key []rune) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}

	if labels, ok := digitPermutation(key); ok {
		sort.SliceStable(order, func(i, j int) bool { return labels[order[i]] < labels[order[j]] })
		return order
	}
	sort.SliceStable(order, func(i, j int) bool { return key[order[i]] < key[order[j]] })
	return order
}

func digitPermutation(key []rune) ([]int, bool) {
	labels := make([]int, len(key))
	seen := make([]bool, len(key)+1)
	for i, r := range key {
		if r < '0' || r > '9' {
			return nil, false
		}
		v := int(r - '0')
		if v < 1 || v > len(key) || seen[v] {
			return nil, false
		}
		seen[v] = true
		labels[i] = v
	}
	return labels, true
}
