package cryptoalg

import "github.com/MGTheTrain/crypto-trace/internal/domain/trace"

// ClassicalProcessor runs the substitution and transposition ciphers with a
// step per processed unit (letter, byte, digraph or triplet).
// Missing or unusable input yields a *ValidationError, never a panic.
type ClassicalProcessor interface {
	// CaesarEncrypt shifts every letter by shift mod 26.
	CaesarEncrypt(text string, shift int) (*CaesarResult, error)
	// CaesarDecrypt shifts every letter back by shift mod 26.
	CaesarDecrypt(text string, shift int) (*CaesarResult, error)

	// MonoalphabeticEncrypt substitutes through the alphabet derived from keyword.
	MonoalphabeticEncrypt(text, keyword string) (*MonoalphabeticResult, error)

	// VigenereEncrypt adds the repeated key letter to each letter mod 26.
	VigenereEncrypt(text, key string) (*VigenereResult, error)
	// VigenereDecrypt subtracts the repeated key letter mod 26.
	VigenereDecrypt(text, key string) (*VigenereResult, error)

	// VernamEncrypt adds a letter key mod 26. An empty key is replaced by a random one.
	VernamEncrypt(text, key string) (*VernamResult, error)
	// VernamDecrypt subtracts the key mod 26. The key is required.
	VernamDecrypt(text, key string) (*VernamResult, error)

	// OTPEncrypt XORs the UTF-8 bytes of text with key, generating random key bytes when key is empty.
	OTPEncrypt(text, key string) (*OTPResult, error)
	// OTPDecrypt XORs hex ciphertext with a hex key.
	OTPDecrypt(cipherHex, keyHex string) (*OTPResult, error)

	// PlayfairEncrypt substitutes digraphs through the 5x5 key square.
	PlayfairEncrypt(text, key string) (*PlayfairResult, error)
	// PlayfairDecrypt reverses the digraph rules of PlayfairEncrypt.
	PlayfairDecrypt(text, key string) (*PlayfairResult, error)

	// HillEncrypt multiplies letter triplets by the 3x3 matrix built from a 9-letter key.
	HillEncrypt(text, key string) (*HillResult, error)
	// HillDecrypt multiplies triplets by the inverse key matrix mod 26.
	HillDecrypt(text, key string) (*HillResult, error)

	// RailFenceEncrypt writes text in a zigzag over rails and reads it rail by rail.
	RailFenceEncrypt(text string, rails int) (*RailFenceResult, error)
	// RowTranspositionEncrypt fills rows of len(key) and reads columns in key order.
	RowTranspositionEncrypt(text, key string) (*RowTranspositionResult, error)
}

// LetterStep documents one letter of a mod-26 cipher
type LetterStep struct {
	Position    int    `json:"index"`
	Input       string `json:"input_char"`
	InputIndex  int    `json:"input_idx"`
	Key         string `json:"key_char,omitempty"`
	KeyIndex    int    `json:"key_idx"`
	Sum         int    `json:"sum_val"`
	Formula     string `json:"formula"`
	Output      string `json:"output_char"`
	OutputIndex int    `json:"output_idx"`
}

// CaesarResult is the trace of a Caesar shift in either direction
type CaesarResult struct {
	Mode             string       `json:"mode"`
	Text             string       `json:"text"`
	Shift            int          `json:"shift"`
	StandardAlphabet string       `json:"std_alphabet"`
	CipherAlphabet   string       `json:"cipher_alphabet"`
	Result           string       `json:"result"`
	Steps            []LetterStep `json:"steps"`
}

// MonoalphabeticResult pairs the keyword alphabet with one step per letter
type MonoalphabeticResult struct {
	Text             string       `json:"text"`
	Keyword          string       `json:"key_keyword"`
	StandardAlphabet string       `json:"std_alphabet"`
	CipherAlphabet   string       `json:"cipher_alphabet"`
	Result           string       `json:"result"`
	Steps            []LetterStep `json:"steps"`
}

// VigenereResult carries the key repeated to the text length
type VigenereResult struct {
	Mode    string       `json:"mode"`
	Text    string       `json:"text"`
	Key     string       `json:"key"`
	FullKey string       `json:"full_key"`
	Result  string       `json:"result"`
	Steps   []LetterStep `json:"steps"`
}

// VernamResult reports the key used and whether it was generated
type VernamResult struct {
	Mode         string       `json:"mode"`
	Text         string       `json:"text"`
	KeyUsed      string       `json:"key_used"`
	GeneratedKey bool         `json:"generated_key"`
	Result       string       `json:"result"`
	Steps        []LetterStep `json:"steps"`
}

// OTPStep documents the XOR of one byte
type OTPStep struct {
	Position   int    `json:"index"`
	Char       string `json:"char"`
	CharCode   byte   `json:"char_code"`
	CharBin    string `json:"char_bin"`
	KeyChar    string `json:"key_char"`
	KeyCode    byte   `json:"key_code"`
	KeyBin     string `json:"key_bin"`
	ResultCode byte   `json:"result_code"`
	ResultBin  string `json:"result_bin"`
	ResultHex  string `json:"result_hex"`
	ResultChar string `json:"result_char"`
}

// OTPResult is the byte-wise XOR trace in hex and text form
type OTPResult struct {
	Mode         string    `json:"mode"`
	Text         string    `json:"text"`
	KeyUsed      string    `json:"key_used"`
	KeyBytesHex  string    `json:"key_bytes_hex"`
	GeneratedKey bool      `json:"generated_key"`
	ResultHex    string    `json:"result_hex"`
	ResultText   string    `json:"result_text"`
	Steps        []OTPStep `json:"steps"`
}

// HillRowCalc is one row of the matrix-vector product for a triplet
type HillRowCalc struct {
	Row     int    `json:"row"`
	Formula string `json:"formula"`
	Sum     int    `json:"sum"`
	Mod     int    `json:"mod"`
	Char    string `json:"char"`
}

// HillStep is the product of one triplet with the key matrix
type HillStep struct {
	Chunk       int           `json:"chunk_idx"`
	InputChars  []string      `json:"input_chars"`
	InputValues []int         `json:"input_vals"`
	Calcs       []HillRowCalc `json:"calcs"`
}

// Clone copies the slices of the step
func (s HillStep) Clone() HillStep {
	s.InputChars = append([]string(nil), s.InputChars...)
	s.InputValues = append([]int(nil), s.InputValues...)
	s.Calcs = append([]HillRowCalc(nil), s.Calcs...)
	return s
}

// HillResult carries the key matrix, its determinant and inverse mod 26
type HillResult struct {
	Mode          string     `json:"mode"`
	Text          string     `json:"text"`
	KeyChars      string     `json:"key_chars"`
	KeyMatrix     [3][3]int  `json:"key_matrix"`
	Determinant   int        `json:"determinant"`
	InverseMatrix [3][3]int  `json:"inverse_matrix"`
	Result        string     `json:"result"`
	Steps         []HillStep `json:"steps"`
}

// GridCoord addresses a cell of a cipher grid
type GridCoord struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// PlayfairNote explains a digraph that needed a filler letter
type PlayfairNote struct {
	Pair string `json:"pair"`
	Note string `json:"note"`
}

// PlayfairStep is one digraph with the rule applied
type PlayfairStep struct {
	Pair            string       `json:"pair"`
	Rule            string       `json:"rule"`
	RuleDescription string       `json:"rule_desc"`
	CoordsIn        [2]GridCoord `json:"coords_in"`
	CoordsOut       [2]GridCoord `json:"coords_out"`
	Result          string       `json:"result"`
}

// Playfair rule names
const (
	PlayfairSameRow    = "Same Row"
	PlayfairSameColumn = "Same Column"
	PlayfairRectangle  = "Rectangle"
)

// PlayfairResult carries the key square and the preprocessed digraphs
type PlayfairResult struct {
	Mode          string         `json:"mode"`
	Text          string         `json:"text"`
	KeyString     string         `json:"key_string"`
	Matrix        [5][5]string   `json:"matrix"`
	Digraphs      []string       `json:"digraphs"`
	Preprocessing []PlayfairNote `json:"preprocessing_steps"`
	Result        string         `json:"result"`
	Steps         []PlayfairStep `json:"steps"`
}

// RailCell is one placed character of the zigzag
type RailCell struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Char string `json:"char"`
}

// GridStep is the step shape of the transposition ciphers: either a full grid
// snapshot or one read operation.
type GridStep struct {
	Description     string     `json:"description"`
	Grid            [][]string `json:"grid,omitempty"`
	HighlightCell   *GridCoord `json:"highlight_cell,omitempty"`
	HighlightColumn *int       `json:"highlight_col,omitempty"`
	Chunk           string     `json:"chunk,omitempty"`
	CiphertextSoFar string     `json:"ciphertext_so_far"`
}

// Clone snapshots the grid and highlight pointers
func (s GridStep) Clone() GridStep {
	s.Grid = trace.CloneGrid(s.Grid)
	if s.HighlightCell != nil {
		c := *s.HighlightCell
		s.HighlightCell = &c
	}
	if s.HighlightColumn != nil {
		c := *s.HighlightColumn
		s.HighlightColumn = &c
	}
	return s
}

// RailFenceResult holds the zigzag grid. Rails beyond the text length add no rows.
type RailFenceResult struct {
	Text   string     `json:"text"`
	Rails  int        `json:"rails"`
	Grid   [][]string `json:"grid"`
	Coords []RailCell `json:"coords"`
	Result string     `json:"result"`
	Steps  []GridStep `json:"steps"`
}

// RowTranspositionResult holds the filled grid and the column read order
type RowTranspositionResult struct {
	Key         string     `json:"key"`
	Text        string     `json:"input"`
	ColumnOrder []int      `json:"algo_col_order"`
	Grid        [][]string `json:"grid"`
	Result      string     `json:"result"`
	Steps       []GridStep `json:"steps"`
}
