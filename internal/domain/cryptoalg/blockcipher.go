package cryptoalg

// BlockCipherProcessor traces AES-128 and single-block DES encryption.
type BlockCipherProcessor interface {
	// AESEncrypt pads text with PKCS#7, forces key to 16 bytes and encrypts
	// every 16-byte block independently, recording each round sub-step.
	AESEncrypt(text, key string) (*AESResult, error)

	// DESEncrypt encrypts one 64-bit block. Both inputs are hex strings that
	// are normalized to exactly 16 digits.
	DESEncrypt(plaintextHex, keyHex string) (*DESResult, error)
}

// AESState is the 4x4 byte matrix; byte i of a block sits at [i%4][i/4].
type AESState [4][4]byte

// AES round sub-step names
const (
	AESAddRoundKey = "AddRoundKey"
	AESSubBytes    = "SubBytes"
	AESShiftRows   = "ShiftRows"
	AESMixColumns  = "MixColumns"
)

// AESStep records the state right after one round sub-step.
// RoundKey is set for AddRoundKey only.
type AESStep struct {
	Round     int       `json:"round"`
	Operation string    `json:"operation"`
	State     AESState  `json:"state"`
	RoundKey  *AESState `json:"round_key,omitempty"`
}

// Clone detaches the round key from the schedule it was read from
func (s AESStep) Clone() AESStep {
	if s.RoundKey != nil {
		k := *s.RoundKey
		s.RoundKey = &k
	}
	return s
}

// AESKeyWord is one of the 44 words of the expanded key. The derivation fields
// are filled for words at positions that are multiples of 4 (from 4 on),
// where RotWord, SubWord and Rcon apply.
type AESKeyWord struct {
	Index    int    `json:"index"`
	Word     string `json:"word"`
	Previous string `json:"w_prev,omitempty"`
	AfterRot string `json:"after_rot_word,omitempty"`
	AfterSub string `json:"after_sub_word,omitempty"`
	Rcon     string `json:"rcon,omitempty"`
	Formula  string `json:"formula,omitempty"`
}

// AESBlock is the round-by-round trace of one 16-byte block
type AESBlock struct {
	Index        int       `json:"index"`
	InputHex     string    `json:"input_hex"`
	InitialState AESState  `json:"initial_state"`
	OutputHex    string    `json:"output_hex"`
	Steps        []AESStep `json:"steps"`
}

// AESResult holds the key expansion and the trace of every block
type AESResult struct {
	Text          string       `json:"text"`
	KeyHex        string       `json:"key_hex"`
	PaddedHex     string       `json:"padded_hex"`
	KeySchedule   []AESKeyWord `json:"key_schedule"`
	Blocks        []AESBlock   `json:"blocks"`
	CiphertextHex string       `json:"ciphertext_hex"`
}

// DESKeyRound is one entry of the DES key schedule. Bit strings are MSB first.
type DESKeyRound struct {
	Round   int    `json:"round"`
	Shift   int    `json:"shift"`
	CBefore string `json:"c_before"`
	DBefore string `json:"d_before"`
	CAfter  string `json:"c_after"`
	DAfter  string `json:"d_after"`
	KeyBits string `json:"key_bin"`
	KeyHex  string `json:"key_hex"`
}

// DESSBoxLookup is one 6-to-4 bit S-box substitution
type DESSBoxLookup struct {
	Box        int    `json:"box"`
	Input      string `json:"input"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Output     int    `json:"output"`
	OutputBits string `json:"output_bin"`
}

// DESRound records one Feistel round
type DESRound struct {
	Round      int             `json:"round"`
	LBefore    string          `json:"l_before"`
	RBefore    string          `json:"r_before"`
	Expanded   string          `json:"expanded"`
	RoundKey   string          `json:"round_key"`
	Xored      string          `json:"xored"`
	SBoxes     []DESSBoxLookup `json:"sboxes"`
	SBoxOutput string          `json:"sbox_output"`
	Permuted   string          `json:"permuted"`
	LAfter     string          `json:"l_after"`
	RAfter     string          `json:"r_after"`
}

// Clone copies the S-box lookups
func (r DESRound) Clone() DESRound {
	r.SBoxes = append([]DESSBoxLookup(nil), r.SBoxes...)
	return r
}

// DESResult holds the key schedule, the initial split and all 16 rounds
type DESResult struct {
	PlaintextHex       string        `json:"plaintext_hex"`
	KeyHex             string        `json:"key_hex"`
	PlaintextBits      string        `json:"plaintext_bin"`
	KeyPC1             string        `json:"key_pc1"`
	KeySchedule        []DESKeyRound `json:"key_schedule"`
	InitialPermutation string        `json:"initial_permutation"`
	L0                 string        `json:"l0"`
	R0                 string        `json:"r0"`
	Rounds             []DESRound    `json:"rounds"`
	PreOutput          string        `json:"pre_output"`
	CiphertextBits     string        `json:"ciphertext_bin"`
	CiphertextHex      string        `json:"ciphertext_hex"`
}
