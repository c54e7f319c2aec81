package cryptoalg

import (
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

// Supported HMAC hash names
const (
	HashMD5        = "md5"
	HashSHA1       = "sha1"
	HashSHA256     = "sha256"
	HashSHA512     = "sha512"
	HashSHA3_256   = "sha3-256"
	HashBLAKE2b256 = "blake2b-256"
)

// HMACProcessor traces HMAC over a selectable hash.
type HMACProcessor interface {
	// Compute runs the inner and outer hash of HMAC, tracing key padding and both pads.
	Compute(key, message, algorithm string) (*HMACResult, error)
}

// HMACResult carries the inner hash and the final tag in hex
type HMACResult struct {
	Algorithm  string       `json:"algorithm"`
	BlockSize  int          `json:"block_size"`
	DigestSize int          `json:"digest_size"`
	KeyHex     string       `json:"key_hex"`
	MessageHex string       `json:"message_hex"`
	InnerHash  string       `json:"inner_hash"`
	HMAC       string       `json:"hmac"`
	Steps      []trace.Step `json:"steps"`
}

// PRNGProcessor traces a linear congruential generator.
type PRNGProcessor interface {
	// LCG iterates X(n+1) = (a*X(n) + c) mod m for n rounds starting at seed.
	LCG(m, a, c, seed *big.Int, n int) (*LCGResult, error)
}

// LCGResult holds the generated sequence and the detected period, if any
type LCGResult struct {
	M        *big.Int     `json:"m"`
	A        *big.Int     `json:"a"`
	C        *big.Int     `json:"c"`
	Seed     *big.Int     `json:"seed"`
	Sequence []*big.Int   `json:"sequence"`
	Period   int          `json:"period,omitempty"`
	Cycle    bool         `json:"cycle_detected"`
	Steps    []trace.Step `json:"steps"`
}

// EntropyProcessor exposes system randomness and mixes user interaction events into a pool digest.
type EntropyProcessor interface {
	// SystemEntropy reads numBytes from the random source in a single shot.
	SystemEntropy(numBytes int) (*SystemEntropyResult, error)
	// MixUserEntropy hashes the serialized events and derives a seed from the digest.
	MixUserEntropy(events []EntropyEvent) (*EntropyMixResult, error)
}

// SystemEntropyResult holds raw bytes as hex and as integers
type SystemEntropyResult struct {
	Hex    string `json:"hex"`
	Bytes  []int  `json:"bytes_int"`
	Source string `json:"source"`
}

// EntropyEvent is one pointer sample: coordinates and a timestamp
type EntropyEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T float64 `json:"t"`
}

// EntropyMixResult holds the pool digest and the derived seed
type EntropyMixResult struct {
	PoolHash       string       `json:"entropy_pool_hash"`
	EventCount     int          `json:"event_count"`
	RawDataSample  string       `json:"raw_data_sample"`
	DerivedSeedHex string       `json:"derived_seed_hex"`
	Steps          []trace.Step `json:"steps"`
}

// IPsec protocol and mode names
const (
	IPsecAH        = "ah"
	IPsecESP       = "esp"
	IPsecTransport = "transport"
	IPsecTunnel    = "tunnel"
)

// IPsecProcessor describes IPsec packet layouts for the visualizer.
type IPsecProcessor interface {
	// Layout returns the segments of an ESP or AH packet in transport or tunnel mode.
	Layout(protocol, mode string) (*IPsecLayout, error)
}

// IPsecSegment is one region of an IPsec packet
type IPsecSegment struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"desc,omitempty"`
}

// IPsecLayout is the ordered list of packet segments
type IPsecLayout struct {
	Protocol string         `json:"protocol"`
	Mode     string         `json:"mode"`
	Segments []IPsecSegment `json:"structure"`
}
