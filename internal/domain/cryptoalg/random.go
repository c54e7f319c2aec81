package cryptoalg

// RandomSource supplies the bytes behind every randomized choice: generated
// keys, ephemeral exponents and sampled entropy. Production code passes a
// cryptographically secure source; tests pass a seeded one to get exact,
// reproducible traces.
type RandomSource interface {
	Read(p []byte) (n int, err error)
}

// Processing modes shared by reversible ciphers
const (
	ModeEncrypt = "encrypt"
	ModeDecrypt = "decrypt"
)
