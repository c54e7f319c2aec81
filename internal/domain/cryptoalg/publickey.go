package cryptoalg

import (
	"math/big"

	"github.com/MGTheTrain/crypto-trace/internal/domain/trace"
)

// RSAProcessor traces textbook RSA over demonstration-size primes.
type RSAProcessor interface {
	// GenerateKeys derives n, phi, a random e coprime to phi and d = e^-1 mod phi.
	// p and q must be distinct primes.
	GenerateKeys(p, q *big.Int) (*RSAKeyResult, error)

	// Encrypt raises the code point of every character to e mod n.
	Encrypt(text string, e, n *big.Int) (*RSAEncryptResult, error)

	// Decrypt raises every ciphertext value to d mod n and decodes the code points.
	Decrypt(ciphertext []*big.Int, d, n *big.Int) (*RSADecryptResult, error)
}

// RSAPublicKey is the pair (e, n)
type RSAPublicKey struct {
	E *big.Int `json:"e"`
	N *big.Int `json:"n"`
}

// RSAPrivateKey is the pair (d, n)
type RSAPrivateKey struct {
	D *big.Int `json:"d"`
	N *big.Int `json:"n"`
}

// RSAKeyResult carries n, phi(n) and both keys derived from p and q
type RSAKeyResult struct {
	P          *big.Int      `json:"p"`
	Q          *big.Int      `json:"q"`
	N          *big.Int      `json:"n"`
	Phi        *big.Int      `json:"phi"`
	PublicKey  RSAPublicKey  `json:"public_key"`
	PrivateKey RSAPrivateKey `json:"private_key"`
	Steps      []trace.Step  `json:"steps"`
}

// RSAEncryptResult holds one ciphertext value per character
type RSAEncryptResult struct {
	Text       string       `json:"text"`
	PublicKey  RSAPublicKey `json:"public_key"`
	Ciphertext []*big.Int   `json:"ciphertext"`
	Steps      []trace.Step `json:"steps"`
}

// RSADecryptResult holds the decoded plaintext
type RSADecryptResult struct {
	Ciphertext []*big.Int    `json:"ciphertext"`
	PrivateKey RSAPrivateKey `json:"private_key"`
	Plaintext  string        `json:"plaintext"`
	Steps      []trace.Step  `json:"steps"`
}

// DiffieHellmanProcessor traces the three stages of a Diffie-Hellman exchange.
type DiffieHellmanProcessor interface {
	// Setup returns p and its smallest primitive root. When p is nil a prime is
	// drawn from a small fixed pool; when g is nil it is searched for.
	Setup(p, g *big.Int) (*DHSetupResult, error)

	// GenerateKeys computes both public values, drawing missing private exponents from [2, p-2].
	GenerateKeys(p, g, a, b *big.Int) (*DHKeysResult, error)

	// ComputeSecret derives the secret from both sides and reports whether they agree.
	ComputeSecret(p, a, b, publicA, publicB *big.Int) (*DHSecretResult, error)
}

// DHSetupResult holds the agreed public parameters
type DHSetupResult struct {
	P     *big.Int     `json:"p"`
	G     *big.Int     `json:"g"`
	Steps []trace.Step `json:"steps"`
}

// DHKeysResult holds both private exponents and the public values derived from them
type DHKeysResult struct {
	P        *big.Int     `json:"p"`
	G        *big.Int     `json:"g"`
	PrivateA *big.Int     `json:"private_a"`
	PrivateB *big.Int     `json:"private_b"`
	PublicA  *big.Int     `json:"public_a"`
	PublicB  *big.Int     `json:"public_b"`
	Steps    []trace.Step `json:"steps"`
}

// DHSecretResult holds the secret as computed by each side
type DHSecretResult struct {
	SecretA *big.Int     `json:"secret_a"`
	SecretB *big.Int     `json:"secret_b"`
	Match   bool         `json:"match"`
	Steps   []trace.Step `json:"steps"`
}

// ElGamalProcessor traces ElGamal key generation and per-character encryption.
type ElGamalProcessor interface {
	// GenerateKeys computes y = g^x mod p, drawing x from [2, p-2] when nil.
	GenerateKeys(p, g, x *big.Int) (*ElGamalKeyResult, error)

	// Encrypt uses a fresh ephemeral k for every character.
	Encrypt(text string, p, g, y *big.Int) (*ElGamalEncryptResult, error)

	// Decrypt recovers m = b * (a^x)^-1 mod p for every pair.
	Decrypt(pairs []ElGamalPair, p, x *big.Int) (*ElGamalDecryptResult, error)
}

// ElGamalPair is one ciphertext pair (a, b)
type ElGamalPair struct {
	A *big.Int `json:"a"`
	B *big.Int `json:"b"`
}

// ElGamalKeyResult holds the private x and public y = g^x mod p
type ElGamalKeyResult struct {
	P     *big.Int     `json:"p"`
	G     *big.Int     `json:"g"`
	X     *big.Int     `json:"x"`
	Y     *big.Int     `json:"y"`
	Steps []trace.Step `json:"steps"`
}

// ElGamalEncryptResult holds one ciphertext pair per character
type ElGamalEncryptResult struct {
	Text  string        `json:"text"`
	Pairs []ElGamalPair `json:"ciphertext"`
	Steps []trace.Step  `json:"steps"`
}

// ElGamalDecryptResult holds the decoded plaintext
type ElGamalDecryptResult struct {
	Pairs     []ElGamalPair `json:"ciphertext"`
	Plaintext string        `json:"plaintext"`
	Steps     []trace.Step  `json:"steps"`
}

// DSAProcessor traces toy DSA parameter setup, key generation, signing and verification.
type DSAProcessor interface {
	// Setup draws q from a small pool, then searches p = k*q + 1 and a generator g of order q.
	Setup() (*DSASetupResult, error)
	// GenerateKeys draws x from [1, q-1] and computes y = g^x mod p.
	GenerateKeys(params DSAParams) (*DSAKeyResult, error)

	// Sign retries with a fresh k while r or s is zero, up to the configured
	// attempt budget; exhausting it returns ErrSigningExhausted.
	Sign(message string, params DSAParams, x *big.Int) (*DSASignResult, error)

	// Verify never errors for a wrong signature; Valid is false instead.
	Verify(message string, params DSAParams, y, r, s *big.Int) (*DSAVerifyResult, error)
}

// DSAParams are the domain parameters (p, q, g)
type DSAParams struct {
	P *big.Int `json:"p"`
	Q *big.Int `json:"q"`
	G *big.Int `json:"g"`
}

// DSASetupResult holds the domain parameters and how they relate
type DSASetupResult struct {
	Params DSAParams    `json:"params"`
	Steps  []trace.Step `json:"steps"`
}

// DSAKeyResult is a DSA key pair (x, y)
type DSAKeyResult struct {
	Params DSAParams    `json:"params"`
	X      *big.Int     `json:"x"`
	Y      *big.Int     `json:"y"`
	Steps  []trace.Step `json:"steps"`
}

// DSASignResult is the signature (r, s) and the attempts it took
type DSASignResult struct {
	Message  string       `json:"message"`
	Hash     *big.Int     `json:"hash"`
	K        *big.Int     `json:"k"`
	R        *big.Int     `json:"r"`
	S        *big.Int     `json:"s"`
	Attempts int          `json:"attempts"`
	Steps    []trace.Step `json:"steps"`
}

// DSAVerifyResult reports v and whether it equals r
type DSAVerifyResult struct {
	Message string       `json:"message"`
	Valid   bool         `json:"valid"`
	Reason  string       `json:"reason,omitempty"`
	W       *big.Int     `json:"w,omitempty"`
	U1      *big.Int     `json:"u1,omitempty"`
	U2      *big.Int     `json:"u2,omitempty"`
	V       *big.Int     `json:"v,omitempty"`
	Steps   []trace.Step `json:"steps"`
}
