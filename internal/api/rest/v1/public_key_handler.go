package v1

import (
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PublicKeyHandler defines the interface for the RSA, Diffie-Hellman, ElGamal and DSA routes
type PublicKeyHandler interface {
	RSAKeys(ctx *gin.Context)
	RSAEncrypt(ctx *gin.Context)
	RSADecrypt(ctx *gin.Context)

	DHSetup(ctx *gin.Context)
	DHKeys(ctx *gin.Context)
	DHSecret(ctx *gin.Context)

	ElGamalKeys(ctx *gin.Context)
	ElGamalEncrypt(ctx *gin.Context)
	ElGamalDecrypt(ctx *gin.Context)

	DSASetup(ctx *gin.Context)
	DSAKeys(ctx *gin.Context)
	DSASign(ctx *gin.Context)
	DSAVerify(ctx *gin.Context)
}

type publicKeyHandler struct {
	baseHandler
	rsa     cryptoalg.RSAProcessor
	dh      cryptoalg.DiffieHellmanProcessor
	elGamal cryptoalg.ElGamalProcessor
	dsa     cryptoalg.DSAProcessor
}

// NewPublicKeyHandler creates a new PublicKeyHandler
func NewPublicKeyHandler(
	rsa cryptoalg.RSAProcessor,
	dh cryptoalg.DiffieHellmanProcessor,
	elGamal cryptoalg.ElGamalProcessor,
	dsa cryptoalg.DSAProcessor,
	recorder runs.RunRecorderService,
	logger logger.Logger,
	maxTextLength int,
) PublicKeyHandler {
	return &publicKeyHandler{
		baseHandler: baseHandler{recorder: recorder, logger: logger, maxTextLength: maxTextLength},
		rsa:         rsa,
		dh:          dh,
		elGamal:     elGamal,
		dsa:         dsa,
	}
}

// RSAKeys handles the POST request to derive an RSA key pair from two primes
// @Summary Trace RSA key generation
// @Tags RSA
// @Accept json
// @Produce json
// @Param requestBody body RSAKeysRequest true "Primes p and q"
// @Success 200 {object} cryptoalg.RSAKeyResult
// @Failure 400 {object} ErrorResponse
// @Router /rsa/keys [post]
func (h *publicKeyHandler) RSAKeys(ctx *gin.Context) {
	var request RSAKeysRequest
	if !h.bind(ctx, "rsa", "keys", &request) {
		return
	}

	result, err := h.rsa.GenerateKeys(request.P, request.Q)
	h.respond(ctx, "rsa", "keys", result, err)
}

// RSAEncrypt handles the POST request to encrypt every character code with (e, n)
// @Router /rsa/encrypt [post]
func (h *publicKeyHandler) RSAEncrypt(ctx *gin.Context) {
	var request RSAEncryptRequest
	if !h.bind(ctx, "rsa", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.rsa.Encrypt(request.Text, request.E, request.N)
	h.respond(ctx, "rsa", cryptoalg.ModeEncrypt, result, err)
}

// RSADecrypt handles the POST request to decrypt ciphertext values with (d, n)
// @Router /rsa/decrypt [post]
func (h *publicKeyHandler) RSADecrypt(ctx *gin.Context) {
	var request RSADecryptRequest
	if !h.bind(ctx, "rsa", cryptoalg.ModeDecrypt, &request) {
		return
	}

	result, err := h.rsa.Decrypt(request.Ciphertext, request.D, request.N)
	h.respond(ctx, "rsa", cryptoalg.ModeDecrypt, result, err)
}

// DHSetup handles the POST request to agree on p and g; both are optional
// @Summary Trace Diffie-Hellman parameter setup
// @Tags DiffieHellman
// @Accept json
// @Produce json
// @Param requestBody body DHSetupRequest false "Optional prime p and generator g"
// @Success 200 {object} cryptoalg.DHSetupResult
// @Failure 400 {object} ErrorResponse
// @Router /dh/setup [post]
func (h *publicKeyHandler) DHSetup(ctx *gin.Context) {
	var request DHSetupRequest
	if !h.bindOptional(ctx, "dh", "setup", &request) {
		return
	}

	result, err := h.dh.Setup(request.P, request.G)
	h.respond(ctx, "dh", "setup", result, err)
}

// DHKeys handles the POST request to compute both public values
// @Router /dh/keys [post]
func (h *publicKeyHandler) DHKeys(ctx *gin.Context) {
	var request DHKeysRequest
	if !h.bind(ctx, "dh", "keys", &request) {
		return
	}

	result, err := h.dh.GenerateKeys(request.P, request.G, request.A, request.B)
	h.respond(ctx, "dh", "keys", result, err)
}

// DHSecret handles the POST request to derive and compare both shared secrets
// @Router /dh/secret [post]
func (h *publicKeyHandler) DHSecret(ctx *gin.Context) {
	var request DHSecretRequest
	if !h.bind(ctx, "dh", "secret", &request) {
		return
	}

	result, err := h.dh.ComputeSecret(request.P, request.A, request.B, request.PublicA, request.PublicB)
	h.respond(ctx, "dh", "secret", result, err)
}

// ElGamalKeys handles the POST request to publish y = g^x mod p
// @Router /elgamal/keys [post]
func (h *publicKeyHandler) ElGamalKeys(ctx *gin.Context) {
	var request ElGamalKeysRequest
	if !h.bind(ctx, "elgamal", "keys", &request) {
		return
	}

	result, err := h.elGamal.GenerateKeys(request.P, request.G, request.X)
	h.respond(ctx, "elgamal", "keys", result, err)
}

// ElGamalEncrypt handles the POST request to encrypt every character into a pair
// @Router /elgamal/encrypt [post]
func (h *publicKeyHandler) ElGamalEncrypt(ctx *gin.Context) {
	var request ElGamalEncryptRequest
	if !h.bind(ctx, "elgamal", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.elGamal.Encrypt(request.Text, request.P, request.G, request.Y)
	h.respond(ctx, "elgamal", cryptoalg.ModeEncrypt, result, err)
}

// ElGamalDecrypt handles the POST request to decrypt ciphertext pairs with x
// @Router /elgamal/decrypt [post]
func (h *publicKeyHandler) ElGamalDecrypt(ctx *gin.Context) {
	var request ElGamalDecryptRequest
	if !h.bind(ctx, "elgamal", cryptoalg.ModeDecrypt, &request) {
		return
	}

	result, err := h.elGamal.Decrypt(request.Pairs, request.P, request.X)
	h.respond(ctx, "elgamal", cryptoalg.ModeDecrypt, result, err)
}

// DSASetup handles the POST request to pick toy domain parameters (p, q, g)
// @Summary Trace DSA parameter generation
// @Tags DSA
// @Produce json
// @Success 200 {object} cryptoalg.DSASetupResult
// @Router /dsa/setup [post]
func (h *publicKeyHandler) DSASetup(ctx *gin.Context) {
	result, err := h.dsa.Setup()
	h.respond(ctx, "dsa", "setup", result, err)
}

// DSAKeys handles the POST request to draw x and publish y = g^x mod p
// @Router /dsa/keys [post]
func (h *publicKeyHandler) DSAKeys(ctx *gin.Context) {
	var request DSAKeysRequest
	if !h.bind(ctx, "dsa", "keys", &request) {
		return
	}

	result, err := h.dsa.GenerateKeys(request.params())
	h.respond(ctx, "dsa", "keys", result, err)
}

// DSASign handles the POST request to sign the SHA-256 digest of a message
// @Summary Trace DSA signing
// @Description Retries with a fresh k while r or s is zero, up to the configured attempt budget.
// @Tags DSA
// @Accept json
// @Produce json
// @Param requestBody body DSASignRequest true "Parameters, private key x and message"
// @Success 200 {object} cryptoalg.DSASignResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dsa/sign [post]
func (h *publicKeyHandler) DSASign(ctx *gin.Context) {
	var request DSASignRequest
	if !h.bind(ctx, "dsa", "sign", &request) {
		return
	}

	result, err := h.dsa.Sign(request.Message, request.params(), request.X)
	h.respond(ctx, "dsa", "sign", result, err)
}

// DSAVerify handles the POST request to check (r, s); an invalid signature is a 200 with valid=false
// @Router /dsa/verify [post]
func (h *publicKeyHandler) DSAVerify(ctx *gin.Context) {
	var request DSAVerifyRequest
	if !h.bind(ctx, "dsa", "verify", &request) {
		return
	}

	result, err := h.dsa.Verify(request.Message, request.params(), request.Y, request.R, request.S)
	h.respond(ctx, "dsa", "verify", result, err)
}
