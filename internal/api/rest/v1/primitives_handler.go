package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PrimitivesHandler defines the interface for the HMAC, PRNG, entropy and IPsec routes
type PrimitivesHandler interface {
	HMAC(ctx *gin.Context)
	LCG(ctx *gin.Context)
	SystemEntropy(ctx *gin.Context)
	MixEntropy(ctx *gin.Context)
	IPsecLayout(ctx *gin.Context)
}

type primitivesHandler struct {
	baseHandler
	hmac     cryptoalg.HMACProcessor
	prng     cryptoalg.PRNGProcessor
	entropy  cryptoalg.EntropyProcessor
	ipsec    cryptoalg.IPsecProcessor
	settings config.EngineSettings
}

// NewPrimitivesHandler creates a new PrimitivesHandler
func NewPrimitivesHandler(
	hmac cryptoalg.HMACProcessor,
	prng cryptoalg.PRNGProcessor,
	entropy cryptoalg.EntropyProcessor,
	ipsec cryptoalg.IPsecProcessor,
	recorder runs.RunRecorderService,
	logger logger.Logger,
	settings config.EngineSettings,
) PrimitivesHandler {
	return &primitivesHandler{
		baseHandler: baseHandler{recorder: recorder, logger: logger, maxTextLength: settings.MaxTextLength},
		hmac:        hmac,
		prng:        prng,
		entropy:     entropy,
		ipsec:       ipsec,
		settings:    settings,
	}
}

// HMAC handles the POST request to trace HMAC(key, message)
// @Summary Trace an HMAC computation
// @Tags Primitives
// @Accept json
// @Produce json
// @Param requestBody body HMACRequest true "Key, message and hash (md5, sha1, sha256, sha512, sha3-256, blake2b-256)"
// @Success 200 {object} cryptoalg.HMACResult
// @Failure 400 {object} ErrorResponse
// @Router /hmac [post]
func (h *primitivesHandler) HMAC(ctx *gin.Context) {
	var request HMACRequest
	if !h.bind(ctx, "hmac", "compute", &request) {
		return
	}

	algorithm := request.Algorithm
	if algorithm == "" {
		algorithm = "sha256"
	}

	result, err := h.hmac.Compute(request.Key, request.Message, algorithm)
	h.respond(ctx, "hmac", "compute", result, err)
}

// LCG handles the POST request to iterate a linear congruential generator
// @Router /prng/lcg [post]
func (h *primitivesHandler) LCG(ctx *gin.Context) {
	var request LCGRequest
	if !h.bind(ctx, "lcg", "generate", &request) {
		return
	}

	n := h.settings.PrngDefaultSamples
	if request.N != nil {
		n = *request.N
	}

	result, err := h.prng.LCG(request.M, request.A, request.C, request.Seed, n)
	h.respond(ctx, "lcg", "generate", result, err)
}

// SystemEntropy handles the GET request for raw operating system random bytes
// @Summary Read bytes from the system CSPRNG
// @Tags Primitives
// @Produce json
// @Param bytes query int false "Number of bytes (default 16)"
// @Success 200 {object} cryptoalg.SystemEntropyResult
// @Failure 400 {object} ErrorResponse
// @Router /entropy/system [get]
func (h *primitivesHandler) SystemEntropy(ctx *gin.Context) {
	n := h.settings.EntropyDefaultBytes
	if raw := ctx.Query("bytes"); len(raw) > 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(ctx, "entropy", "system", http.StatusBadRequest, fmt.Errorf("bytes must be an integer"))
			return
		}
		n = parsed
	}

	result, err := h.entropy.SystemEntropy(n)
	h.respond(ctx, "entropy", "system", result, err)
}

// MixEntropy handles the POST request to hash pointer events into a pool digest
// @Router /entropy/mix [post]
func (h *primitivesHandler) MixEntropy(ctx *gin.Context) {
	var request EntropyMixRequest
	if !h.bind(ctx, "entropy", "mix", &request) {
		return
	}

	result, err := h.entropy.MixUserEntropy(request.Events)
	h.respond(ctx, "entropy", "mix", result, err)
}

// IPsecLayout handles the GET request for the segment layout of an IPsec packet
// @Summary IPsec packet layout
// @Tags Primitives
// @Produce json
// @Param protocol query string false "ah or esp (default esp)"
// @Param mode query string false "transport or tunnel (default transport)"
// @Success 200 {object} cryptoalg.IPsecLayout
// @Failure 400 {object} ErrorResponse
// @Router /ipsec/layout [get]
func (h *primitivesHandler) IPsecLayout(ctx *gin.Context) {
	protocol := ctx.DefaultQuery("protocol", cryptoalg.IPsecESP)
	mode := ctx.DefaultQuery("mode", cryptoalg.IPsecTransport)

	result, err := h.ipsec.Layout(protocol, mode)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
