package v1

import (
	"net/http"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ECCHandler defines the interface for the elliptic curve routes
type ECCHandler interface {
	Params(ctx *gin.Context)
	Points(ctx *gin.Context)
	Multiply(ctx *gin.Context)
	Keys(ctx *gin.Context)
	SharedSecret(ctx *gin.Context)
}

type eccHandler struct {
	baseHandler
	processor cryptoalg.ECCProcessor
}

// NewECCHandler creates a new ECCHandler
func NewECCHandler(processor cryptoalg.ECCProcessor, recorder runs.RunRecorderService, logger logger.Logger) ECCHandler {
	return &eccHandler{
		baseHandler: baseHandler{recorder: recorder, logger: logger},
		processor:   processor,
	}
}

// Params handles the GET request for the default demonstration curve
// @Summary Default curve y^2 = x^3 + 2x + 2 mod 17 with G = (5, 1)
// @Tags ECC
// @Produce json
// @Success 200 {object} cryptoalg.Curve
// @Router /ecc/params [get]
func (h *eccHandler) Params(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.processor.Params())
}

// Points handles the POST request to enumerate every point of a small curve
// @Summary List the points of a curve
// @Tags ECC
// @Accept json
// @Produce json
// @Param requestBody body ECCPointsRequest false "Optional curve, the default curve otherwise"
// @Success 200 {object} cryptoalg.ECCPointsResult
// @Failure 400 {object} ErrorResponse
// @Router /ecc/points [post]
func (h *eccHandler) Points(ctx *gin.Context) {
	var request ECCPointsRequest
	if !h.bindOptional(ctx, "ecc", "points", &request) {
		return
	}

	result, err := h.processor.Points(request.curve())
	h.respond(ctx, "ecc", "points", result, err)
}

// Multiply handles the POST request to trace k*P by double-and-add
// @Router /ecc/multiply [post]
func (h *eccHandler) Multiply(ctx *gin.Context) {
	var request ECCMultiplyRequest
	if !h.bind(ctx, "ecc", "multiply", &request) {
		return
	}

	curve := request.curve()
	point := curve.G
	if request.Point != nil {
		point = *request.Point
	}

	result, err := h.processor.Multiply(curve, request.K, point)
	h.respond(ctx, "ecc", "multiply", result, err)
}

// Keys handles the POST request to compute Q = d*G; d is drawn when omitted
// @Router /ecc/keys [post]
func (h *eccHandler) Keys(ctx *gin.Context) {
	var request ECCKeysRequest
	if !h.bindOptional(ctx, "ecc", "keys", &request) {
		return
	}

	result, err := h.processor.GenerateKeys(request.curve(), request.D)
	h.respond(ctx, "ecc", "keys", result, err)
}

// SharedSecret handles the POST request to compute S = d*Q
// @Router /ecc/shared-secret [post]
func (h *eccHandler) SharedSecret(ctx *gin.Context) {
	var request ECCSharedSecretRequest
	if !h.bind(ctx, "ecc", "shared-secret", &request) {
		return
	}

	result, err := h.processor.SharedSecret(request.curve(), request.D, *request.Q)
	h.respond(ctx, "ecc", "shared-secret", result, err)
}
