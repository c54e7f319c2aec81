package v1

import (
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BlockCipherHandler defines the interface for the AES and DES routes
type BlockCipherHandler interface {
	AESEncrypt(ctx *gin.Context)
	DESEncrypt(ctx *gin.Context)
}

type blockCipherHandler struct {
	baseHandler
	processor cryptoalg.BlockCipherProcessor
}

// NewBlockCipherHandler creates a new BlockCipherHandler
func NewBlockCipherHandler(processor cryptoalg.BlockCipherProcessor, recorder runs.RunRecorderService, logger logger.Logger, maxTextLength int) BlockCipherHandler {
	return &blockCipherHandler{
		baseHandler: baseHandler{recorder: recorder, logger: logger, maxTextLength: maxTextLength},
		processor:   processor,
	}
}

// AESEncrypt handles the POST request to trace AES-128 over every block of the text
// @Summary Trace AES-128 encryption
// @Description Pads the text with PKCS#7, forces the key to 16 bytes and records every round sub-step.
// @Tags BlockCipher
// @Accept json
// @Produce json
// @Param requestBody body TextKeyRequest true "Text and key"
// @Success 200 {object} cryptoalg.AESResult
// @Failure 400 {object} ErrorResponse
// @Router /block/aes [post]
func (h *blockCipherHandler) AESEncrypt(ctx *gin.Context) {
	var request TextKeyRequest
	if !h.bind(ctx, "aes", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.processor.AESEncrypt(request.Text, request.Key)
	h.respond(ctx, "aes", cryptoalg.ModeEncrypt, result, err)
}

// DESEncrypt handles the POST request to trace DES over one 64-bit block
// @Summary Trace DES encryption of one block
// @Tags BlockCipher
// @Accept json
// @Produce json
// @Param requestBody body DESRequest true "Plaintext and key as hex"
// @Success 200 {object} cryptoalg.DESResult
// @Failure 400 {object} ErrorResponse
// @Router /block/des [post]
func (h *blockCipherHandler) DESEncrypt(ctx *gin.Context) {
	var request DESRequest
	if !h.bind(ctx, "des", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.processor.DESEncrypt(request.Text, request.Key)
	h.respond(ctx, "des", cryptoalg.ModeEncrypt, result, err)
}
