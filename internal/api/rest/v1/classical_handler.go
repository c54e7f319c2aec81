package v1

import (
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ClassicalHandler defines the interface for the classical cipher routes
type ClassicalHandler interface {
	CaesarEncrypt(ctx *gin.Context)
	CaesarDecrypt(ctx *gin.Context)
	Monoalphabetic(ctx *gin.Context)
	VigenereEncrypt(ctx *gin.Context)
	VigenereDecrypt(ctx *gin.Context)
	VernamEncrypt(ctx *gin.Context)
	VernamDecrypt(ctx *gin.Context)
	OTPEncrypt(ctx *gin.Context)
	OTPDecrypt(ctx *gin.Context)
	PlayfairEncrypt(ctx *gin.Context)
	PlayfairDecrypt(ctx *gin.Context)
	HillEncrypt(ctx *gin.Context)
	HillDecrypt(ctx *gin.Context)
	RailFence(ctx *gin.Context)
	RowTransposition(ctx *gin.Context)
}

type classicalHandler struct {
	baseHandler
	processor    cryptoalg.ClassicalProcessor
	defaultShift int
	defaultRails int
}

// NewClassicalHandler creates a new ClassicalHandler
func NewClassicalHandler(processor cryptoalg.ClassicalProcessor, recorder runs.RunRecorderService, logger logger.Logger, maxTextLength, defaultShift, defaultRails int) ClassicalHandler {
	return &classicalHandler{
		baseHandler:  baseHandler{recorder: recorder, logger: logger, maxTextLength: maxTextLength},
		processor:    processor,
		defaultShift: defaultShift,
		defaultRails: defaultRails,
	}
}

// CaesarEncrypt handles the POST request to shift every letter forward
// @Summary Trace a Caesar encryption
// @Tags Classical
// @Accept json
// @Produce json
// @Param requestBody body CaesarRequest true "Text and optional shift (default 3)"
// @Success 200 {object} cryptoalg.CaesarResult
// @Failure 400 {object} ErrorResponse
// @Router /classical/caesar [post]
func (h *classicalHandler) CaesarEncrypt(ctx *gin.Context) {
	h.caesar(ctx, cryptoalg.ModeEncrypt, h.processor.CaesarEncrypt)
}

// CaesarDecrypt handles the POST request to shift every letter back
// @Summary Trace a Caesar decryption
// @Tags Classical
// @Accept json
// @Produce json
// @Param requestBody body CaesarRequest true "Ciphertext and optional shift (default 3)"
// @Success 200 {object} cryptoalg.CaesarResult
// @Failure 400 {object} ErrorResponse
// @Router /classical/caesar/decrypt [post]
func (h *classicalHandler) CaesarDecrypt(ctx *gin.Context) {
	h.caesar(ctx, cryptoalg.ModeDecrypt, h.processor.CaesarDecrypt)
}

func (h *classicalHandler) caesar(ctx *gin.Context, mode string, run func(string, int) (*cryptoalg.CaesarResult, error)) {
	var request CaesarRequest
	if !h.bind(ctx, "caesar", mode, &request) {
		return
	}

	shift := h.defaultShift
	if request.Shift != nil {
		shift = *request.Shift
	}

	result, err := run(request.Text, shift)
	h.respond(ctx, "caesar", mode, result, err)
}

// Monoalphabetic handles the POST request to substitute through a keyword alphabet
// @Summary Trace a keyword monoalphabetic substitution
// @Tags Classical
// @Accept json
// @Produce json
// @Param requestBody body TextKeyRequest true "Text and keyword"
// @Success 200 {object} cryptoalg.MonoalphabeticResult
// @Failure 400 {object} ErrorResponse
// @Router /classical/monoalphabetic [post]
func (h *classicalHandler) Monoalphabetic(ctx *gin.Context) {
	var request TextKeyRequest
	if !h.bind(ctx, "monoalphabetic", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.processor.MonoalphabeticEncrypt(request.Text, request.Key)
	h.respond(ctx, "monoalphabetic", cryptoalg.ModeEncrypt, result, err)
}

// VigenereEncrypt handles the POST request to encrypt with a repeating key
// @Router /classical/vigenere [post]
func (h *classicalHandler) VigenereEncrypt(ctx *gin.Context) {
	keyed(h, ctx, "vigenere", cryptoalg.ModeEncrypt, h.processor.VigenereEncrypt)
}

// VigenereDecrypt handles the POST request to decrypt with a repeating key
// @Router /classical/vigenere/decrypt [post]
func (h *classicalHandler) VigenereDecrypt(ctx *gin.Context) {
	keyed(h, ctx, "vigenere", cryptoalg.ModeDecrypt, h.processor.VigenereDecrypt)
}

// VernamEncrypt handles the POST request to add a letter key; an empty key is generated
// @Router /classical/vernam [post]
func (h *classicalHandler) VernamEncrypt(ctx *gin.Context) {
	var request OptionalKeyRequest
	if !h.bind(ctx, "vernam", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.processor.VernamEncrypt(request.Text, request.Key)
	h.respond(ctx, "vernam", cryptoalg.ModeEncrypt, result, err)
}

// VernamDecrypt handles the POST request to subtract a letter key
// @Router /classical/vernam/decrypt [post]
func (h *classicalHandler) VernamDecrypt(ctx *gin.Context) {
	keyed(h, ctx, "vernam", cryptoalg.ModeDecrypt, h.processor.VernamDecrypt)
}

// OTPEncrypt handles the POST request to XOR text with a key; an empty key is generated
// @Router /classical/otp [post]
func (h *classicalHandler) OTPEncrypt(ctx *gin.Context) {
	var request OptionalKeyRequest
	if !h.bind(ctx, "otp", cryptoalg.ModeEncrypt, &request) {
		return
	}

	result, err := h.processor.OTPEncrypt(request.Text, request.Key)
	h.respond(ctx, "otp", cryptoalg.ModeEncrypt, result, err)
}

// OTPDecrypt handles the POST request to XOR hex ciphertext with a hex key
// @Router /classical/otp/decrypt [post]
func (h *classicalHandler) OTPDecrypt(ctx *gin.Context) {
	var request OTPDecryptRequest
	if !h.bind(ctx, "otp", cryptoalg.ModeDecrypt, &request) {
		return
	}

	result, err := h.processor.OTPDecrypt(request.CiphertextHex, request.KeyHex)
	h.respond(ctx, "otp", cryptoalg.ModeDecrypt, result, err)
}

// PlayfairEncrypt handles the POST request to encrypt digraphs through a 5x5 key square
// @Router /classical/playfair [post]
func (h *classicalHandler) PlayfairEncrypt(ctx *gin.Context) {
	keyed(h, ctx, "playfair", cryptoalg.ModeEncrypt, h.processor.PlayfairEncrypt)
}

// PlayfairDecrypt handles the POST request to reverse the Playfair rules
// @Router /classical/playfair/decrypt [post]
func (h *classicalHandler) PlayfairDecrypt(ctx *gin.Context) {
	keyed(h, ctx, "playfair", cryptoalg.ModeDecrypt, h.processor.PlayfairDecrypt)
}

// HillEncrypt handles the POST request to multiply letter triplets by a 3x3 key matrix
// @Router /classical/hill [post]
func (h *classicalHandler) HillEncrypt(ctx *gin.Context) {
	keyed(h, ctx, "hill", cryptoalg.ModeEncrypt, h.processor.HillEncrypt)
}

// HillDecrypt handles the POST request to multiply triplets by the inverse key matrix
// @Router /classical/hill/decrypt [post]
func (h *classicalHandler) HillDecrypt(ctx *gin.Context) {
	keyed(h, ctx, "hill", cryptoalg.ModeDecrypt, h.processor.HillDecrypt)
}

// RailFence handles the POST request to write text in a zigzag over the rails
// @Summary Trace a rail fence transposition
// @Tags Classical
// @Accept json
// @Produce json
// @Param requestBody body RailFenceRequest true "Text and optional rail count (default 3)"
// @Success 200 {object} cryptoalg.RailFenceResult
// @Failure 400 {object} ErrorResponse
// @Router /classical/rail-fence [post]
func (h *classicalHandler) RailFence(ctx *gin.Context) {
	var request RailFenceRequest
	if !h.bind(ctx, "rail-fence", cryptoalg.ModeEncrypt, &request) {
		return
	}

	rails := h.defaultRails
	if request.Rails != nil {
		rails = *request.Rails
	}

	result, err := h.processor.RailFenceEncrypt(request.Text, rails)
	h.respond(ctx, "rail-fence", cryptoalg.ModeEncrypt, result, err)
}

// RowTransposition handles the POST request to read a keyed grid column by column
// @Router /classical/row-transposition [post]
func (h *classicalHandler) RowTransposition(ctx *gin.Context) {
	keyed(h, ctx, "row-transposition", cryptoalg.ModeEncrypt, h.processor.RowTranspositionEncrypt)
}

// keyed serves the ciphers that take a required text and key
func keyed[T any](h *classicalHandler, ctx *gin.Context, algorithm, mode string, run func(text, key string) (*T, error)) {
	var request TextKeyRequest
	if !h.bind(ctx, algorithm, mode, &request) {
		return
	}

	result, err := run(request.Text, request.Key)
	h.respond(ctx, algorithm, mode, result, err)
}
