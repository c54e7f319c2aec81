package v1

import (
	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	engine *app.Engine,
	runRecorderService runs.RunRecorderService,
	runMetadataService runs.RunMetadataService,
	logger logger.Logger) {

	v1 := r.Group(BasePath)
	settings := engine.Settings

	classical := NewClassicalHandler(engine.Classical, runRecorderService, logger,
		settings.MaxTextLength, settings.DefaultCaesarShift, settings.DefaultRailCount)
	v1.POST("/classical/caesar", classical.CaesarEncrypt)
	v1.POST("/classical/caesar/decrypt", classical.CaesarDecrypt)
	v1.POST("/classical/monoalphabetic", classical.Monoalphabetic)
	v1.POST("/classical/vigenere", classical.VigenereEncrypt)
	v1.POST("/classical/vigenere/decrypt", classical.VigenereDecrypt)
	v1.POST("/classical/vernam", classical.VernamEncrypt)
	v1.POST("/classical/vernam/decrypt", classical.VernamDecrypt)
	v1.POST("/classical/otp", classical.OTPEncrypt)
	v1.POST("/classical/otp/decrypt", classical.OTPDecrypt)
	v1.POST("/classical/playfair", classical.PlayfairEncrypt)
	v1.POST("/classical/playfair/decrypt", classical.PlayfairDecrypt)
	v1.POST("/classical/hill", classical.HillEncrypt)
	v1.POST("/classical/hill/decrypt", classical.HillDecrypt)
	v1.POST("/classical/rail-fence", classical.RailFence)
	v1.POST("/classical/row-transposition", classical.RowTransposition)

	block := NewBlockCipherHandler(engine.BlockCipher, runRecorderService, logger, settings.MaxTextLength)
	v1.POST("/block/aes", block.AESEncrypt)
	v1.POST("/block/des", block.DESEncrypt)

	publicKey := NewPublicKeyHandler(engine.RSA, engine.DH, engine.ElGamal, engine.DSA, runRecorderService, logger, settings.MaxTextLength)
	v1.POST("/rsa/keys", publicKey.RSAKeys)
	v1.POST("/rsa/encrypt", publicKey.RSAEncrypt)
	v1.POST("/rsa/decrypt", publicKey.RSADecrypt)
	v1.POST("/dh/setup", publicKey.DHSetup)
	v1.POST("/dh/keys", publicKey.DHKeys)
	v1.POST("/dh/secret", publicKey.DHSecret)
	v1.POST("/elgamal/keys", publicKey.ElGamalKeys)
	v1.POST("/elgamal/encrypt", publicKey.ElGamalEncrypt)
	v1.POST("/elgamal/decrypt", publicKey.ElGamalDecrypt)
	v1.POST("/dsa/setup", publicKey.DSASetup)
	v1.POST("/dsa/keys", publicKey.DSAKeys)
	v1.POST("/dsa/sign", publicKey.DSASign)
	v1.POST("/dsa/verify", publicKey.DSAVerify)

	ecc := NewECCHandler(engine.ECC, runRecorderService, logger)
	v1.GET("/ecc/params", ecc.Params)
	v1.POST("/ecc/points", ecc.Points)
	v1.POST("/ecc/multiply", ecc.Multiply)
	v1.POST("/ecc/keys", ecc.Keys)
	v1.POST("/ecc/shared-secret", ecc.SharedSecret)

	primitives := NewPrimitivesHandler(engine.HMAC, engine.PRNG, engine.Entropy, engine.IPsec, runRecorderService, logger, settings)
	v1.POST("/hmac", primitives.HMAC)
	v1.POST("/prng/lcg", primitives.LCG)
	v1.GET("/entropy/system", primitives.SystemEntropy)
	v1.POST("/entropy/mix", primitives.MixEntropy)
	v1.GET("/ipsec/layout", primitives.IPsecLayout)

	runHandler := NewRunHandler(runMetadataService)
	v1.GET("/runs", runHandler.ListMetadata)
	v1.GET("/runs/:id", runHandler.GetMetadataByID)
	v1.GET("/runs/:id/trace", runHandler.GetTraceByID)
	v1.DELETE("/runs/:id", runHandler.DeleteByID)
}
