package v1

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"error"`
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validators.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateRequest reports the first failing field as a short message, e.g. "Missing text"
func validateRequest(request any) error {
	err := requestValidator.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validation error: %w", err)
	}

	fieldErr := validationErrors[0]
	switch fieldErr.Tag() {
	case "required":
		return fmt.Errorf("Missing %s", fieldErr.Field())
	case validators.HexSpacedTag:
		return fmt.Errorf("%s must be hexadecimal", fieldErr.Field())
	case validators.HashAlgorithmTag:
		return fmt.Errorf("Unsupported hash algorithm %q", fieldErr.Value())
	default:
		return fmt.Errorf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag())
	}
}

// CaesarRequest is the body of the Caesar routes. Shift defaults to 3.
type CaesarRequest struct {
	Text  string `json:"text" validate:"required"`
	Shift *int   `json:"shift"`
}

// Validate for validating CaesarRequest struct
func (r *CaesarRequest) Validate() error {
	return validateRequest(r)
}

func (r *CaesarRequest) textFields() []string {
	return []string{r.Text}
}

// TextKeyRequest serves every classical cipher that needs both a text and a key
type TextKeyRequest struct {
	Text string `json:"text" validate:"required"`
	Key  string `json:"key" validate:"required"`
}

// Validate for validating TextKeyRequest struct
func (r *TextKeyRequest) Validate() error {
	return validateRequest(r)
}

func (r *TextKeyRequest) textFields() []string {
	return []string{r.Text, r.Key}
}

// OptionalKeyRequest serves Vernam and OTP encryption; an empty key is generated
type OptionalKeyRequest struct {
	Text string `json:"text" validate:"required"`
	Key  string `json:"key"`
}

// Validate for validating OptionalKeyRequest struct
func (r *OptionalKeyRequest) Validate() error {
	return validateRequest(r)
}

func (r *OptionalKeyRequest) textFields() []string {
	return []string{r.Text, r.Key}
}

// OTPDecryptRequest carries hex ciphertext and the hex key it was produced with
type OTPDecryptRequest struct {
	CiphertextHex string `json:"ciphertext_hex" validate:"required,hexspaced"`
	KeyHex        string `json:"key_hex" validate:"required,hexspaced"`
}

// Validate for validating OTPDecryptRequest struct
func (r *OTPDecryptRequest) Validate() error {
	return validateRequest(r)
}

func (r *OTPDecryptRequest) textFields() []string {
	return []string{r.CiphertextHex, r.KeyHex}
}

// RailFenceRequest is the body of the rail fence route. Rails defaults to 3.
type RailFenceRequest struct {
	Text  string `json:"text" validate:"required"`
	Rails *int   `json:"rails" validate:"omitempty,gte=2,lte=4096"`
}

// Validate for validating RailFenceRequest struct
func (r *RailFenceRequest) Validate() error {
	return validateRequest(r)
}

func (r *RailFenceRequest) textFields() []string {
	return []string{r.Text}
}

// DESRequest holds one 64-bit block and key as hex, spaces allowed
type DESRequest struct {
	Text string `json:"text" validate:"required,hexspaced"`
	Key  string `json:"key" validate:"required,hexspaced"`
}

// Validate for validating DESRequest struct
func (r *DESRequest) Validate() error {
	return validateRequest(r)
}

type RSAKeysRequest struct {
	P *big.Int `json:"p" validate:"required"`
	Q *big.Int `json:"q" validate:"required"`
}

// Validate for validating RSAKeysRequest struct
func (r *RSAKeysRequest) Validate() error {
	return validateRequest(r)
}

type RSAEncryptRequest struct {
	Text string   `json:"text" validate:"required"`
	E    *big.Int `json:"e" validate:"required"`
	N    *big.Int `json:"n" validate:"required"`
}

// Validate for validating RSAEncryptRequest struct
func (r *RSAEncryptRequest) Validate() error {
	return validateRequest(r)
}

func (r *RSAEncryptRequest) textFields() []string {
	return []string{r.Text}
}

type RSADecryptRequest struct {
	Ciphertext []*big.Int `json:"ciphertext" validate:"required,min=1,dive,required"`
	D          *big.Int   `json:"d" validate:"required"`
	N          *big.Int   `json:"n" validate:"required"`
}

// Validate for validating RSADecryptRequest struct
func (r *RSADecryptRequest) Validate() error {
	return validateRequest(r)
}

// DHSetupRequest leaves p and g optional; missing values are chosen by the engine
type DHSetupRequest struct {
	P *big.Int `json:"p"`
	G *big.Int `json:"g"`
}

// Validate for validating DHSetupRequest struct
func (r *DHSetupRequest) Validate() error {
	if r.P == nil && r.G != nil {
		return fmt.Errorf("g requires p")
	}
	return validateRequest(r)
}

type DHKeysRequest struct {
	P *big.Int `json:"p" validate:"required"`
	G *big.Int `json:"g" validate:"required"`
	A *big.Int `json:"a"`
	B *big.Int `json:"b"`
}

// Validate for validating DHKeysRequest struct
func (r *DHKeysRequest) Validate() error {
	return validateRequest(r)
}

type DHSecretRequest struct {
	P       *big.Int `json:"p" validate:"required"`
	A       *big.Int `json:"a" validate:"required"`
	B       *big.Int `json:"b" validate:"required"`
	PublicA *big.Int `json:"public_a" validate:"required"`
	PublicB *big.Int `json:"public_b" validate:"required"`
}

// Validate for validating DHSecretRequest struct
func (r *DHSecretRequest) Validate() error {
	return validateRequest(r)
}

type ElGamalKeysRequest struct {
	P *big.Int `json:"p" validate:"required"`
	G *big.Int `json:"g" validate:"required"`
	X *big.Int `json:"x"`
}

// Validate for validating ElGamalKeysRequest struct
func (r *ElGamalKeysRequest) Validate() error {
	return validateRequest(r)
}

type ElGamalEncryptRequest struct {
	Text string   `json:"text" validate:"required"`
	P    *big.Int `json:"p" validate:"required"`
	G    *big.Int `json:"g" validate:"required"`
	Y    *big.Int `json:"y" validate:"required"`
}

// Validate for validating ElGamalEncryptRequest struct
func (r *ElGamalEncryptRequest) Validate() error {
	return validateRequest(r)
}

func (r *ElGamalEncryptRequest) textFields() []string {
	return []string{r.Text}
}

type ElGamalDecryptRequest struct {
	Pairs []cryptoalg.ElGamalPair `json:"pairs" validate:"required,min=1"`
	P     *big.Int                `json:"p" validate:"required"`
	X     *big.Int                `json:"x" validate:"required"`
}

// Validate for validating ElGamalDecryptRequest struct
func (r *ElGamalDecryptRequest) Validate() error {
	return validateRequest(r)
}

// DSAParamsRequest carries the domain parameters (p, q, g)
type DSAParamsRequest struct {
	P *big.Int `json:"p" validate:"required"`
	Q *big.Int `json:"q" validate:"required"`
	G *big.Int `json:"g" validate:"required"`
}

func (r DSAParamsRequest) params() cryptoalg.DSAParams {
	return cryptoalg.DSAParams{P: r.P, Q: r.Q, G: r.G}
}

type DSAKeysRequest struct {
	DSAParamsRequest
}

// Validate for validating DSAKeysRequest struct
func (r *DSAKeysRequest) Validate() error {
	return validateRequest(r)
}

type DSASignRequest struct {
	DSAParamsRequest
	Message string   `json:"message" validate:"required"`
	X       *big.Int `json:"x" validate:"required"`
}

// Validate for validating DSASignRequest struct
func (r *DSASignRequest) Validate() error {
	return validateRequest(r)
}

func (r *DSASignRequest) textFields() []string {
	return []string{r.Message}
}

type DSAVerifyRequest struct {
	DSAParamsRequest
	Message string   `json:"message" validate:"required"`
	Y       *big.Int `json:"y" validate:"required"`
	R       *big.Int `json:"r" validate:"required"`
	S       *big.Int `json:"s" validate:"required"`
}

// Validate for validating DSAVerifyRequest struct
func (r *DSAVerifyRequest) Validate() error {
	return validateRequest(r)
}

func (r *DSAVerifyRequest) textFields() []string {
	return []string{r.Message}
}

// ECCCurveRequest is embedded by every ECC request; a missing curve means the default one
type ECCCurveRequest struct {
	Curve *cryptoalg.Curve `json:"curve"`
}

func (r ECCCurveRequest) curve() cryptoalg.Curve {
	if r.Curve == nil {
		return cryptoalg.DefaultCurve()
	}
	return *r.Curve
}

type ECCPointsRequest struct {
	ECCCurveRequest
}

// Validate for validating ECCPointsRequest struct
func (r *ECCPointsRequest) Validate() error {
	return validateRequest(r)
}

// ECCMultiplyRequest computes k*P; P defaults to the base point G
type ECCMultiplyRequest struct {
	ECCCurveRequest
	K     *big.Int           `json:"k" validate:"required"`
	Point *cryptoalg.ECPoint `json:"point"`
}

// Validate for validating ECCMultiplyRequest struct
func (r *ECCMultiplyRequest) Validate() error {
	return validateRequest(r)
}

type ECCKeysRequest struct {
	ECCCurveRequest
	D *big.Int `json:"d"`
}

// Validate for validating ECCKeysRequest struct
func (r *ECCKeysRequest) Validate() error {
	return validateRequest(r)
}

type ECCSharedSecretRequest struct {
	ECCCurveRequest
	D *big.Int           `json:"d" validate:"required"`
	Q *cryptoalg.ECPoint `json:"public_key" validate:"required"`
}

// Validate for validating ECCSharedSecretRequest struct
func (r *ECCSharedSecretRequest) Validate() error {
	return validateRequest(r)
}

// HMACRequest computes an HMAC; Algorithm defaults to sha256
type HMACRequest struct {
	Key       string `json:"key" validate:"required"`
	Message   string `json:"message"`
	Algorithm string `json:"algorithm" validate:"omitempty,hashalg"`
}

// Validate for validating HMACRequest struct
func (r *HMACRequest) Validate() error {
	return validateRequest(r)
}

func (r *HMACRequest) textFields() []string {
	return []string{r.Key, r.Message}
}

// LCGRequest iterates the generator; N defaults to the configured sample count
type LCGRequest struct {
	M    *big.Int `json:"m" validate:"required"`
	A    *big.Int `json:"a" validate:"required"`
	C    *big.Int `json:"c" validate:"required"`
	Seed *big.Int `json:"seed" validate:"required"`
	N    *int     `json:"n"`
}

// Validate for validating LCGRequest struct
func (r *LCGRequest) Validate() error {
	return validateRequest(r)
}

type EntropyMixRequest struct {
	Events []cryptoalg.EntropyEvent `json:"events" validate:"required,min=1"`
}

// Validate for validating EntropyMixRequest struct
func (r *EntropyMixRequest) Validate() error {
	return validateRequest(r)
}

// RunMetaResponse describes one recorded run without its trace
type RunMetaResponse struct {
	ID              string    `json:"id"`
	Algorithm       string    `json:"algorithm"`
	Operation       string    `json:"operation"`
	Status          string    `json:"status"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	StepCount       int       `json:"step_count"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newRunMetaResponse(run *runs.RunMeta) RunMetaResponse {
	return RunMetaResponse{
		ID:              run.ID,
		Algorithm:       run.Algorithm,
		Operation:       run.Operation,
		Status:          run.Status,
		ErrorMessage:    run.ErrorMessage,
		StepCount:       run.StepCount,
		DateTimeCreated: run.DateTimeCreated,
	}
}
