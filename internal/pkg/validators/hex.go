package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// HexSpacedTag is the struct tag name under which HexSpacedValidation is registered
const HexSpacedTag = "hexspaced"

// HexSpacedValidation accepts strings made only of hex digits and whitespace,
// the way block-cipher inputs are typed by hand ("13 34 57 79").
func HexSpacedValidation(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		case r == ' ', r == '\t', r == '\n':
		default:
			return false
		}
	}
	return true
}

// HashAlgorithmTag is the struct tag name under which HashAlgorithmValidation is registered
const HashAlgorithmTag = "hashalg"

var supportedHashes = map[string]struct{}{
	"md5": {}, "sha1": {}, "sha256": {}, "sha512": {}, "sha3-256": {}, "blake2b-256": {},
}

// HashAlgorithmValidation accepts the HMAC hash names understood by the engine, case-insensitively.
func HashAlgorithmValidation(fl validator.FieldLevel) bool {
	_, ok := supportedHashes[strings.ToLower(fl.Field().String())]
	return ok
}

// New returns a validator with the engine's custom rules registered
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(HexSpacedTag, HexSpacedValidation)
	_ = v.RegisterValidation(HashAlgorithmTag, HashAlgorithmValidation)
	return v
}
