package wallet

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidKeyMaterial is returned when the root secret is malformed or does
	// not match the selected coin/spec (wrong length, version bytes, curve point)
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrUnsupportedParameter is returned when a generation option or a root
	// strategy is not supported by the selected spec
	ErrUnsupportedParameter = errors.New("unsupported parameter")
	// ErrInvalidDerivationIndex is returned when an index (or a path component)
	// is outside the range the derivation scheme can represent
	ErrInvalidDerivationIndex = errors.New("invalid derivation index")
	// ErrDerivation is returned when the underlying key derivation fails
	ErrDerivation = errors.New("derivation error")
	// ErrIOFailure is returned when the wallet document cannot be written
	ErrIOFailure = errors.New("io failure")
)

// Error kinds, as reported by ErrorKind
const (
	KindInvalidKeyMaterial   = "invalid_key_material"
	KindUnsupportedParameter = "unsupported_parameter"
	KindInvalidDerivationIdx = "invalid_derivation_index"
	KindDerivation           = "derivation"
	KindIOFailure            = "io_failure"
	KindUnknown              = "unknown"
)

// ErrorKind classifies err into one of the error kinds above
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidKeyMaterial):
		return KindInvalidKeyMaterial
	case errors.Is(err, ErrUnsupportedParameter):
		return KindUnsupportedParameter
	case errors.Is(err, ErrInvalidDerivationIndex):
		return KindInvalidDerivationIdx
	case errors.Is(err, ErrDerivation):
		return KindDerivation
	case errors.Is(err, ErrIOFailure):
		return KindIOFailure
	default:
		return KindUnknown
	}
}
