package sr25519

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// ErrInvalidPath is returned for malformed derivation paths
var ErrInvalidPath = errors.New("invalid derivation path")

// Junction is one step of a Substrate derivation path
type Junction struct {
	ChainCode [KeyLen]byte
	Hard      bool
}

// ParsePath parses a path like "//polkadot//0/1". Passwords ("///") are not supported.
func ParsePath(path string) ([]Junction, error) {
	if path == "" {
		return nil, nil
	}

	if !strings.HasPrefix(path, "/") {
		return nil, errors.Wrapf(ErrInvalidPath, "%q must start with /", path)
	}

	var junctions []Junction
	rest := path
	for rest != "" {
		hard := strings.HasPrefix(rest, "//")
		if hard {
			rest = rest[2:]
		} else {
			rest = rest[1:]
		}

		if strings.HasPrefix(rest, "/") {
			return nil, errors.Wrapf(ErrInvalidPath, "%q: passwords are not supported", path)
		}

		end := strings.IndexByte(rest, '/')
		if end < 0 {
			end = len(rest)
		}

		code := rest[:end]
		rest = rest[end:]

		if code == "" {
			return nil, errors.Wrapf(ErrInvalidPath, "%q has an empty junction", path)
		}

		j, err := NewJunction(code, hard)
		if err != nil {
			return nil, err
		}
		junctions = append(junctions, j)
	}

	return junctions, nil
}

// NewJunction builds a junction from its textual code. Numeric codes are
// encoded as u64, other codes as SCALE strings; encodings longer than 32
// bytes are hashed with blake2b-256.
func NewJunction(code string, hard bool) (Junction, error) {
	var encoded []byte
	if n, err := strconv.ParseUint(code, 10, 64); err == nil {
		encoded = binary.LittleEndian.AppendUint64(nil, n)
	} else {
		prefix, err := compactLen(len(code))
		if err != nil {
			return Junction{}, err
		}
		encoded = append(prefix, code...)
	}

	j := Junction{Hard: hard}
	if len(encoded) > KeyLen {
		j.ChainCode = blake2b.Sum256(encoded)
	} else {
		copy(j.ChainCode[:], encoded)
	}

	return j, nil
}

// compactLen is the SCALE compact encoding of n
func compactLen(n int) ([]byte, error) {
	switch {
	case n < 1<<6:
		return []byte{byte(n << 2)}, nil
	case n < 1<<14:
		return binary.LittleEndian.AppendUint16(nil, uint16(n<<2|0b01)), nil
	case n < 1<<30:
		return binary.LittleEndian.AppendUint32(nil, uint32(n<<2|0b10)), nil
	default:
		return nil, errors.Wrapf(ErrInvalidPath, "junction of %d bytes is too long", n)
	}
}
