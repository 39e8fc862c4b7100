package address

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/crypto/blake2b"
)

const (
	ss58SimplePrefixMax = 63
	ss58PrefixMax       = 16383
	ss58ChecksumLen     = 2
)

//nolint:gochecknoglobals
var ss58Context = []byte("SS58PRE")

// SS58Address encodes a 32 byte public key for the network prefix
func SS58Address(prefix uint16, pub []byte) (string, error) {
	var prefixBytes []byte
	switch {
	case prefix <= ss58SimplePrefixMax:
		prefixBytes = []byte{byte(prefix)}
	case prefix <= ss58PrefixMax:
		prefixBytes = []byte{
			byte((prefix&0b1111_1100)>>2) | 0b0100_0000,
			byte(prefix>>8) | byte((prefix&0b11)<<6),
		}
	default:
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "SS58 prefix %d is out of range", prefix)
	}

	payload := append(prefixBytes, pub...)
	checksum := blake2b.Sum512(append(append([]byte(nil), ss58Context...), payload...))

	return base58.Encode(append(payload, checksum[:ss58ChecksumLen]...)), nil
}
