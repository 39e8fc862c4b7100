package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet"
)

const (
	cashAddrCharset      = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	cashAddrChecksumLen  = 8
	cashAddrChecksumMask = 0x07ffffffff
)

//nolint:gochecknoglobals
var cashAddrGenerators = [5]uint64{0x98f2bc8e61, 0x79b76d99e2, 0xf33e5fb3c4, 0xae2eabe2a8, 0x1e4f43e470}

// CashAddr encodes a hash with the Bitcoin Cash address format
func CashAddr(prefix string, version byte, hash []byte) (string, error) {
	data, err := bech32.ConvertBits(append([]byte{version}, hash...), 8, 5, true) //nolint:mnd
	if err != nil {
		return "", errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	checksumInput := make([]byte, 0, len(prefix)+1+len(data)+cashAddrChecksumLen)
	for i := range len(prefix) {
		checksumInput = append(checksumInput, prefix[i]&0x1f) //nolint:mnd
	}
	checksumInput = append(checksumInput, 0)
	checksumInput = append(checksumInput, data...)
	checksumInput = append(checksumInput, make([]byte, cashAddrChecksumLen)...)

	mod := cashAddrPolymod(checksumInput)
	for i := range cashAddrChecksumLen {
		data = append(data, byte((mod>>(5*(cashAddrChecksumLen-1-i)))&0x1f)) //nolint:mnd
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, d := range data {
		sb.WriteByte(cashAddrCharset[d])
	}

	return sb.String(), nil
}

func cashAddrPolymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)                               //nolint:mnd
		c = ((c & cashAddrChecksumMask) << 5) ^ uint64(d) //nolint:mnd

		for i, g := range cashAddrGenerators {
			if c0&(1<<i) != 0 {
				c ^= g
			}
		}
	}

	return c ^ 1
}
