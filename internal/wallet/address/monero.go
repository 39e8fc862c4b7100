package address

import (
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	moneroAlphabet    = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	moneroBlockLen    = 8
	moneroChecksumLen = 4
)

// encoded length of a block of 0..8 bytes
//
//nolint:gochecknoglobals
var moneroEncodedBlockLen = [moneroBlockLen + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

// MoneroAddress returns the address of a spend/view public key pair under netVer
func MoneroAddress(netVer byte, pubSpend, pubView []byte) string {
	data := make([]byte, 0, 1+len(pubSpend)+len(pubView)+moneroChecksumLen)
	data = append(data, netVer)
	data = append(data, pubSpend...)
	data = append(data, pubView...)
	data = append(data, crypto.Keccak256(data)[:moneroChecksumLen]...)

	return MoneroBase58(data)
}

// MoneroBase58 encodes data in 8 byte blocks, each block to a fixed number of characters
func MoneroBase58(data []byte) string {
	out := make([]byte, 0, len(data)/moneroBlockLen*moneroEncodedBlockLen[moneroBlockLen]+moneroEncodedBlockLen[moneroBlockLen])
	for len(data) > 0 {
		n := min(moneroBlockLen, len(data))
		out = append(out, encodeMoneroBlock(data[:n])...)
		data = data[n:]
	}

	return string(out)
}

func encodeMoneroBlock(block []byte) []byte {
	var num uint64
	for _, b := range block {
		num = num<<8 | uint64(b)
	}

	out := make([]byte, moneroEncodedBlockLen[len(block)])
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = moneroAlphabet[num%58]
		num /= 58
	}

	return out
}
