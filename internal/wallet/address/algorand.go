package address

import (
	"crypto/sha512"
	"encoding/base32"
)

const algorandChecksumLen = 4

// AlgorandAddress encodes a 32 byte ed25519 public key
func AlgorandAddress(pub []byte) string {
	checksum := sha512.Sum512_256(pub)
	data := append(append([]byte(nil), pub...), checksum[len(checksum)-algorandChecksumLen:]...)

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(data)
}
