package address

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// Service encodes secp256k1 keys into the address and wire formats of one coin
type Service interface {
	// Address encodes the public key with the address type of the coin
	Address(pub *btcec.PublicKey) (string, error)

	// WIF encodes the private key in wallet import format, "" if the coin has none
	WIF(priv *btcec.PrivateKey) (string, error)
}
