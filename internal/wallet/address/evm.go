package address

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EthereumAddress returns the EIP-55 checksummed address of pub
func EthereumAddress(pub *btcec.PublicKey) string {
	// keccak256 of X||Y, last 20 bytes
	hash := crypto.Keccak256(pub.SerializeUncompressed()[1:])

	return common.BytesToAddress(hash[12:]).Hex()
}
