package seed

import (
	"crypto/sha512"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/crypto/pbkdf2"
)

// Icarus master key generation: PBKDF2(passphrase, entropy, 4096, 96, SHA512)
const (
	icarusIterations = 4096
	icarusKeyLength  = 96
)

// icarusProvider implements BIP39 mnemonics with the Cardano Icarus seed
type icarusProvider struct{}

// NewIcarusProvider creates the Cardano Icarus mnemonic provider
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewIcarusProvider() Provider {
	return icarusProvider{}
}

// Generate creates a new random mnemonic of wordsNum words
func (icarusProvider) Generate(wordsNum int) (string, error) {
	return generateBip39(wordsNum)
}

// Validate checks the mnemonic words and checksum
func (icarusProvider) Validate(mnemonic string) error {
	return validateBip39(mnemonic)
}

// ToSeed returns the 96 bytes of Icarus master key material
func (icarusProvider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(Normalize(mnemonic))
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return pbkdf2.Key([]byte(passphrase), entropy, icarusIterations, icarusKeyLength, sha512.New), nil
}
