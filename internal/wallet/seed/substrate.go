package seed

import (
	"crypto/sha512"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const miniSecretLen = 32

// substrateProvider implements BIP39 mnemonics with the Substrate mini secret
type substrateProvider struct{}

// NewSubstrateProvider creates the Substrate mnemonic provider
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSubstrateProvider() Provider {
	return substrateProvider{}
}

// Generate creates a new random mnemonic of wordsNum words
func (substrateProvider) Generate(wordsNum int) (string, error) {
	return generateBip39(wordsNum)
}

// Validate checks the mnemonic words and checksum
func (substrateProvider) Validate(mnemonic string) error {
	return validateBip39(mnemonic)
}

// ToSeed returns the 32 byte mini secret key: the first half of
// PBKDF2(entropy, "mnemonic" + passphrase, 2048, 64)
func (substrateProvider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(Normalize(mnemonic))
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	seed := pbkdf2.Key(
		entropy,
		[]byte(bip39SaltPrefix+norm.NFKD.String(passphrase)),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	return seed[:miniSecretLen], nil
}
