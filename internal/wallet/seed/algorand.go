package seed

import (
	"crypto/rand"
	"crypto/sha512"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/go-hdwallet/internal/wallet"
)

const (
	// AlgorandWordsNum is the length of Algorand mnemonics
	AlgorandWordsNum = 25
	algorandKeyLen   = 32
	uint11Mask       = 0x7ff
)

// algorandProvider implements Algorand 25 word mnemonics
type algorandProvider struct{}

// NewAlgorandProvider creates the Algorand mnemonic provider
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewAlgorandProvider() Provider {
	return algorandProvider{}
}

// Generate creates a mnemonic of a random 32 byte key
func (algorandProvider) Generate(wordsNum int) (string, error) {
	if wordsNum != AlgorandWordsNum {
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid words number %d", wordsNum)
	}

	key := make([]byte, algorandKeyLen)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	return AlgorandMnemonic(key)
}

// Validate checks the mnemonic words and checksum word
func (algorandProvider) Validate(mnemonic string) error {
	_, err := algorandKey(mnemonic)

	return err
}

// ToSeed returns the 32 byte ed25519 seed encoded by the mnemonic. Algorand
// mnemonics have no passphrase.
func (algorandProvider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	if passphrase != "" {
		return nil, errors.Wrap(wallet.ErrUnsupportedParameter, "algorand mnemonics do not support a passphrase")
	}

	return algorandKey(mnemonic)
}

// AlgorandMnemonic encodes a 32 byte key as 24 data words and a checksum word
func AlgorandMnemonic(key []byte) (string, error) {
	if len(key) != algorandKeyLen {
		return "", errors.Wrapf(wallet.ErrInvalidKeyMaterial, "key must be %d bytes, got %d", algorandKeyLen, len(key))
	}

	wordlist := bip39.GetWordList()
	words := make([]string, 0, AlgorandWordsNum)
	for _, idx := range toUint11(key) {
		words = append(words, wordlist[idx])
	}
	words = append(words, wordlist[algorandChecksum(key)])

	return strings.Join(words, " "), nil
}

func algorandKey(mnemonic string) ([]byte, error) {
	words := strings.Fields(Normalize(mnemonic))
	if len(words) != AlgorandWordsNum {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "algorand mnemonic must have %d words, got %d",
			AlgorandWordsNum, len(words))
	}

	indexes := make([]uint32, 0, AlgorandWordsNum)
	for _, w := range words {
		idx, ok := bip39.GetWordIndex(w)
		if !ok {
			return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "unknown word %q", w)
		}
		indexes = append(indexes, uint32(idx)) //nolint:gosec
	}

	// 24 words carry 264 bits, the last byte must be zero
	b := fromUint11(indexes[:AlgorandWordsNum-1])
	if len(b) != algorandKeyLen+1 || b[algorandKeyLen] != 0 {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, "invalid algorand mnemonic")
	}
	key := b[:algorandKeyLen]

	if indexes[AlgorandWordsNum-1] != algorandChecksum(key) {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, "invalid algorand mnemonic checksum")
	}

	return key, nil
}

func algorandChecksum(key []byte) uint32 {
	h := sha512.Sum512_256(key)

	return toUint11(h[:2])[0]
}

// toUint11 splits b into 11 bit values, little endian bit order
func toUint11(b []byte) []uint32 {
	var (
		out    []uint32
		buffer uint32
		nbits  uint
	)

	for _, v := range b {
		buffer |= uint32(v) << nbits
		nbits += 8
		if nbits >= 11 {
			out = append(out, buffer&uint11Mask)
			buffer >>= 11
			nbits -= 11
		}
	}

	if nbits != 0 {
		out = append(out, buffer&uint11Mask)
	}

	return out
}

// fromUint11 joins 11 bit values into bytes, little endian bit order
func fromUint11(values []uint32) []byte {
	var (
		out    []byte
		buffer uint32
		nbits  uint
	)

	for _, v := range values {
		buffer |= v << nbits
		nbits += 11
		for nbits >= 8 {
			out = append(out, byte(buffer))
			buffer >>= 8
			nbits -= 8
		}
	}

	if nbits != 0 {
		out = append(out, byte(buffer))
	}

	return out
}
