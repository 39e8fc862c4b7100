package seed

import (
	"crypto/rand"
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/crypto/electrumv1"
	"github/chapool/go-hdwallet/internal/wallet"
)

// ElectrumV1WordsNum is the length of Electrum V1 mnemonics
const ElectrumV1WordsNum = 12

// electrumV1Provider implements the 12 word Electrum V1 mnemonics over a wordlist
type electrumV1Provider struct {
	wl *Wordlist
}

// NewElectrumV1Provider creates the Electrum V1 mnemonic provider of wl
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewElectrumV1Provider(wl *Wordlist) Provider {
	return electrumV1Provider{wl: wl}
}

// Generate creates the mnemonic of a random 16 byte seed
func (p electrumV1Provider) Generate(wordsNum int) (string, error) {
	if wordsNum != ElectrumV1WordsNum {
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid words number %d", wordsNum)
	}

	seed := make([]byte, electrumv1.SeedLen)
	if _, err := rand.Read(seed); err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	return ElectrumV1Mnemonic(p.wl, seed)
}

// ElectrumV1Mnemonic returns the mnemonic of a 16 byte seed
func ElectrumV1Mnemonic(wl *Wordlist, seed []byte) (string, error) {
	if len(seed) != electrumv1.SeedLen {
		return "", errors.Wrapf(wallet.ErrInvalidKeyMaterial, "seed must be %d bytes, got %d", electrumv1.SeedLen, len(seed))
	}

	words := make([]string, 0, ElectrumV1WordsNum)
	for i := 0; i < len(seed); i += chunkLen {
		words = append(words, wl.encodeUint32(binary.BigEndian.Uint32(seed[i:i+chunkLen]))...)
	}

	return strings.Join(words, " "), nil
}

// Validate checks that every word is known and every triple is in range
func (p electrumV1Provider) Validate(mnemonic string) error {
	_, err := p.decode(mnemonic)

	return err
}

// ToSeed returns the 16 byte seed encoded by the mnemonic. Passphrases are
// not supported.
func (p electrumV1Provider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	if passphrase != "" {
		return nil, errors.Wrap(wallet.ErrUnsupportedParameter, "electrum v1 mnemonics do not support a passphrase")
	}

	return p.decode(mnemonic)
}

func (p electrumV1Provider) decode(mnemonic string) ([]byte, error) {
	words := strings.Fields(strings.ToLower(Normalize(mnemonic)))
	if len(words) != ElectrumV1WordsNum {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "electrum v1 mnemonic must have %d words, got %d",
			ElectrumV1WordsNum, len(words))
	}

	idx, err := p.wl.indexes(words)
	if err != nil {
		return nil, err
	}

	seed := make([]byte, 0, electrumv1.SeedLen)
	for i := 0; i < len(idx); i += wordsPerChunk {
		x, err := decodeUint32(idx[i], idx[i+1], idx[i+2])
		if err != nil {
			return nil, err
		}
		seed = binary.BigEndian.AppendUint32(seed, x)
	}

	return seed, nil
}
