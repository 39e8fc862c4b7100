package seed

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/crypto/pbkdf2"
)

// ElectrumKind is the type of an Electrum V2 seed, encoded in its version prefix
type ElectrumKind string

// Electrum V2 seed version prefixes
const (
	ElectrumStandard ElectrumKind = "01"
	ElectrumSegwit   ElectrumKind = "100"
)

const (
	electrumSaltPrefix   = "electrum"
	electrumVersionKey   = "Seed version"
	electrumBitsPerWord  = 11
	electrumWordlistSize = 2048
)

// electrumProvider implements Electrum V2 mnemonics
type electrumProvider struct {
	kind ElectrumKind
}

// NewElectrumV2Provider creates the Electrum V2 mnemonic provider of kind
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewElectrumV2Provider(kind ElectrumKind) Provider {
	return electrumProvider{kind: kind}
}

// Generate creates a random mnemonic of wordsNum (12 or 24) words with the
// version prefix of the provider kind
func (p electrumProvider) Generate(wordsNum int) (string, error) {
	if wordsNum != 12 && wordsNum != 24 { //nolint:mnd
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid words number %d", wordsNum)
	}

	bits := wordsNum * electrumBitsPerWord
	upper := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	lower := new(big.Int).Lsh(big.NewInt(1), uint(bits-electrumBitsPerWord))

	// entropy below lower would encode to fewer words
	var entropy *big.Int
	for entropy == nil || entropy.Cmp(lower) < 0 {
		n, err := rand.Int(rand.Reader, upper)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate entropy")
		}
		entropy = n
	}

	one := big.NewInt(1)
	for i := new(big.Int).Set(entropy); ; i.Add(i, one) {
		mnemonic := encodeElectrum(i)
		if p.Validate(mnemonic) == nil {
			return mnemonic, nil
		}
	}
}

// Validate checks the seed version prefix of the mnemonic
func (p electrumProvider) Validate(mnemonic string) error {
	mac := hmac.New(sha512.New, []byte(electrumVersionKey))
	mac.Write([]byte(normalizeElectrum(mnemonic)))

	if !strings.HasPrefix(hex.EncodeToString(mac.Sum(nil)), string(p.kind)) {
		return errors.Wrapf(wallet.ErrInvalidKeyMaterial, "not an Electrum %s seed", p.kindName())
	}

	return nil
}

// ToSeed converts mnemonic and passphrase into the 64 byte Electrum seed
func (p electrumProvider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	if err := p.Validate(mnemonic); err != nil {
		return nil, err
	}

	seed := pbkdf2.Key(
		[]byte(normalizeElectrum(mnemonic)),
		[]byte(electrumSaltPrefix+normalizeElectrum(passphrase)),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	return seed, nil
}

func (p electrumProvider) kindName() string {
	if p.kind == ElectrumSegwit {
		return "segwit"
	}

	return "standard"
}

// encodeElectrum writes i in base 2048, least significant word first
func encodeElectrum(i *big.Int) string {
	wordlist := bip39.GetWordList()
	n := new(big.Int).Set(i)
	base := big.NewInt(electrumWordlistSize)
	rem := new(big.Int)

	var words []string
	for n.Sign() > 0 {
		n.DivMod(n, base, rem)
		words = append(words, wordlist[rem.Int64()])
	}

	return strings.Join(words, " ")
}
