package seed

import (
	"crypto/sha512"
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + password, 2048, 64, SHA512)
const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64
	bip39SaltPrefix  = "mnemonic"

	entropyBitsPerWord = 32 // entropy bits per 3 words
	wordsPerGroup      = 3
)

// Bip39WordsNums are the word counts accepted by BIP39 mnemonics
//
//nolint:gochecknoglobals
var Bip39WordsNums = []int{12, 15, 18, 21, 24}

// bip39Provider implements BIP39 mnemonics
type bip39Provider struct{}

// NewBip39Provider creates the BIP39 mnemonic provider
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewBip39Provider() Provider {
	return bip39Provider{}
}

// Generate creates a new random mnemonic of wordsNum words
func (bip39Provider) Generate(wordsNum int) (string, error) {
	return generateBip39(wordsNum)
}

// Validate checks the mnemonic words and checksum
func (bip39Provider) Validate(mnemonic string) error {
	return validateBip39(mnemonic)
}

// ToSeed converts mnemonic and passphrase into the 64 byte BIP39 seed
func (p bip39Provider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	if err := p.Validate(mnemonic); err != nil {
		return nil, err
	}

	seed := pbkdf2.Key(
		[]byte(Normalize(mnemonic)),
		[]byte(bip39SaltPrefix+norm.NFKD.String(passphrase)),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	return seed, nil
}

func generateBip39(wordsNum int) (string, error) {
	if !slices.Contains(Bip39WordsNums, wordsNum) {
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid words number %d", wordsNum)
	}

	entropy, err := bip39.NewEntropy(wordsNum / wordsPerGroup * entropyBitsPerWord)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

func validateBip39(mnemonic string) error {
	if !bip39.IsMnemonicValid(Normalize(mnemonic)) {
		return errors.Wrap(wallet.ErrInvalidKeyMaterial, "invalid BIP39 mnemonic")
	}

	return nil
}

// Normalize applies NFKD and collapses white space
func Normalize(mnemonic string) string {
	return strings.Join(strings.Fields(norm.NFKD.String(mnemonic)), " ")
}

// normalizeElectrum additionally lower cases and drops combining marks
func normalizeElectrum(s string) string {
	s = strings.ToLower(norm.NFKD.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}

		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
