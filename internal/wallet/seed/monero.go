package seed

import (
	"crypto/rand"
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/crypto/monerokeys"
	"github/chapool/go-hdwallet/internal/wallet"
)

const (
	// MoneroWordsNum is the length of Monero mnemonics with the checksum word
	MoneroWordsNum = 25
	// MoneroPrefixLen is the unique prefix length of the English Monero wordlist
	MoneroPrefixLen = 3

	moneroDataWordsNum = 24
	wordsPerChunk      = 3
	chunkLen           = 4
)

// moneroProvider implements Monero 25 word mnemonics over a wordlist
type moneroProvider struct {
	wl *Wordlist
}

// NewMoneroProvider creates the Monero mnemonic provider of wl
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewMoneroProvider(wl *Wordlist) Provider {
	return moneroProvider{wl: wl}
}

// Generate creates the mnemonic of a random private spend key. 24 words
// omit the checksum word.
func (p moneroProvider) Generate(wordsNum int) (string, error) {
	if wordsNum != MoneroWordsNum && wordsNum != moneroDataWordsNum {
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid words number %d", wordsNum)
	}

	entropy := make([]byte, monerokeys.KeyLen)
	if _, err := rand.Read(entropy); err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	keys, err := monerokeys.FromSeed(entropy)
	if err != nil {
		return "", errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	words := p.encode(keys.PrivateSpendKey())
	if wordsNum == MoneroWordsNum {
		words = append(words, p.checksumWord(words))
	}

	return strings.Join(words, " "), nil
}

// MoneroMnemonic returns the 25 word mnemonic of a 32 byte private spend key
func MoneroMnemonic(wl *Wordlist, key []byte) (string, error) {
	if len(key) != monerokeys.KeyLen {
		return "", errors.Wrapf(wallet.ErrInvalidKeyMaterial, "key must be %d bytes, got %d", monerokeys.KeyLen, len(key))
	}

	p := moneroProvider{wl: wl}
	words := p.encode(key)

	return strings.Join(append(words, p.checksumWord(words)), " "), nil
}

// Validate checks the mnemonic words and, for 25 words, the checksum word
func (p moneroProvider) Validate(mnemonic string) error {
	_, err := p.decode(mnemonic)

	return err
}

// ToSeed returns the 32 byte private spend key encoded by the mnemonic.
// Passphrases are not supported.
func (p moneroProvider) ToSeed(mnemonic string, passphrase string) ([]byte, error) {
	if passphrase != "" {
		return nil, errors.Wrap(wallet.ErrUnsupportedParameter, "monero mnemonics do not support a passphrase")
	}

	return p.decode(mnemonic)
}

func (p moneroProvider) encode(key []byte) []string {
	words := make([]string, 0, moneroDataWordsNum)
	for i := 0; i < len(key); i += chunkLen {
		words = append(words, p.wl.encodeUint32(binary.LittleEndian.Uint32(key[i:i+chunkLen]))...)
	}

	return words
}

func (p moneroProvider) decode(mnemonic string) ([]byte, error) {
	words := strings.Fields(strings.ToLower(Normalize(mnemonic)))
	if len(words) != MoneroWordsNum && len(words) != moneroDataWordsNum {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "monero mnemonic must have %d or %d words, got %d",
			moneroDataWordsNum, MoneroWordsNum, len(words))
	}

	idx, err := p.wl.indexes(words)
	if err != nil {
		return nil, err
	}

	if len(words) == MoneroWordsNum {
		want := p.checksumWord(words[:moneroDataWordsNum])
		if p.wl.prefix(words[moneroDataWordsNum]) != p.wl.prefix(want) {
			return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, "invalid monero mnemonic checksum")
		}
	}

	key := make([]byte, 0, monerokeys.KeyLen)
	for i := 0; i < moneroDataWordsNum; i += wordsPerChunk {
		x, err := decodeUint32(idx[i], idx[i+1], idx[i+2])
		if err != nil {
			return nil, err
		}
		key = binary.LittleEndian.AppendUint32(key, x)
	}

	return key, nil
}

// checksumWord picks the data word at the CRC32 of the word prefixes
func (p moneroProvider) checksumWord(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(p.wl.prefix(w))
	}

	return words[crc32.ChecksumIEEE([]byte(b.String()))%uint32(len(words))]
}
