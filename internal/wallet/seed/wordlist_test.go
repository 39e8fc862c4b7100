package seed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

// legacyWords returns LegacyWordlistSize words with unique three letter
// prefixes
func legacyWords() []string {
	words := make([]string, seed.LegacyWordlistSize)
	for i := range words {
		words[i] = string([]byte{byte('a' + i/676), byte('a' + i/26%26), byte('a' + i%26)}) + "ner"
	}

	return words
}

func newWordlist(t *testing.T, prefixLen int) *seed.Wordlist {
	t.Helper()

	wl, err := seed.NewWordlist(legacyWords(), prefixLen)
	require.NoError(t, err)

	return wl
}

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i*7 + 3)
	}

	return key
}

func TestNewWordlistErrors(t *testing.T) {
	words := legacyWords()

	_, err := seed.NewWordlist(words[:seed.LegacyWordlistSize-1], 0)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	_, err = seed.NewWordlist(words, -1)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	dup := append([]string(nil), words...)
	dup[10] = dup[0]
	_, err = seed.NewWordlist(dup, 0)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	// distinct words sharing a prefix
	dup = append([]string(nil), words...)
	dup[10] = words[0][:3] + "zzz"
	_, err = seed.NewWordlist(dup, seed.MoneroPrefixLen)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
	_, err = seed.NewWordlist(dup, 0)
	require.NoError(t, err)

	spaced := append([]string(nil), words...)
	spaced[3] = "two words"
	_, err = seed.NewWordlist(spaced, 0)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestLoadWordlist(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(legacyWords(), "\n")+"\n\n"), 0o600))

	wl, err := seed.LoadWordlist(path, seed.MoneroPrefixLen)
	require.NoError(t, err)
	assert.Equal(t, "aaaner", wl.Word(0))

	i, ok := wl.Index("aabanything")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = wl.Index("zzz")
	assert.False(t, ok)

	_, err = seed.LoadWordlist(filepath.Join(dir, "missing.txt"), 0)
	require.ErrorIs(t, err, wallet.ErrIOFailure)

	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte("one\ntwo\n"), 0o600))
	_, err = seed.LoadWordlist(short, 0)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestMoneroRoundTrip(t *testing.T) {
	wl := newWordlist(t, seed.MoneroPrefixLen)
	p := seed.NewMoneroProvider(wl)
	key := testKey()

	mnemonic, err := seed.MoneroMnemonic(wl, key)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	require.Len(t, words, seed.MoneroWordsNum)
	require.NoError(t, p.Validate(mnemonic))

	b, err := p.ToSeed(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, key, b)

	// the checksum word repeats one of the data words
	assert.Contains(t, words[:seed.MoneroWordsNum-1], words[seed.MoneroWordsNum-1])

	// 24 words carry no checksum
	b, err = p.ToSeed(strings.Join(words[:seed.MoneroWordsNum-1], " "), "")
	require.NoError(t, err)
	assert.Equal(t, key, b)

	// words match on their prefix
	prefixed := make([]string, len(words))
	for i, w := range words {
		prefixed[i] = strings.ToUpper(w[:seed.MoneroPrefixLen]) + "xyz"
	}
	b, err = p.ToSeed(strings.Join(prefixed, " "), "")
	require.NoError(t, err)
	assert.Equal(t, key, b)

	_, err = seed.MoneroMnemonic(wl, key[:31])
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestMoneroValidateErrors(t *testing.T) {
	wl := newWordlist(t, seed.MoneroPrefixLen)
	p := seed.NewMoneroProvider(wl)

	mnemonic, err := seed.MoneroMnemonic(wl, testKey())
	require.NoError(t, err)
	words := strings.Fields(mnemonic)

	last, ok := wl.Index(words[seed.MoneroWordsNum-1])
	require.True(t, ok)

	bad := append([]string(nil), words...)
	bad[seed.MoneroWordsNum-1] = wl.Word((last + 1) % seed.LegacyWordlistSize)
	require.ErrorIs(t, p.Validate(strings.Join(bad, " ")), wallet.ErrInvalidKeyMaterial)

	unknown := append([]string(nil), words...)
	unknown[4] = "zzzz"
	require.ErrorIs(t, p.Validate(strings.Join(unknown, " ")), wallet.ErrInvalidKeyMaterial)

	require.ErrorIs(t, p.Validate(strings.Join(words[:12], " ")), wallet.ErrInvalidKeyMaterial)

	_, err = p.ToSeed(mnemonic, "secret")
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestMoneroGenerate(t *testing.T) {
	p := seed.NewMoneroProvider(newWordlist(t, seed.MoneroPrefixLen))

	for _, n := range []int{24, seed.MoneroWordsNum} {
		mnemonic, err := p.Generate(n)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), n)
		require.NoError(t, p.Validate(mnemonic))

		b, err := p.ToSeed(mnemonic, "")
		require.NoError(t, err)
		assert.Len(t, b, 32)
	}

	_, err := p.Generate(12)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestElectrumV1RoundTrip(t *testing.T) {
	wl := newWordlist(t, 0)
	p := seed.NewElectrumV1Provider(wl)
	key := testKey()[:16]

	mnemonic, err := seed.ElectrumV1Mnemonic(wl, key)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), seed.ElectrumV1WordsNum)
	require.NoError(t, p.Validate(mnemonic))

	b, err := p.ToSeed(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, key, b)

	generated, err := p.Generate(seed.ElectrumV1WordsNum)
	require.NoError(t, err)
	require.NoError(t, p.Validate(generated))

	_, err = p.Generate(24)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	_, err = p.ToSeed(mnemonic, "secret")
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	_, err = seed.ElectrumV1Mnemonic(wl, key[:15])
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestElectrumV1TripleOutOfRange(t *testing.T) {
	wl := newWordlist(t, 0)
	p := seed.NewElectrumV1Provider(wl)

	// 1625 + 1626*1625 + 1626*1626*1625 does not fit 32 bits
	words := []string{wl.Word(1625), wl.Word(1624), wl.Word(1623)}
	for len(words) < seed.ElectrumV1WordsNum {
		words = append(words, wl.Word(0))
	}

	require.ErrorIs(t, p.Validate(strings.Join(words, " ")), wallet.ErrInvalidKeyMaterial)
}
