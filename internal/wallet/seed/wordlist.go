package seed

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet"
)

// LegacyWordlistSize is the size of the Monero and Electrum V1 wordlists
const LegacyWordlistSize = 1626

// Wordlist is a base 1626 wordlist. When prefixLen is set, words are matched
// and checksummed on their first prefixLen characters.
type Wordlist struct {
	words     []string
	index     map[string]int
	prefixLen int
}

// NewWordlist creates a wordlist of LegacyWordlistSize unique words. Words
// must also be unique on their prefix when prefixLen is not zero.
func NewWordlist(words []string, prefixLen int) (*Wordlist, error) {
	if len(words) != LegacyWordlistSize {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "wordlist must have %d words, got %d",
			LegacyWordlistSize, len(words))
	}
	if prefixLen < 0 {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid prefix length %d", prefixLen)
	}

	wl := &Wordlist{
		words:     make([]string, len(words)),
		index:     make(map[string]int, len(words)),
		prefixLen: prefixLen,
	}

	for i, w := range words {
		w = Normalize(w)
		if w == "" || strings.ContainsAny(w, " \t") {
			return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "invalid word %q at line %d", w, i+1)
		}

		key := wl.prefix(w)
		if _, ok := wl.index[key]; ok {
			return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "duplicate word %q", w)
		}

		wl.words[i] = w
		wl.index[key] = i
	}

	return wl, nil
}

// LoadWordlist reads a wordlist file with one word per line, blank lines
// are skipped
func LoadWordlist(path string, prefixLen int) (*Wordlist, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(wallet.ErrIOFailure, "failed to read wordlist %q: %v", path, err)
	}

	var words []string
	for _, line := range strings.Split(string(b), "\n") {
		if w := strings.TrimSpace(line); w != "" {
			words = append(words, w)
		}
	}

	return NewWordlist(words, prefixLen)
}

// Word returns the word at i
func (wl *Wordlist) Word(i int) string {
	return wl.words[i]
}

// Index returns the index of word
func (wl *Wordlist) Index(word string) (int, bool) {
	i, ok := wl.index[wl.prefix(word)]

	return i, ok
}

// prefix returns the first prefixLen characters of word, the whole word
// when it is shorter or no prefix length is set
func (wl *Wordlist) prefix(word string) string {
	if wl.prefixLen == 0 || utf8.RuneCountInString(word) <= wl.prefixLen {
		return word
	}

	return string([]rune(word)[:wl.prefixLen])
}

func (wl *Wordlist) indexes(words []string) ([]int, error) {
	idx := make([]int, len(words))
	for i, w := range words {
		n, ok := wl.Index(w)
		if !ok {
			return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "unknown mnemonic word %q", w)
		}
		idx[i] = n
	}

	return idx, nil
}

// encodeUint32 writes x as three words, each offset by the previous one
func (wl *Wordlist) encodeUint32(x uint32) []string {
	const n = LegacyWordlistSize

	w1 := x % n
	w2 := (x/n + w1) % n
	w3 := (x/n/n + w2) % n

	return []string{wl.words[w1], wl.words[w2], wl.words[w3]}
}

// decodeUint32 reverses encodeUint32
func decodeUint32(w1, w2, w3 int) (uint32, error) {
	const n = LegacyWordlistSize

	x := uint64(w1) + n*uint64((n-w1+w2)%n) + n*n*uint64((n-w2+w3)%n)
	if x > uint64(^uint32(0)) {
		return 0, errors.Wrap(wallet.ErrInvalidKeyMaterial, "mnemonic word triple is out of range")
	}

	return uint32(x), nil
}
