package seed_test

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

const (
	abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	devMnemonic     = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"
)

func TestBip39ToSeed(t *testing.T) {
	p := seed.NewBip39Provider()

	tests := []struct {
		passphrase string
		want       string
	}{
		{"", "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"},
		{"TREZOR", "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"},
	}

	for _, tt := range tests {
		b, err := p.ToSeed(abandonMnemonic, tt.passphrase)
		require.NoError(t, err)
		assert.Equal(t, tt.want, hex.EncodeToString(b))
	}

	// white space is collapsed before hashing
	b, err := p.ToSeed("  "+strings.ReplaceAll(abandonMnemonic, " ", "\t ")+"\n", "")
	require.NoError(t, err)
	assert.Equal(t, tests[0].want, hex.EncodeToString(b))
}

func TestBip39Generate(t *testing.T) {
	p := seed.NewBip39Provider()

	for _, n := range seed.Bip39WordsNums {
		mnemonic, err := p.Generate(n)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), n)
		require.NoError(t, p.Validate(mnemonic))
	}

	_, err := p.Generate(13)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestBip39Validate(t *testing.T) {
	p := seed.NewBip39Provider()

	require.NoError(t, p.Validate(abandonMnemonic))

	err := p.Validate(strings.Replace(abandonMnemonic, "about", "abandon", 1))
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)

	_, err = p.ToSeed("not a mnemonic", "")
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestIcarusToSeed(t *testing.T) {
	p := seed.NewIcarusProvider()

	a, err := p.ToSeed(abandonMnemonic, "")
	require.NoError(t, err)
	assert.Len(t, a, 96)

	b, err := p.ToSeed(abandonMnemonic, "foo")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = p.ToSeed("abandon abandon", "")
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestSubstrateToSeed(t *testing.T) {
	p := seed.NewSubstrateProvider()

	b, err := p.ToSeed(devMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, "fac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e", hex.EncodeToString(b))

	b, err = p.ToSeed(devMnemonic, "password")
	require.NoError(t, err)
	assert.Len(t, b, 32)
	assert.NotEqual(t, "fac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e", hex.EncodeToString(b))
}

func TestAlgorandRoundTrip(t *testing.T) {
	p := seed.NewAlgorandProvider()
	key := bytes.Repeat([]byte{0xa5}, 32)

	mnemonic, err := seed.AlgorandMnemonic(key)
	require.NoError(t, err)
	require.Len(t, strings.Fields(mnemonic), seed.AlgorandWordsNum)
	require.NoError(t, p.Validate(mnemonic))

	b, err := p.ToSeed(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, key, b)

	_, err = p.ToSeed(mnemonic, "secret")
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestAlgorandChecksum(t *testing.T) {
	p := seed.NewAlgorandProvider()

	mnemonic, err := p.Generate(seed.AlgorandWordsNum)
	require.NoError(t, err)
	require.NoError(t, p.Validate(mnemonic))

	words := strings.Fields(mnemonic)
	last := words[len(words)-1]
	words[len(words)-1] = "abandon"
	if last == "abandon" {
		words[len(words)-1] = "zoo"
	}

	err = p.Validate(strings.Join(words, " "))
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)

	_, err = p.Generate(24)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	_, err = seed.AlgorandMnemonic(make([]byte, 16))
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestElectrumV2(t *testing.T) {
	standard := seed.NewElectrumV2Provider(seed.ElectrumStandard)
	segwit := seed.NewElectrumV2Provider(seed.ElectrumSegwit)

	for _, tt := range []struct {
		provider seed.Provider
		other    seed.Provider
	}{
		{standard, segwit},
		{segwit, standard},
	} {
		mnemonic, err := tt.provider.Generate(12)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), 12)

		require.NoError(t, tt.provider.Validate(mnemonic))
		require.NoError(t, tt.provider.Validate(strings.ToUpper(mnemonic)))
		require.ErrorIs(t, tt.other.Validate(mnemonic), wallet.ErrInvalidKeyMaterial)

		a, err := tt.provider.ToSeed(mnemonic, "")
		require.NoError(t, err)
		assert.Len(t, a, 64)

		b, err := tt.provider.ToSeed(mnemonic, "passphrase")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	}

	_, err := standard.Generate(18)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}
