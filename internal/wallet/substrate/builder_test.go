package substrate_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/seed"
	"github/chapool/go-hdwallet/internal/wallet/substrate"
)

const devMnemonic = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

func lookup(t *testing.T, coin coinconf.CoinID) *coinconf.Config {
	t.Helper()

	conf, err := coinconf.Lookup(coin, coinconf.SubstrateSr25519)
	require.NoError(t, err)

	return conf
}

func fromMnemonic(t *testing.T, coin coinconf.CoinID) wallet.Builder {
	t.Helper()

	miniSecret, err := seed.NewSubstrateProvider().ToSeed(devMnemonic, "")
	require.NoError(t, err)

	b, err := substrate.NewFromSeed(lookup(t, coin), miniSecret)
	require.NoError(t, err)

	return b
}

func build(t *testing.T, b wallet.Builder, opts ...wallet.GenerateOption) *wallet.SubstrateTree {
	t.Helper()

	tree, err := b.Build(wallet.NewParams(opts...))
	require.NoError(t, err)

	substrateTree, ok := tree.(*wallet.SubstrateTree)
	require.True(t, ok)

	return substrateTree
}

func TestMasterKey(t *testing.T) {
	tree := build(t, fromMnemonic(t, coinconf.Substrate))

	assert.Equal(t, "0046ebddef8cd9bb167dc30878d7113b7e168e6f0646beffd77d69d39bad76b47a", tree.MasterKey.RawComprPub)
	assert.Equal(t, "5DfhGyQdFobKM8NsWvEeAKk5EQQgYe9AydgJ7rMB6E1EqRzV", tree.MasterKey.Address)
	assert.Len(t, tree.MasterKey.RawPriv, 64)
	assert.Empty(t, tree.Path)
	assert.Nil(t, tree.PathKey)
}

func TestNetworkPrefix(t *testing.T) {
	generic := build(t, fromMnemonic(t, coinconf.Substrate))
	polkadot := build(t, fromMnemonic(t, coinconf.Polkadot))

	assert.Equal(t, generic.MasterKey.RawComprPub, polkadot.MasterKey.RawComprPub)
	assert.NotEqual(t, generic.MasterKey.Address, polkadot.MasterKey.Address)
	assert.Equal(t, byte('1'), polkadot.MasterKey.Address[0])
}

func TestPath(t *testing.T) {
	b := fromMnemonic(t, coinconf.Substrate)

	tree := build(t, b, wallet.WithPath("//Alice/0"))
	assert.Equal(t, "//Alice/0", tree.Path)
	require.NotNil(t, tree.PathKey)
	assert.NotEqual(t, tree.MasterKey.Address, tree.PathKey.Address)
	assert.NotEmpty(t, tree.PathKey.RawPriv)

	again := build(t, b, wallet.WithPath("//Alice/0"))
	assert.Equal(t, tree.PathKey.RawComprPub, again.PathKey.RawComprPub)

	w, err := wallet.NewShell(wallet.Header{Name: "dot"}, b).Generate(wallet.WithPath("//Alice/0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet_name", "spec_name", "coin_name", "master_key", "path", "path_key"},
		wallet.ToDocument(w).Keys())
}

func TestWatchOnlySoftPath(t *testing.T) {
	conf := lookup(t, coinconf.Substrate)
	full := build(t, fromMnemonic(t, coinconf.Substrate), wallet.WithPath("/soft/1"))

	pub, err := hex.DecodeString(full.MasterKey.RawComprPub[2:])
	require.NoError(t, err)

	b, err := substrate.NewFromPublicKey(conf, pub)
	require.NoError(t, err)
	assert.True(t, b.IsWatchOnly())

	watch := build(t, b, wallet.WithPath("/soft/1"))
	assert.Equal(t, full.PathKey.Address, watch.PathKey.Address)
	assert.Empty(t, watch.PathKey.RawPriv)
	assert.Empty(t, watch.MasterKey.RawPriv)

	_, err = b.Build(wallet.NewParams(wallet.WithPath("//hard")))
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestErrors(t *testing.T) {
	b := fromMnemonic(t, coinconf.Substrate)

	_, err := b.Build(wallet.NewParams(wallet.WithPath("no-slash")))
	require.ErrorIs(t, err, wallet.ErrInvalidDerivationIndex)

	_, err = wallet.NewShell(wallet.Header{}, b).Generate(wallet.WithAddressNum(1))
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	_, err = substrate.NewFromSeed(lookup(t, coinconf.Substrate), make([]byte, 64))
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}
