package coinconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/wallet"
)

func TestLookup(t *testing.T) {
	conf, err := coinconf.Lookup(coinconf.Bitcoin, coinconf.Bip84)
	require.NoError(t, err)

	assert.Equal(t, coinconf.FamilyBip, conf.Family)
	assert.Equal(t, coinconf.Secp256k1, conf.Curve)
	assert.Equal(t, coinconf.AddrP2WPKH, conf.Address)
	assert.Equal(t, uint32(84), conf.Purpose)
	assert.Equal(t, uint32(0), conf.CoinType)
	assert.Equal(t, [4]byte{0x04, 0xb2, 0x47, 0x46}, conf.Versions.Public)
	assert.Equal(t, "Bitcoin (BTC)", conf.CoinName())
	assert.True(t, conf.HasExtendedKeys())

	// lookups return copies
	conf.Purpose = 1
	again, err := coinconf.Lookup(coinconf.Bitcoin, coinconf.Bip84)
	require.NoError(t, err)
	assert.Equal(t, uint32(84), again.Purpose)
}

func TestLookupUnknown(t *testing.T) {
	_, err := coinconf.Lookup(coinconf.Ethereum, coinconf.Bip84)
	require.ErrorIs(t, err, coinconf.ErrUnknownCoin)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	_, err = coinconf.Lookup(coinconf.Monero, coinconf.Bip44)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestFamilies(t *testing.T) {
	tests := []struct {
		coin   coinconf.CoinID
		spec   coinconf.Spec
		family coinconf.Family
		curve  coinconf.Curve
		exKeys bool
	}{
		{coinconf.Ethereum, coinconf.Bip44, coinconf.FamilyBip, coinconf.Secp256k1, true},
		{coinconf.Cardano, coinconf.CardanoShelley, coinconf.FamilyCardano, coinconf.Ed25519Kholaw, true},
		{coinconf.Bitcoin, coinconf.ElectrumV1, coinconf.FamilyElectrumV1, coinconf.Secp256k1, false},
		{coinconf.Bitcoin, coinconf.ElectrumV2Segwit, coinconf.FamilyElectrumV2, coinconf.Secp256k1, true},
		{coinconf.Monero, coinconf.MoneroSpec, coinconf.FamilyMonero, coinconf.Ed25519Monero, false},
		{coinconf.Algorand, coinconf.AlgorandSpec, coinconf.FamilyAlgorand, coinconf.Ed25519, false},
		{coinconf.Polkadot, coinconf.SubstrateSr25519, coinconf.FamilySubstrate, coinconf.Sr25519, false},
	}

	for _, tt := range tests {
		conf, err := coinconf.Lookup(tt.coin, tt.spec)
		require.NoError(t, err)
		assert.Equal(t, tt.family, conf.Family, conf.CoinName())
		assert.Equal(t, tt.curve, conf.Curve, conf.CoinName())
		assert.Equal(t, tt.exKeys, conf.HasExtendedKeys(), conf.CoinName())
	}
}

func TestAll(t *testing.T) {
	all := coinconf.All()
	assert.Len(t, all, 29)

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		assert.True(t, prev.Coin < cur.Coin || (prev.Coin == cur.Coin && prev.Spec < cur.Spec))
	}

	assert.Equal(t, []coinconf.Spec{coinconf.Bip44}, coinconf.Specs(coinconf.BitcoinCash))
	assert.ElementsMatch(t, []coinconf.Spec{
		coinconf.Bip44, coinconf.Bip49, coinconf.Bip84, coinconf.Bip86,
		coinconf.ElectrumV1, coinconf.ElectrumV2Standard, coinconf.ElectrumV2Segwit,
	}, coinconf.Specs(coinconf.Bitcoin))
}

func TestParseCoin(t *testing.T) {
	coin, err := coinconf.ParseCoin(" Bitcoin-Cash ")
	require.NoError(t, err)
	assert.Equal(t, coinconf.BitcoinCash, coin)

	_, err = coinconf.ParseCoin("tron")
	require.ErrorIs(t, err, coinconf.ErrUnknownCoin)
}

func TestParseSpec(t *testing.T) {
	tests := map[string]coinconf.Spec{
		"bip84":              coinconf.Bip84,
		"BIP-0049":           coinconf.Bip49,
		"electrum-v2-segwit": coinconf.ElectrumV2Segwit,
		"electrum_v1":        coinconf.ElectrumV1,
		"Cardano-Shelley":    coinconf.CardanoShelley,
		"substrate":          coinconf.SubstrateSr25519,
	}

	for in, want := range tests {
		spec, err := coinconf.ParseSpec(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, spec, in)
	}

	_, err := coinconf.ParseSpec("bip32")
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "electrum-v2", coinconf.FamilyElectrumV2.String())
	assert.Equal(t, "ed25519-kholaw", coinconf.Ed25519Kholaw.String())
	assert.Equal(t, "curve(42)", coinconf.Curve(42).String())
}
