package factory_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/bip"
	"github/chapool/go-hdwallet/internal/wallet/electrum"
	"github/chapool/go-hdwallet/internal/wallet/factory"
)

func newFactory(t *testing.T, coin coinconf.CoinID, spec coinconf.Spec) *factory.Factory {
	t.Helper()

	f, err := factory.New(coin, spec)
	require.NoError(t, err)

	return f
}

func keyNode(t *testing.T, addresses wallet.Addresses, label string) *wallet.KeyNode {
	t.Helper()

	n, ok := addresses.Get(label)
	require.True(t, ok, label)

	node, ok := n.(*wallet.KeyNode)
	require.True(t, ok)

	return node
}

func generate(t *testing.T, shell *wallet.Shell, opts ...wallet.GenerateOption) wallet.Tree {
	t.Helper()

	w, err := shell.Generate(opts...)
	require.NoError(t, err)

	return w.Tree()
}

// Electrum wallet test vectors
func TestElectrumV2Vectors(t *testing.T) {
	tests := []struct {
		spec     coinconf.Spec
		mnemonic string
		receive  string
		change   string
	}{
		{
			coinconf.ElectrumV2Standard,
			"cycle rocket west magnet parrot shuffle foot correct salt library feed song",
			"1NNkttn1YvVGdqBW4PR6zvc3Zx3H5owKRf",
			"1KSezYMhAJMWqFbVFB2JshYg69UpmEXR4D",
		},
		{
			coinconf.ElectrumV2Segwit,
			"bitter grass shiver impose acquire brush forget axis eager alone wine silver",
			"bc1q3g5tmkmlvxryhh843v4dz026avatc0zzr6h3af",
			"bc1qdy94n2q5qcp0kg7v9yzwe6wvfkhnvyzje7nx2p",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.spec), func(t *testing.T) {
			shell, err := newFactory(t, coinconf.Bitcoin, tt.spec).CreateFromMnemonic("w", tt.mnemonic, "")
			require.NoError(t, err)

			receive, ok := generate(t, shell, wallet.WithAddressNum(1)).(*wallet.ElectrumV2Tree)
			require.True(t, ok)
			assert.Equal(t, tt.receive, keyNode(t, receive.Addresses, "address_0").Address)

			change, ok := generate(t, shell, wallet.WithChange(electrum.ChangeInternal), wallet.WithAddressNum(1)).(*wallet.ElectrumV2Tree)
			require.True(t, ok)
			assert.Equal(t, tt.change, keyNode(t, change.Addresses, "address_0").Address)
		})
	}
}

// Electrum "old" seed wallet, from its master public key
func TestElectrumV1Vector(t *testing.T) {
	mpk, err := hex.DecodeString("e9d4b7866dd1e91c862aebf62a49548c7dbf7bcc6e4b7b8c9da820c7737968df" +
		"9c09d5a3e271dc814a29981f81b3faaf2737b551ef5dcc6189cf0f8252c442b3")
	require.NoError(t, err)

	shell, err := newFactory(t, coinconf.Bitcoin, coinconf.ElectrumV1).CreateFromPublicKey("w", mpk)
	require.NoError(t, err)
	assert.True(t, shell.IsWatchOnly())

	receive, ok := generate(t, shell, wallet.WithAddressNum(2)).(*wallet.ElectrumV1Tree)
	require.True(t, ok)
	assert.Equal(t, "1FJEEB8ihPMbzs2SkLmr37dHyRFzakqUmo", keyNode(t, receive.Addresses, "address_0").Address)
	assert.Equal(t, "1JnNwHaztEa181EnG6qur1WALRJe1f3WLn", keyNode(t, receive.Addresses, "address_1").Address)

	change, ok := generate(t, shell, wallet.WithChange(electrum.ChangeInternal), wallet.WithAddressNum(1)).(*wallet.ElectrumV1Tree)
	require.True(t, ok)
	assert.Equal(t, "1KRW8pH6HFHZh889VDq6fEKvmrsmApwNfe", keyNode(t, change.Addresses, "address_0").Address)
}

// CIP-19 base and reward addresses of the 12 word test entropy
func TestCardanoVector(t *testing.T) {
	const mnemonic = "test walk nut penalty hip pave soap entry language right filter choice"

	shell, err := newFactory(t, coinconf.Cardano, coinconf.CardanoShelley).CreateFromMnemonic("w", mnemonic, "")
	require.NoError(t, err)

	tree, ok := generate(t, shell, wallet.WithAddressNum(1)).(*wallet.CardanoTree)
	require.True(t, ok)
	assert.Equal(t,
		"addr1qx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer3n0d3vllmyqwsx5wktcd8cc3sq835lu7drv2xwl2wywfgse35a3x",
		keyNode(t, tree.Addresses, "address_0").Address)
	assert.Equal(t, "stake1uyehkck0lajq8gr28t9uxnuvgcqrc6070x3k9r8048z8y5gh6ffgw", tree.StakingKey.Address)
	assert.True(t, strings.HasPrefix(tree.AccountKey.ExPub, "acct_xvk1"))
}

// Monero keys of a known private spend key
func TestMoneroVector(t *testing.T) {
	spend, err := hex.DecodeString("c595161ea20ccd8c692947c2d3ced471e9b13a18b150c881232794e8042bf107")
	require.NoError(t, err)

	shell, err := newFactory(t, coinconf.Monero, coinconf.MoneroSpec).CreateFromPrivateKey("w", spend)
	require.NoError(t, err)

	tree, ok := generate(t, shell, wallet.WithAddressNum(2)).(*wallet.MoneroTree)
	require.True(t, ok)
	assert.Equal(t, "fadf3558b700b88936113be1e5342245bd68a6b1deeb496000c4148ad4b61f02", tree.Keys.PrivView)
	assert.Equal(t, "3bcb82eecc13739b463b386fc1ed991386a046b478bf4864673ca0a229c3cec1", tree.Keys.PubSpend)
	assert.Equal(t, "6bb8297dc3b54407ac78ffa4efa4afbe5f1806e5e41aa56ae98c2fe53032bb4b", tree.Keys.PubView)
	assert.Equal(t,
		"43tXwm6UNNvSyMdHU4Jfeg4GRgU7KEVAfHo3B5RrXYMjZMRaowr68y12HSo14wv2qcYqqpG1U5AHrJtBdFHKPDEA9UxK6Hy",
		tree.Keys.PrimaryAddress)

	sub, ok := tree.Subaddresses.Get("subaddress_1")
	require.True(t, ok)
	subaddress, ok := sub.(*wallet.MoneroSubaddress)
	require.True(t, ok)
	assert.Equal(t,
		"86s4g5GpjDwFocA4XSUAbgRMBgXSLgp5h95fsFRSKCVjE8Q123MBnoPad9TWEb53bzY1F7nFapM2rdToEv1g7NCjCHXpSFh",
		subaddress.Address)
}

// the zero key Algorand mnemonic
func TestAlgorandVector(t *testing.T) {
	mnemonic := strings.Repeat("abandon ", 24) + "invest"

	shell, err := newFactory(t, coinconf.Algorand, coinconf.AlgorandSpec).CreateFromMnemonic("w", mnemonic, "")
	require.NoError(t, err)

	tree, ok := generate(t, shell).(*wallet.AlgorandTree)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("00", 32), tree.MasterKey.RawPriv)
	assert.Equal(t, "003b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29", tree.MasterKey.RawComprPub)
	assert.Equal(t, "HNVCPPGOW2SC2YVDVDICU3YNONSTEFLXDXREHJR2YBEKDC2Z3IUZSC6YGI", tree.MasterKey.Address)
}

// Litecoin BIP-0084 account 2 internal chain, from the mnemonic and from the
// master extended key
func TestLitecoinBip84ExtendedKey(t *testing.T) {
	f := newFactory(t, coinconf.Litecoin, coinconf.Bip84)
	opts := []wallet.GenerateOption{
		wallet.WithAccount(2),
		wallet.WithChange(bip.ChangeInternal),
		wallet.WithAddressNum(3),
	}
	want := []string{
		"ltc1qeyp9rflupuvw5j5pdyluhqgdxfk092hra6m8jm",
		"ltc1q2ksy0gmj2y2zru74nd64zlaq8h30qpz6dstr2s",
		"ltc1qatkc4pe54qupgp0zazd5qycwmmyhklrkgpjxap",
	}

	shell, err := f.CreateFromMnemonic("w", abandonMnemonic, "")
	require.NoError(t, err)
	fromMnemonic, ok := generate(t, shell, opts...).(*wallet.BipTree)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(fromMnemonic.MasterKey.ExPriv, "zprv"))
	assert.Equal(t, uint32(2), *fromMnemonic.AccountIdx)
	assert.Equal(t, uint32(1), *fromMnemonic.ChangeIdx)

	shell, err = f.CreateFromExtendedKey("w", fromMnemonic.MasterKey.ExPriv)
	require.NoError(t, err)
	fromExKey, ok := generate(t, shell, opts...).(*wallet.BipTree)
	require.True(t, ok)

	for i, label := range []string{"address_0", "address_1", "address_2"} {
		assert.Equal(t, want[i], keyNode(t, fromMnemonic.Addresses, label).Address)
		assert.Equal(t, want[i], keyNode(t, fromExKey.Addresses, label).Address)
	}
	assert.Equal(t, fromMnemonic.AccountKey, fromExKey.AccountKey)
	assert.Equal(t, fromMnemonic.ChangeKey, fromExKey.ChangeKey)
}
