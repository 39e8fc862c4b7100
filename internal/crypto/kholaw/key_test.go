package kholaw_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/crypto/kholaw"
)

func master(t *testing.T) *kholaw.Key {
	t.Helper()

	material := make([]byte, kholaw.IcarusMaterialLen)
	for i := range material {
		material[i] = byte(i * 7)
	}

	k, err := kholaw.NewMasterFromIcarus(material)
	require.NoError(t, err)

	return k
}

func TestMasterIsClamped(t *testing.T) {
	k := master(t)

	priv := k.PrivateKey()
	require.Len(t, priv, kholaw.PrivateKeyLen)
	assert.Zero(t, priv[0]&0b0000_0111)
	assert.Zero(t, priv[31]&0b1000_0000)
	assert.NotZero(t, priv[31]&0b0100_0000)

	assert.Len(t, k.XPrv(), kholaw.IcarusMaterialLen)
	assert.Len(t, k.XPub(), kholaw.PublicKeyLen+kholaw.ChainCodeLen)
}

func TestSoftPublicDerivationMatchesPrivate(t *testing.T) {
	account, err := master(t).Derive(1852, true)
	require.NoError(t, err)
	account, err = account.Derive(1815, true)
	require.NoError(t, err)
	account, err = account.Derive(0, true)
	require.NoError(t, err)

	for _, path := range [][2]uint32{{0, 0}, {0, 1}, {1, 5}, {2, 0}} {
		privChild, err := account.Derive(path[0], false)
		require.NoError(t, err)
		privChild, err = privChild.Derive(path[1], false)
		require.NoError(t, err)

		pubChild, err := account.Neuter().Derive(path[0], false)
		require.NoError(t, err)
		pubChild, err = pubChild.Derive(path[1], false)
		require.NoError(t, err)

		assert.Equal(t, privChild.PublicKey(), pubChild.PublicKey())
		assert.Equal(t, privChild.ChainCode(), pubChild.ChainCode())
		assert.False(t, pubChild.IsPrivate())
		assert.Nil(t, pubChild.PrivateKey())
	}
}

func TestRoundTripThroughRawKeys(t *testing.T) {
	k, err := master(t).Derive(3, true)
	require.NoError(t, err)

	fromPriv, err := kholaw.NewFromPrivateKey(k.PrivateKey(), k.ChainCode())
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), fromPriv.PublicKey())

	fromPub, err := kholaw.NewFromPublicKey(k.PublicKey(), k.ChainCode())
	require.NoError(t, err)
	assert.Equal(t, k.XPub(), fromPub.XPub())
	assert.Nil(t, fromPub.XPrv())
}

func TestDeriveErrors(t *testing.T) {
	k := master(t)

	_, err := k.Derive(kholaw.HardenedKeyStart, false)
	require.ErrorIs(t, err, kholaw.ErrIndexOutOfRange)

	_, err = k.Neuter().Derive(0, true)
	require.ErrorIs(t, err, kholaw.ErrHardenedFromPublic)
}

func TestInvalidKeys(t *testing.T) {
	_, err := kholaw.NewMasterFromIcarus(make([]byte, 64))
	require.ErrorIs(t, err, kholaw.ErrInvalidKey)

	priv := bytes.Repeat([]byte{0xff}, kholaw.PrivateKeyLen)
	_, err = kholaw.NewFromPrivateKey(priv, make([]byte, kholaw.ChainCodeLen))
	require.ErrorIs(t, err, kholaw.ErrInvalidKey)

	_, err = kholaw.NewFromPublicKey(make([]byte, 31), make([]byte, kholaw.ChainCodeLen))
	require.ErrorIs(t, err, kholaw.ErrInvalidKey)

	_, err = kholaw.NewFromPrivateKey(make([]byte, kholaw.PrivateKeyLen), make([]byte, 16))
	require.ErrorIs(t, err, kholaw.ErrInvalidKey)
}
