package bip

import (
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/bip32"
	"github/chapool/go-hdwallet/internal/wallet"
)

// NewFromSeed creates a builder rooted at the BIP32 master key of seed
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	root, err := bip32.NewMasterFromSeed(seed)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root, LevelMaster)
}

// NewFromExtendedKey creates a builder rooted at an extended key. The depth of
// the key selects the level it is inserted at; its version bytes must be the
// ones of the coin and spec.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromExtendedKey(conf *coinconf.Config, exKey string) (wallet.Builder, error) {
	root, version, err := bip32.ParseExtended(exKey)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	want := conf.Versions.Public
	if root.IsPrivate() {
		want = conf.Versions.Private
	}
	if version != want {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "extended key version %x does not match %s %s",
			version, conf.CoinName(), conf.Spec)
	}

	if root.Depth() > uint8(LevelAddress) {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "extended key depth %d is beyond the address level", root.Depth())
	}

	return newBuilder(conf, root, Level(root.Depth()))
}

// NewFromPrivateKey creates a builder rooted at a master level private key
// with a zero chain code
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	root, err := bip32.NewFromPrivateKey(priv)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root, LevelMaster)
}

// NewFromPublicKey creates a watch-only builder rooted at an account level
// public key with a zero chain code
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	root, err := bip32.NewFromPublicKey(pub, uint8(LevelAccount))
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root, LevelAccount)
}
