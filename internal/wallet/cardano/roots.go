package cardano

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/kholaw"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

// NewFromSeed creates a builder rooted at the master key of the 96 bytes of
// Icarus key material
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	root, err := kholaw.NewMasterFromIcarus(seed)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root, LevelMaster)
}

// NewFromExtendedKey creates a builder from a CIP-5 root_xsk, acct_xsk or
// acct_xvk key. A hex encoded kL||kR||cc or A||cc payload is taken as an
// account key.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromExtendedKey(conf *coinconf.Config, exKey string) (wallet.Builder, error) {
	var (
		hrp     string
		payload []byte
		err     error
	)

	if raw, hexErr := hex.DecodeString(exKey); hexErr == nil {
		payload = raw
		hrp = hrpAcctXvk
		if len(raw) == kholaw.IcarusMaterialLen {
			hrp = hrpAcctXsk
		}
	} else if hrp, payload, err = address.DecodeBech32(strings.ToLower(exKey)); err != nil {
		return nil, err
	}

	var (
		root  *kholaw.Key
		level Level
	)

	switch hrp {
	case hrpRootXsk, hrpAcctXsk:
		if len(payload) != kholaw.IcarusMaterialLen {
			return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "%s payload must be %d bytes", hrp, kholaw.IcarusMaterialLen)
		}
		root, err = kholaw.NewFromPrivateKey(payload[:kholaw.PrivateKeyLen], payload[kholaw.PrivateKeyLen:])
	case hrpAcctXvk:
		if len(payload) != kholaw.PublicKeyLen+kholaw.ChainCodeLen {
			return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "%s payload must be %d bytes", hrp,
				kholaw.PublicKeyLen+kholaw.ChainCodeLen)
		}
		root, err = kholaw.NewFromPublicKey(payload[:kholaw.PublicKeyLen], payload[kholaw.PublicKeyLen:])
	default:
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "unsupported extended key prefix %q", hrp)
	}
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	level = LevelAccount
	if hrp == hrpRootXsk {
		level = LevelMaster
	}

	return newBuilder(conf, root, level)
}

// NewFromPrivateKey creates a builder rooted at an account level kL||kR key
// with a zero chain code
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	root, err := kholaw.NewFromPrivateKey(priv, make([]byte, kholaw.ChainCodeLen))
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root, LevelAccount)
}

// NewFromPublicKey creates a watch-only builder rooted at an account level
// public key with a zero chain code
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	root, err := kholaw.NewFromPublicKey(pub, make([]byte, kholaw.ChainCodeLen))
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root, LevelAccount)
}
