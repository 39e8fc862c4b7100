// Package monero builds Monero wallet trees: the spend/view keys and the
// subaddresses of one account.
package monero

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/monerokeys"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

type builder struct {
	conf *coinconf.Config
	keys *monerokeys.Keys
}

func newBuilder(conf *coinconf.Config, keys *monerokeys.Keys) (*builder, error) {
	if conf.Family != coinconf.FamilyMonero {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not a Monero spec", conf.Spec)
	}

	return &builder{conf: conf, keys: keys}, nil
}

// NewFromSeed creates a builder from a seed: 32 bytes are reduced into the
// private spend key, other lengths are hashed with Keccak-256 first
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	keys, err := monerokeys.FromSeed(seed)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, keys)
}

// NewFromPrivateKey creates a builder from the private spend key
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	keys, err := monerokeys.FromPrivateSpendKey(priv)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, keys)
}

// NewFromPublicKey creates a view-only builder from pub_spend||priv_view
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	if len(pub) != 2*monerokeys.KeyLen {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "view-only key must be %d bytes, got %d",
			2*monerokeys.KeyLen, len(pub))
	}

	keys, err := monerokeys.FromWatchOnly(pub[:monerokeys.KeyLen], pub[monerokeys.KeyLen:])
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, keys)
}

// Supported returns the generation options of Monero trees
func (b *builder) Supported() wallet.Option {
	return wallet.OptAccount | wallet.OptAddressNum | wallet.OptAddressOffset
}

// IsWatchOnly reports whether the private spend key is unknown
func (b *builder) IsWatchOnly() bool {
	return !b.keys.IsPrivate()
}

// Build derives the subaddresses (account, i) for i in [off, off+num)
func (b *builder) Build(params wallet.Params) (wallet.Tree, error) {
	if err := wallet.CheckIndex("account index", params.AccountIdx, wallet.MaxUint32Index); err != nil {
		return nil, err
	}
	if err := wallet.CheckRange(params.AddrOff, params.AddrNum, wallet.MaxUint32Index); err != nil {
		return nil, err
	}

	keys := &wallet.MoneroKeys{
		PrivView:       hex.EncodeToString(b.keys.PrivateViewKey()),
		PubSpend:       hex.EncodeToString(b.keys.PublicSpendKey()),
		PubView:        hex.EncodeToString(b.keys.PublicViewKey()),
		PrimaryAddress: address.MoneroAddress(b.conf.MoneroNetVer, b.keys.PublicSpendKey(), b.keys.PublicViewKey()),
	}
	if b.keys.IsPrivate() {
		keys.PrivSpend = hex.EncodeToString(b.keys.PrivateSpendKey())
	}

	tree := &wallet.MoneroTree{
		Keys:          keys,
		AccountIdx:    params.AccountIdx,
		SubaddressOff: params.AddrOff,
		Subaddresses:  make(wallet.Addresses, 0, params.AddrNum),
	}

	for i := range params.AddrNum {
		idx := params.AddrOff + i

		spend, view, err := b.keys.Subaddress(params.AccountIdx, idx)
		if err != nil {
			return nil, errors.Wrap(wallet.ErrDerivation, err.Error())
		}

		netVer := b.conf.MoneroSubaddrNetVer
		if params.AccountIdx == 0 && idx == 0 {
			netVer = b.conf.MoneroNetVer
		}

		tree.Subaddresses = append(tree.Subaddresses, wallet.AddressEntry{
			Label: wallet.SubaddressLabel(idx),
			Node: &wallet.MoneroSubaddress{
				PubSpend: hex.EncodeToString(spend),
				PubView:  hex.EncodeToString(view),
				Address:  address.MoneroAddress(netVer, spend, view),
			},
		})
	}

	return tree, nil
}
