// Package substrate builds Substrate sr25519 wallets: the master key and the
// key at an optional //hard/soft path.
package substrate

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/sr25519"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

type builder struct {
	conf *coinconf.Config
	root *sr25519.Key
}

func newBuilder(conf *coinconf.Config, root *sr25519.Key) (*builder, error) {
	if conf.Family != coinconf.FamilySubstrate {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not a Substrate spec", conf.Spec)
	}

	return &builder{conf: conf, root: root}, nil
}

// NewFromSeed creates a builder from a 32 byte mini secret key
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	root, err := sr25519.FromMiniSecret(seed)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root)
}

// NewFromPrivateKey creates a builder from a 32 byte mini secret key
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	return NewFromSeed(conf, priv)
}

// NewFromPublicKey creates a watch-only builder
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	root, err := sr25519.FromPublicKey(pub)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newBuilder(conf, root)
}

// Supported returns the generation options of Substrate wallets
func (b *builder) Supported() wallet.Option {
	return wallet.OptPath
}

// IsWatchOnly reports whether the secret key is unknown
func (b *builder) IsWatchOnly() bool {
	return !b.root.IsPrivate()
}

// Build renders the master key and, when a path is given, the key at path
func (b *builder) Build(params wallet.Params) (wallet.Tree, error) {
	junctions, err := sr25519.ParsePath(params.Path)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidDerivationIndex, err.Error())
	}

	master, err := b.node(b.root)
	if err != nil {
		return nil, err
	}

	tree := &wallet.SubstrateTree{MasterKey: master}
	if len(junctions) == 0 {
		return tree, nil
	}

	key, err := b.root.DerivePath(junctions)
	if err != nil {
		if errors.Is(err, sr25519.ErrHardenedFromPublic) {
			return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
		}

		return nil, errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	if tree.PathKey, err = b.node(key); err != nil {
		return nil, err
	}
	tree.Path = params.Path

	return tree, nil
}

func (b *builder) node(key *sr25519.Key) (*wallet.KeyNode, error) {
	addr, err := address.SS58Address(b.conf.SS58Prefix, key.PublicKey())
	if err != nil {
		return nil, err
	}

	pub := "00" + hex.EncodeToString(key.PublicKey())
	node := &wallet.KeyNode{
		RawComprPub:   pub,
		RawUncomprPub: pub,
		Address:       addr,
	}
	if priv := key.PrivateKey(); priv != nil {
		node.RawPriv = hex.EncodeToString(priv)
	}

	return node, nil
}
