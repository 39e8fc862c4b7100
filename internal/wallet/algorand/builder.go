// Package algorand builds the single key Algorand wallet.
package algorand

import (
	"crypto/ed25519"
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

type builder struct {
	conf *coinconf.Config
	seed []byte
	pub  ed25519.PublicKey
}

func newBuilder(conf *coinconf.Config, seed []byte, pub ed25519.PublicKey) (*builder, error) {
	if conf.Family != coinconf.FamilyAlgorand {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not Algorand", conf.Spec)
	}

	return &builder{conf: conf, seed: seed, pub: pub}, nil
}

// NewFromSeed creates a builder from a 32 byte ed25519 seed
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.Wrap(wallet.ErrDerivation, "unexpected public key type")
	}

	return newBuilder(conf, append([]byte(nil), seed...), pub)
}

// NewFromPrivateKey is NewFromSeed: the Algorand private key is the ed25519 seed
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	return NewFromSeed(conf, priv)
}

// NewFromPublicKey creates a watch-only builder, pub must be a valid
// ed25519 point
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "public key must be %d bytes, got %d",
			ed25519.PublicKeySize, len(pub))
	}

	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, "public key is not a curve point")
	}

	return newBuilder(conf, nil, append(ed25519.PublicKey(nil), pub...))
}

// Supported returns no options, Algorand wallets have a single key
func (b *builder) Supported() wallet.Option {
	return 0
}

// IsWatchOnly reports whether the seed is unknown
func (b *builder) IsWatchOnly() bool {
	return b.seed == nil
}

// Build renders the master key
func (b *builder) Build(_ wallet.Params) (wallet.Tree, error) {
	pub := "00" + hex.EncodeToString(b.pub)

	node := &wallet.KeyNode{
		RawComprPub:   pub,
		RawUncomprPub: pub,
		Address:       address.AlgorandAddress(b.pub),
	}
	if b.seed != nil {
		node.RawPriv = hex.EncodeToString(b.seed)
	}

	return &wallet.AlgorandTree{MasterKey: node}, nil
}
