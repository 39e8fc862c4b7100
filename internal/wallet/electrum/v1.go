package electrum

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/electrumv1"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

type v1Builder struct {
	conf    *coinconf.Config
	encoder address.Service
	master  *electrumv1.Key
}

func newV1Builder(conf *coinconf.Config, master *electrumv1.Key) (*v1Builder, error) {
	if conf.Family != coinconf.FamilyElectrumV1 {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not Electrum V1", conf.Spec)
	}

	encoder, err := address.NewService(conf)
	if err != nil {
		return nil, err
	}

	return &v1Builder{conf: conf, encoder: encoder, master: master}, nil
}

// NewV1FromSeed creates an Electrum V1 builder. seed is either the raw 16 byte
// seed, stretched into the master key, or the 32 byte master private key.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV1FromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	if len(seed) == electrumv1.SeedLen {
		stretched, err := electrumv1.StretchSeed(seed)
		if err != nil {
			return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
		}
		seed = stretched
	}

	return NewV1FromPrivateKey(conf, seed)
}

// NewV1FromPrivateKey creates an Electrum V1 builder from the master private key
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV1FromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	master, err := electrumv1.NewFromPrivateKey(priv)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newV1Builder(conf, master)
}

// NewV1FromPublicKey creates a watch-only Electrum V1 builder from the master public key
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV1FromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	master, err := electrumv1.NewFromPublicKey(pub)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newV1Builder(conf, master)
}

// Supported returns the generation options of Electrum V1 trees
func (b *v1Builder) Supported() wallet.Option {
	return wallet.OptChange | wallet.OptAddressNum | wallet.OptAddressOffset
}

// IsWatchOnly reports whether the master private key is unknown
func (b *v1Builder) IsWatchOnly() bool {
	return !b.master.IsPrivate()
}

// Build derives the addresses of the change chain
func (b *v1Builder) Build(params wallet.Params) (wallet.Tree, error) {
	change, err := resolveChange(params)
	if err != nil {
		return nil, err
	}

	if err := wallet.CheckRange(params.AddrOff, params.AddrNum, wallet.MaxUint32Index); err != nil {
		return nil, err
	}

	master, err := b.node(b.master.PublicKey(), b.master.PrivateKey())
	if err != nil {
		return nil, err
	}

	tree := &wallet.ElectrumV1Tree{
		MasterKey:  master,
		ChangeIdx:  change.ChangeIndex(),
		AddressOff: params.AddrOff,
		Addresses:  make(wallet.Addresses, 0, params.AddrNum),
	}

	for i := range params.AddrNum {
		idx := params.AddrOff + i

		child, err := b.master.Child(change.ChangeIndex(), idx)
		if err != nil {
			return nil, errors.Wrap(wallet.ErrDerivation, err.Error())
		}

		node, err := b.node(child.PublicKey(), child.PrivateKey())
		if err != nil {
			return nil, err
		}
		tree.Addresses = append(tree.Addresses, wallet.AddressEntry{Label: wallet.AddressLabel(idx), Node: node})
	}

	return tree, nil
}

func (b *v1Builder) node(pub *btcec.PublicKey, priv *btcec.PrivateKey) (*wallet.KeyNode, error) {
	addr, err := b.encoder.Address(pub)
	if err != nil {
		return nil, err
	}

	node := &wallet.KeyNode{
		RawComprPub:   hex.EncodeToString(pub.SerializeCompressed()),
		RawUncomprPub: hex.EncodeToString(pub.SerializeUncompressed()),
		Address:       addr,
	}

	if priv != nil {
		node.RawPriv = hex.EncodeToString(priv.Serialize())
		if node.WifPriv, err = b.encoder.WIF(priv); err != nil {
			return nil, err
		}
	}

	return node, nil
}
