// Package electrum builds Electrum V1 and V2 (standard and segwit) wallet trees.
package electrum

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/bip32"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

// Change selects the Electrum change chain
type Change uint32

// Change chains
const (
	ChangeExternal Change = 0
	ChangeInternal Change = 1
)

// ChangeIndex returns the change index
func (c Change) ChangeIndex() uint32 {
	return uint32(c)
}

// segwit wallets live below m/0'
const segwitAccount = 0

type v2Builder struct {
	conf    *coinconf.Config
	encoder address.Service
	master  *bip32.Key
}

func newV2Builder(conf *coinconf.Config, master *bip32.Key) (*v2Builder, error) {
	if conf.Family != coinconf.FamilyElectrumV2 {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not Electrum V2", conf.Spec)
	}

	encoder, err := address.NewService(conf)
	if err != nil {
		return nil, err
	}

	return &v2Builder{conf: conf, encoder: encoder, master: master}, nil
}

// NewV2FromSeed creates an Electrum V2 builder rooted at the BIP32 master key of seed
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV2FromSeed(conf *coinconf.Config, seed []byte) (wallet.Builder, error) {
	master, err := bip32.NewMasterFromSeed(seed)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newV2Builder(conf, master)
}

// NewV2FromExtendedKey creates an Electrum V2 builder from a master extended key
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV2FromExtendedKey(conf *coinconf.Config, exKey string) (wallet.Builder, error) {
	master, version, err := bip32.ParseExtended(exKey)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	want := conf.Versions.Public
	if master.IsPrivate() {
		want = conf.Versions.Private
	}
	if version != want {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "extended key version %x does not match %s %s",
			version, conf.CoinName(), conf.Spec)
	}

	if master.Depth() != 0 {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "extended key must be a master key, got depth %d", master.Depth())
	}

	return newV2Builder(conf, master)
}

// NewV2FromPrivateKey creates an Electrum V2 builder from a master private key with a zero chain code
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV2FromPrivateKey(conf *coinconf.Config, priv []byte) (wallet.Builder, error) {
	master, err := bip32.NewFromPrivateKey(priv)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newV2Builder(conf, master)
}

// NewV2FromPublicKey creates a watch-only Electrum V2 builder from a master public key with a zero chain code
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewV2FromPublicKey(conf *coinconf.Config, pub []byte) (wallet.Builder, error) {
	master, err := bip32.NewFromPublicKey(pub, 0)
	if err != nil {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return newV2Builder(conf, master)
}

// Supported returns the generation options of Electrum V2 trees
func (b *v2Builder) Supported() wallet.Option {
	return wallet.OptChange | wallet.OptAddressNum | wallet.OptAddressOffset
}

// IsWatchOnly reports whether the master key is a public key
func (b *v2Builder) IsWatchOnly() bool {
	return !b.master.IsPrivate()
}

// Build derives the change key and its addresses: m/change/i for standard
// wallets, m/0'/change/i for segwit wallets
func (b *v2Builder) Build(params wallet.Params) (wallet.Tree, error) {
	change, err := resolveChange(params)
	if err != nil {
		return nil, err
	}

	if err := wallet.CheckRange(params.AddrOff, params.AddrNum, wallet.MaxBip32Index); err != nil {
		return nil, err
	}

	segwit := b.conf.Spec == coinconf.ElectrumV2Segwit
	if segwit && !b.master.IsPrivate() {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, "hardened derivation from public key")
	}

	master, err := b.node(b.master)
	if err != nil {
		return nil, err
	}

	parent := b.master
	if segwit {
		if parent, err = derive(parent, segwitAccount, true); err != nil {
			return nil, err
		}
	}

	changeKey, err := derive(parent, change.ChangeIndex(), false)
	if err != nil {
		return nil, err
	}

	changeNode, err := b.node(changeKey)
	if err != nil {
		return nil, err
	}

	tree := &wallet.ElectrumV2Tree{
		MasterKey:  master,
		ChangeIdx:  change.ChangeIndex(),
		ChangeKey:  changeNode,
		AddressOff: params.AddrOff,
		Addresses:  make(wallet.Addresses, 0, params.AddrNum),
	}

	for i := range params.AddrNum {
		idx := params.AddrOff + i

		child, err := derive(changeKey, idx, false)
		if err != nil {
			return nil, err
		}

		node, err := b.node(child)
		if err != nil {
			return nil, err
		}
		tree.Addresses = append(tree.Addresses, wallet.AddressEntry{Label: wallet.AddressLabel(idx), Node: node})
	}

	return tree, nil
}

func (b *v2Builder) node(key *bip32.Key) (*wallet.KeyNode, error) {
	pub := key.PublicKey()

	addr, err := b.encoder.Address(pub)
	if err != nil {
		return nil, err
	}

	node := &wallet.KeyNode{
		ExPub:         key.ExtendedPublic(b.conf.Versions.Public),
		RawComprPub:   hex.EncodeToString(pub.SerializeCompressed()),
		RawUncomprPub: hex.EncodeToString(pub.SerializeUncompressed()),
		Address:       addr,
	}

	if priv := key.PrivateKey(); priv != nil {
		node.ExPriv = key.ExtendedPrivate(b.conf.Versions.Private)
		node.RawPriv = hex.EncodeToString(priv.Serialize())
		if node.WifPriv, err = b.encoder.WIF(priv); err != nil {
			return nil, err
		}
	}

	return node, nil
}

func resolveChange(params wallet.Params) (Change, error) {
	if params.Change == nil {
		return ChangeExternal, nil
	}

	c, ok := params.Change.(Change)
	if !ok {
		return 0, errors.Wrapf(wallet.ErrUnsupportedParameter, "change %T is not an Electrum change", params.Change)
	}

	if err := wallet.CheckIndex("change index", c.ChangeIndex(), wallet.MaxBip32Index); err != nil {
		return 0, err
	}

	return c, nil
}

func derive(key *bip32.Key, index uint32, hardened bool) (*bip32.Key, error) {
	child, err := key.Derive(index, hardened)
	if err == nil {
		return child, nil
	}

	switch {
	case errors.Is(err, bip32.ErrIndexOutOfRange):
		return nil, errors.Wrap(wallet.ErrInvalidDerivationIndex, err.Error())
	case errors.Is(err, bip32.ErrHardenedFromPublic):
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	default:
		return nil, errors.Wrap(wallet.ErrDerivation, err.Error())
	}
}
