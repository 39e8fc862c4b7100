// Package bip builds BIP-0044/49/84/86 wallet trees:
// m / purpose' / coin_type' / account' / change / address_index.
package bip

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/bip32"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

// Change selects the BIP change chain
type Change uint32

// Change chains
const (
	ChangeExternal Change = 0
	ChangeInternal Change = 1
)

// ChangeIndex returns the index of the change level
func (c Change) ChangeIndex() uint32 {
	return uint32(c)
}

// Level is the depth of a key in the BIP tree
type Level uint8

// Tree levels
const (
	LevelMaster Level = iota
	LevelPurpose
	LevelCoin
	LevelAccount
	LevelChange
	LevelAddress
)

type builder struct {
	conf    *coinconf.Config
	encoder address.Service
	root    *bip32.Key
	level   Level
}

func newBuilder(conf *coinconf.Config, root *bip32.Key, level Level) (*builder, error) {
	if conf.Family != coinconf.FamilyBip {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not a BIP spec", conf.Spec)
	}

	encoder, err := address.NewService(conf)
	if err != nil {
		return nil, err
	}

	return &builder{
		conf:    conf,
		encoder: encoder,
		root:    root,
		level:   level,
	}, nil
}

// Supported returns the generation options of BIP trees
func (b *builder) Supported() wallet.Option {
	return wallet.OptAccount | wallet.OptChange | wallet.OptAddressNum | wallet.OptAddressOffset
}

// IsWatchOnly reports whether the root is a public key
func (b *builder) IsWatchOnly() bool {
	return !b.root.IsPrivate()
}

// Build derives every level from the root down to the addresses
func (b *builder) Build(params wallet.Params) (wallet.Tree, error) {
	change := ChangeExternal
	if params.Change != nil {
		c, ok := params.Change.(Change)
		if !ok {
			return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "change %T is not a BIP change", params.Change)
		}
		change = c
	}

	if err := wallet.CheckIndex("account index", params.AccountIdx, wallet.MaxBip32Index); err != nil {
		return nil, err
	}
	if err := wallet.CheckIndex("change index", change.ChangeIndex(), wallet.MaxBip32Index); err != nil {
		return nil, err
	}
	if err := wallet.CheckRange(params.AddrOff, params.AddrNum, wallet.MaxBip32Index); err != nil {
		return nil, err
	}

	if !b.root.IsPrivate() && b.level < LevelAccount {
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, "hardened derivation from public key")
	}

	tree := &wallet.BipTree{}
	key := b.root
	level := b.level

	var err error
	if level == LevelMaster {
		if tree.MasterKey, err = b.node(key); err != nil {
			return nil, err
		}
		if key, err = derive(key, b.conf.Purpose, true); err != nil {
			return nil, err
		}
		level = LevelPurpose
	}

	if level == LevelPurpose {
		if tree.PurposeKey, err = b.node(key); err != nil {
			return nil, err
		}
		if key, err = derive(key, b.conf.CoinType, true); err != nil {
			return nil, err
		}
		level = LevelCoin
	}

	if level == LevelCoin {
		if tree.CoinKey, err = b.node(key); err != nil {
			return nil, err
		}
		accountIdx := params.AccountIdx
		tree.AccountIdx = &accountIdx
		if key, err = derive(key, accountIdx, true); err != nil {
			return nil, err
		}
		level = LevelAccount
	}

	if level == LevelAccount {
		if tree.AccountKey, err = b.node(key); err != nil {
			return nil, err
		}
		changeIdx := change.ChangeIndex()
		tree.ChangeIdx = &changeIdx
		if key, err = derive(key, changeIdx, false); err != nil {
			return nil, err
		}
		level = LevelChange
	}

	if level == LevelChange {
		if tree.ChangeKey, err = b.node(key); err != nil {
			return nil, err
		}
		tree.AddressOff = params.AddrOff

		tree.Addresses = make(wallet.Addresses, 0, params.AddrNum)
		for i := range params.AddrNum {
			idx := params.AddrOff + i

			child, err := derive(key, idx, false)
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

	// address level root
	node, err := b.node(key)
	if err != nil {
		return nil, err
	}
	tree.Addresses = wallet.Addresses{{Label: wallet.AddressLabel(0), Node: node}}

	return tree, nil
}

func (b *builder) node(key *bip32.Key) (*wallet.KeyNode, error) {
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
