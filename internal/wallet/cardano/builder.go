// Package cardano builds Cardano Shelley (CIP-1852) wallet trees:
// m / 1852' / 1815' / account' / role / address_index, with the staking key
// at account' / 2 / 0.
package cardano

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/crypto/kholaw"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

// Change selects the Cardano payment role
type Change uint32

// Payment roles
const (
	ChangeExternal Change = 0
	ChangeInternal Change = 1
)

// ChangeIndex returns the role index
func (c Change) ChangeIndex() uint32 {
	return uint32(c)
}

const (
	stakingRole  = 2
	stakingIndex = 0
)

// Level is the depth of a key in the Cardano tree
type Level uint8

// Tree levels
const (
	LevelMaster Level = iota
	LevelPurpose
	LevelCoin
	LevelAccount
)

// CIP-5 prefixes of extended keys
const (
	hrpRootXsk    = "root_xsk"
	hrpRootXvk    = "root_xvk"
	hrpAcctXsk    = "acct_xsk"
	hrpAcctXvk    = "acct_xvk"
	hrpAddrXsk    = "addr_xsk"
	hrpAddrXvk    = "addr_xvk"
	hrpStakeXsk   = "stake_xsk"
	hrpStakeXvk   = "stake_xvk"
	hrpGenericXsk = "xprv"
	hrpGenericXvk = "xpub"
)

type builder struct {
	conf  *coinconf.Config
	root  *kholaw.Key
	level Level
}

func newBuilder(conf *coinconf.Config, root *kholaw.Key, level Level) (*builder, error) {
	if conf.Family != coinconf.FamilyCardano {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not a Cardano spec", conf.Spec)
	}

	return &builder{conf: conf, root: root, level: level}, nil
}

// Supported returns the generation options of Cardano trees
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
			return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "change %T is not a Cardano change", params.Change)
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

	tree := &wallet.CardanoTree{}
	key := b.root
	level := b.level

	var err error
	if level == LevelMaster {
		if tree.MasterKey, err = b.node(key, hrpRootXvk, hrpRootXsk, ""); err != nil {
			return nil, err
		}
		if key, err = derive(key, b.conf.Purpose, true); err != nil {
			return nil, err
		}
		level = LevelPurpose
	}

	if level == LevelPurpose {
		if tree.PurposeKey, err = b.node(key, hrpGenericXvk, hrpGenericXsk, ""); err != nil {
			return nil, err
		}
		if key, err = derive(key, b.conf.CoinType, true); err != nil {
			return nil, err
		}
		level = LevelCoin
	}

	if level == LevelCoin {
		if tree.CoinKey, err = b.node(key, hrpGenericXvk, hrpGenericXsk, ""); err != nil {
			return nil, err
		}
		accountIdx := params.AccountIdx
		tree.AccountIdx = &accountIdx
		if key, err = derive(key, accountIdx, true); err != nil {
			return nil, err
		}
	}

	account := key
	if tree.AccountKey, err = b.node(account, hrpAcctXvk, hrpAcctXsk, ""); err != nil {
		return nil, err
	}

	staking, err := derive(account, stakingRole, false)
	if err != nil {
		return nil, err
	}
	if staking, err = derive(staking, stakingIndex, false); err != nil {
		return nil, err
	}

	rewardAddr, err := address.CardanoRewardAddress(b.conf.RewardHRP, b.conf.NetworkID, staking.PublicKey())
	if err != nil {
		return nil, err
	}
	if tree.StakingKey, err = b.node(staking, hrpStakeXvk, hrpStakeXsk, rewardAddr); err != nil {
		return nil, err
	}

	changeIdx := change.ChangeIndex()
	tree.ChangeIdx = &changeIdx
	changeKey, err := derive(account, changeIdx, false)
	if err != nil {
		return nil, err
	}
	if tree.ChangeKey, err = b.node(changeKey, hrpGenericXvk, hrpGenericXsk, ""); err != nil {
		return nil, err
	}

	tree.AddressOff = params.AddrOff
	tree.Addresses = make(wallet.Addresses, 0, params.AddrNum)
	for i := range params.AddrNum {
		idx := params.AddrOff + i

		child, err := derive(changeKey, idx, false)
		if err != nil {
			return nil, err
		}

		addr, err := address.CardanoBaseAddress(b.conf.HRP, b.conf.NetworkID, child.PublicKey(), staking.PublicKey())
		if err != nil {
			return nil, err
		}

		node, err := b.node(child, hrpAddrXvk, hrpAddrXsk, addr)
		if err != nil {
			return nil, err
		}
		tree.Addresses = append(tree.Addresses, wallet.AddressEntry{Label: wallet.AddressLabel(idx), Node: node})
	}

	return tree, nil
}

func (b *builder) node(key *kholaw.Key, hrpPub, hrpPriv, addr string) (*wallet.KeyNode, error) {
	exPub, err := address.Bech32(hrpPub, key.XPub())
	if err != nil {
		return nil, err
	}

	pub := "00" + hex.EncodeToString(key.PublicKey())
	node := &wallet.KeyNode{
		ExPub:         exPub,
		RawComprPub:   pub,
		RawUncomprPub: pub,
		Address:       addr,
	}

	if key.IsPrivate() {
		if node.ExPriv, err = address.Bech32(hrpPriv, key.XPrv()); err != nil {
			return nil, err
		}
		node.RawPriv = hex.EncodeToString(key.PrivateKey())
	}

	return node, nil
}

func derive(key *kholaw.Key, index uint32, hardened bool) (*kholaw.Key, error) {
	child, err := key.Derive(index, hardened)
	if err == nil {
		return child, nil
	}

	switch {
	case errors.Is(err, kholaw.ErrIndexOutOfRange):
		return nil, errors.Wrap(wallet.ErrInvalidDerivationIndex, err.Error())
	case errors.Is(err, kholaw.ErrHardenedFromPublic):
		return nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	default:
		return nil, errors.Wrap(wallet.ErrDerivation, err.Error())
	}
}
