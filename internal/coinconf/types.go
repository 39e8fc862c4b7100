package coinconf

import (
	"fmt"
)

// CoinID identifies a coin (network included)
type CoinID string

// Supported coins
const (
	Bitcoin         CoinID = "bitcoin"
	BitcoinTestnet  CoinID = "bitcoin_testnet"
	BitcoinCash     CoinID = "bitcoin_cash"
	Litecoin        CoinID = "litecoin"
	Dogecoin        CoinID = "dogecoin"
	Dash            CoinID = "dash"
	Ethereum        CoinID = "ethereum"
	EthereumClassic CoinID = "ethereum_classic"
	Cardano         CoinID = "cardano"
	CardanoTestnet  CoinID = "cardano_testnet"
	Monero          CoinID = "monero"
	MoneroTestnet   CoinID = "monero_testnet"
	Algorand        CoinID = "algorand"
	Polkadot        CoinID = "polkadot"
	Kusama          CoinID = "kusama"
	Substrate       CoinID = "substrate"
)

// Spec is a derivation specification
type Spec string

// Supported specs
const (
	Bip44              Spec = "BIP-0044"
	Bip49              Spec = "BIP-0049"
	Bip84              Spec = "BIP-0084"
	Bip86              Spec = "BIP-0086"
	CardanoShelley     Spec = "Cardano-Shelley"
	ElectrumV1         Spec = "Electrum-V1"
	ElectrumV2Standard Spec = "Electrum-V2-Standard"
	ElectrumV2Segwit   Spec = "Electrum-V2-Segwit"
	MoneroSpec         Spec = "Monero"
	AlgorandSpec       Spec = "Algorand"
	SubstrateSr25519   Spec = "Substrate-Sr25519"
)

// Family groups specs sharing one tree builder
type Family int

// Scheme families
const (
	FamilyBip Family = iota
	FamilyCardano
	FamilyElectrumV1
	FamilyElectrumV2
	FamilyMonero
	FamilyAlgorand
	FamilySubstrate
)

func (f Family) String() string {
	switch f {
	case FamilyBip:
		return "bip"
	case FamilyCardano:
		return "cardano"
	case FamilyElectrumV1:
		return "electrum-v1"
	case FamilyElectrumV2:
		return "electrum-v2"
	case FamilyMonero:
		return "monero"
	case FamilyAlgorand:
		return "algorand"
	case FamilySubstrate:
		return "substrate"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Curve is the elliptic curve (and key scheme) of a spec
type Curve int

// Curves
const (
	Secp256k1 Curve = iota
	Ed25519Kholaw
	Ed25519Monero
	Ed25519
	Sr25519
)

func (c Curve) String() string {
	switch c {
	case Secp256k1:
		return "secp256k1"
	case Ed25519Kholaw:
		return "ed25519-kholaw"
	case Ed25519Monero:
		return "ed25519-monero"
	case Ed25519:
		return "ed25519"
	case Sr25519:
		return "sr25519"
	default:
		return fmt.Sprintf("curve(%d)", int(c))
	}
}

// AddressType selects the address encoder
type AddressType int

// Address encodings
const (
	AddrP2PKH AddressType = iota
	AddrP2PKHUncompressed
	AddrP2SHP2WPKH
	AddrP2WPKH
	AddrP2TR
	AddrCashAddrP2PKH
	AddrEthereum
	AddrCardanoShelley
	AddrMonero
	AddrAlgorand
	AddrSS58
)

// KeyVersions are the BIP32 version bytes of extended keys
type KeyVersions struct {
	Public  [4]byte
	Private [4]byte
}

// Config is the immutable configuration of one coin under one spec
type Config struct {
	Coin         CoinID
	Name         string
	Abbreviation string
	Spec         Spec
	Family       Family
	Curve        Curve

	// BIP32 like trees
	Purpose  uint32
	CoinType uint32
	Versions KeyVersions

	Address AddressType

	// base58check version bytes
	P2PKHNetVer byte
	P2SHNetVer  byte

	// HRP is the bech32 human readable part (segwit, Cardano base address)
	// or the CashAddr prefix
	HRP string

	// Cardano reward address prefix and network id
	RewardHRP string
	NetworkID byte

	HasWIF    bool
	WIFNetVer byte

	MoneroNetVer        byte
	MoneroSubaddrNetVer byte

	SS58Prefix uint16
}

// CoinName returns the display name, e.g. "Bitcoin (BTC)"
func (c *Config) CoinName() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Abbreviation)
}

// HasExtendedKeys reports whether the spec defines an extended key encoding
func (c *Config) HasExtendedKeys() bool {
	switch c.Family {
	case FamilyBip, FamilyCardano, FamilyElectrumV2:
		return true
	case FamilyElectrumV1, FamilyMonero, FamilyAlgorand, FamilySubstrate:
		return false
	default:
		return false
	}
}
