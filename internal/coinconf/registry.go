package coinconf

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet"
)

// ErrUnknownCoin is returned when a coin/spec combination is not registered
var ErrUnknownCoin = errors.Wrap(wallet.ErrUnsupportedParameter, "unknown coin")

//nolint:gochecknoglobals
var (
	versionsXpub = KeyVersions{Public: [4]byte{0x04, 0x88, 0xb2, 0x1e}, Private: [4]byte{0x04, 0x88, 0xad, 0xe4}}
	versionsYpub = KeyVersions{Public: [4]byte{0x04, 0x9d, 0x7c, 0xb2}, Private: [4]byte{0x04, 0x9d, 0x78, 0x78}}
	versionsZpub = KeyVersions{Public: [4]byte{0x04, 0xb2, 0x47, 0x46}, Private: [4]byte{0x04, 0xb2, 0x43, 0x0c}}
	versionsTpub = KeyVersions{Public: [4]byte{0x04, 0x35, 0x87, 0xcf}, Private: [4]byte{0x04, 0x35, 0x83, 0x94}}
	versionsUpub = KeyVersions{Public: [4]byte{0x04, 0x4a, 0x52, 0x62}, Private: [4]byte{0x04, 0x4a, 0x4e, 0x28}}
	versionsVpub = KeyVersions{Public: [4]byte{0x04, 0x5f, 0x1c, 0xf6}, Private: [4]byte{0x04, 0x5f, 0x18, 0xbc}}
	versionsLtub = KeyVersions{Public: [4]byte{0x01, 0x9d, 0xa4, 0x62}, Private: [4]byte{0x01, 0x9d, 0x9c, 0xfe}}
	versionsMtub = KeyVersions{Public: [4]byte{0x01, 0xb2, 0x6e, 0xf6}, Private: [4]byte{0x01, 0xb2, 0x67, 0x92}}
	versionsDgub = KeyVersions{Public: [4]byte{0x02, 0xfa, 0xca, 0xfd}, Private: [4]byte{0x02, 0xfa, 0xc3, 0x98}}
)

// BIP purposes and coin types
const (
	purposeBip44 = 44
	purposeBip49 = 49
	purposeBip84 = 84
	purposeBip86 = 86
	purposeCip   = 1852

	coinTypeBitcoin     = 0
	coinTypeTestnet     = 1
	coinTypeLitecoin    = 2
	coinTypeDogecoin    = 3
	coinTypeDash        = 5
	coinTypeEthereum    = 60
	coinTypeEthClassic  = 61
	coinTypeBitcoinCash = 145
	coinTypeCardano     = 1815
)

type key struct {
	coin CoinID
	spec Spec
}

// secpCoin describes a secp256k1 coin; one Config is built per entry of versions
type secpCoin struct {
	id         CoinID
	name       string
	abbr       string
	coinType   uint32
	p2pkh      byte
	p2sh       byte
	hrp        string
	wif        byte
	hasWIF     bool
	legacyAddr AddressType
	versions   map[Spec]KeyVersions
}

//nolint:gochecknoglobals,mnd
var secpCoins = []secpCoin{
	{
		id: Bitcoin, name: "Bitcoin", abbr: "BTC", coinType: coinTypeBitcoin,
		p2pkh: 0x00, p2sh: 0x05, hrp: "bc", wif: 0x80, hasWIF: true, legacyAddr: AddrP2PKH,
		versions: map[Spec]KeyVersions{Bip44: versionsXpub, Bip49: versionsYpub, Bip84: versionsZpub, Bip86: versionsXpub},
	},
	{
		id: BitcoinTestnet, name: "Bitcoin TestNet", abbr: "BTC", coinType: coinTypeTestnet,
		p2pkh: 0x6f, p2sh: 0xc4, hrp: "tb", wif: 0xef, hasWIF: true, legacyAddr: AddrP2PKH,
		versions: map[Spec]KeyVersions{Bip44: versionsTpub, Bip49: versionsUpub, Bip84: versionsVpub, Bip86: versionsTpub},
	},
	{
		id: BitcoinCash, name: "Bitcoin Cash", abbr: "BCH", coinType: coinTypeBitcoinCash,
		p2pkh: 0x00, p2sh: 0x05, hrp: "bitcoincash", wif: 0x80, hasWIF: true, legacyAddr: AddrCashAddrP2PKH,
		versions: map[Spec]KeyVersions{Bip44: versionsXpub},
	},
	{
		id: Litecoin, name: "Litecoin", abbr: "LTC", coinType: coinTypeLitecoin,
		p2pkh: 0x30, p2sh: 0x32, hrp: "ltc", wif: 0xb0, hasWIF: true, legacyAddr: AddrP2PKH,
		versions: map[Spec]KeyVersions{Bip44: versionsLtub, Bip49: versionsMtub, Bip84: versionsZpub},
	},
	{
		id: Dogecoin, name: "Dogecoin", abbr: "DOGE", coinType: coinTypeDogecoin,
		p2pkh: 0x1e, p2sh: 0x16, wif: 0x9e, hasWIF: true, legacyAddr: AddrP2PKH,
		versions: map[Spec]KeyVersions{Bip44: versionsDgub},
	},
	{
		id: Dash, name: "Dash", abbr: "DASH", coinType: coinTypeDash,
		p2pkh: 0x4c, p2sh: 0x10, wif: 0xcc, hasWIF: true, legacyAddr: AddrP2PKH,
		versions: map[Spec]KeyVersions{Bip44: versionsXpub},
	},
	{
		id: Ethereum, name: "Ethereum", abbr: "ETH", coinType: coinTypeEthereum,
		legacyAddr: AddrEthereum,
		versions:   map[Spec]KeyVersions{Bip44: versionsXpub},
	},
	{
		id: EthereumClassic, name: "Ethereum Classic", abbr: "ETC", coinType: coinTypeEthClassic,
		legacyAddr: AddrEthereum,
		versions:   map[Spec]KeyVersions{Bip44: versionsXpub},
	},
}

//nolint:gochecknoglobals
var registry = build()

//nolint:mnd
func build() map[key]*Config {
	reg := make(map[key]*Config)
	add := func(c Config) {
		conf := c
		reg[key{coin: c.Coin, spec: c.Spec}] = &conf
	}

	for _, coin := range secpCoins {
		for spec, versions := range coin.versions {
			conf := Config{
				Coin:         coin.id,
				Name:         coin.name,
				Abbreviation: coin.abbr,
				Spec:         spec,
				Family:       FamilyBip,
				Curve:        Secp256k1,
				CoinType:     coin.coinType,
				Versions:     versions,
				P2PKHNetVer:  coin.p2pkh,
				P2SHNetVer:   coin.p2sh,
				HRP:          coin.hrp,
				HasWIF:       coin.hasWIF,
				WIFNetVer:    coin.wif,
			}

			switch spec {
			case Bip44:
				conf.Purpose, conf.Address = purposeBip44, coin.legacyAddr
			case Bip49:
				conf.Purpose, conf.Address = purposeBip49, AddrP2SHP2WPKH
			case Bip84:
				conf.Purpose, conf.Address = purposeBip84, AddrP2WPKH
			case Bip86:
				conf.Purpose, conf.Address = purposeBip86, AddrP2TR
			}

			add(conf)
		}
	}

	add(Config{
		Coin: Cardano, Name: "Cardano", Abbreviation: "ADA", Spec: CardanoShelley,
		Family: FamilyCardano, Curve: Ed25519Kholaw, Purpose: purposeCip, CoinType: coinTypeCardano,
		Address: AddrCardanoShelley, HRP: "addr", RewardHRP: "stake", NetworkID: 1,
	})
	add(Config{
		Coin: CardanoTestnet, Name: "Cardano TestNet", Abbreviation: "ADA", Spec: CardanoShelley,
		Family: FamilyCardano, Curve: Ed25519Kholaw, Purpose: purposeCip, CoinType: coinTypeCardano,
		Address: AddrCardanoShelley, HRP: "addr_test", RewardHRP: "stake_test", NetworkID: 0,
	})

	add(Config{
		Coin: Bitcoin, Name: "Bitcoin", Abbreviation: "BTC", Spec: ElectrumV1,
		Family: FamilyElectrumV1, Curve: Secp256k1, Address: AddrP2PKHUncompressed,
		P2PKHNetVer: 0x00, P2SHNetVer: 0x05, HRP: "bc", HasWIF: true, WIFNetVer: 0x80,
	})
	for _, c := range []struct {
		id               CoinID
		name             string
		p2pkh, p2sh, wif byte
		hrp              string
		standard, segwit KeyVersions
	}{
		{Bitcoin, "Bitcoin", 0x00, 0x05, 0x80, "bc", versionsXpub, versionsZpub},
		{BitcoinTestnet, "Bitcoin TestNet", 0x6f, 0xc4, 0xef, "tb", versionsTpub, versionsVpub},
	} {
		base := Config{
			Coin: c.id, Name: c.name, Abbreviation: "BTC", Family: FamilyElectrumV2, Curve: Secp256k1,
			P2PKHNetVer: c.p2pkh, P2SHNetVer: c.p2sh, HRP: c.hrp, HasWIF: true, WIFNetVer: c.wif,
		}

		standard := base
		standard.Spec, standard.Address, standard.Versions = ElectrumV2Standard, AddrP2PKH, c.standard
		add(standard)

		segwit := base
		segwit.Spec, segwit.Address, segwit.Versions = ElectrumV2Segwit, AddrP2WPKH, c.segwit
		add(segwit)
	}

	add(Config{
		Coin: Monero, Name: "Monero", Abbreviation: "XMR", Spec: MoneroSpec,
		Family: FamilyMonero, Curve: Ed25519Monero, Address: AddrMonero,
		MoneroNetVer: 18, MoneroSubaddrNetVer: 42,
	})
	add(Config{
		Coin: MoneroTestnet, Name: "Monero TestNet", Abbreviation: "XMR", Spec: MoneroSpec,
		Family: FamilyMonero, Curve: Ed25519Monero, Address: AddrMonero,
		MoneroNetVer: 53, MoneroSubaddrNetVer: 63,
	})

	add(Config{
		Coin: Algorand, Name: "Algorand", Abbreviation: "ALGO", Spec: AlgorandSpec,
		Family: FamilyAlgorand, Curve: Ed25519, Address: AddrAlgorand,
	})

	for _, c := range []struct {
		id     CoinID
		name   string
		abbr   string
		prefix uint16
	}{
		{Polkadot, "Polkadot", "DOT", 0},
		{Kusama, "Kusama", "KSM", 2},
		{Substrate, "Generic Substrate", "SUB", 42},
	} {
		add(Config{
			Coin: c.id, Name: c.name, Abbreviation: c.abbr, Spec: SubstrateSr25519,
			Family: FamilySubstrate, Curve: Sr25519, Address: AddrSS58, SS58Prefix: c.prefix,
		})
	}

	return reg
}

// Lookup returns the configuration of coin under spec
func Lookup(coin CoinID, spec Spec) (*Config, error) {
	conf, ok := registry[key{coin: coin, spec: spec}]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCoin, "%s is not available for %s", coin, spec)
	}

	c := *conf

	return &c, nil
}

// All returns every registered configuration sorted by coin and spec
func All() []Config {
	all := make([]Config, 0, len(registry))
	for _, conf := range registry {
		all = append(all, *conf)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Coin != all[j].Coin {
			return all[i].Coin < all[j].Coin
		}

		return all[i].Spec < all[j].Spec
	})

	return all
}

// Specs returns the specs registered for coin
func Specs(coin CoinID) []Spec {
	var specs []Spec
	for _, conf := range All() {
		if conf.Coin == coin {
			specs = append(specs, conf.Spec)
		}
	}

	return specs
}

// ParseCoin resolves a coin id, case insensitive
func ParseCoin(s string) (CoinID, error) {
	id := CoinID(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for k := range registry {
		if k.coin == id {
			return id, nil
		}
	}

	return "", errors.Wrapf(ErrUnknownCoin, "unknown coin %q", s)
}

//nolint:gochecknoglobals
var specAliases = map[string]Spec{
	"bip44":              Bip44,
	"bip0044":            Bip44,
	"bip49":              Bip49,
	"bip0049":            Bip49,
	"bip84":              Bip84,
	"bip0084":            Bip84,
	"bip86":              Bip86,
	"bip0086":            Bip86,
	"cardano":            CardanoShelley,
	"cardanoshelley":     CardanoShelley,
	"cip1852":            CardanoShelley,
	"electrumv1":         ElectrumV1,
	"electrumv2":         ElectrumV2Standard,
	"electrumv2standard": ElectrumV2Standard,
	"electrumv2segwit":   ElectrumV2Segwit,
	"monero":             MoneroSpec,
	"algorand":           AlgorandSpec,
	"substrate":          SubstrateSr25519,
	"substratesr25519":   SubstrateSr25519,
}

// ParseSpec resolves a spec name or one of its short aliases (bip84, electrum-v2-segwit, ...)
func ParseSpec(s string) (Spec, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if spec, ok := specAliases[norm]; ok {
		return spec, nil
	}

	return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "unknown spec %q", s)
}
