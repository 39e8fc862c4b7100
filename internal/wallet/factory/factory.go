// Package factory creates wallet shells for a coin and spec from the
// different kinds of root material.
package factory

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/algorand"
	"github/chapool/go-hdwallet/internal/wallet/bip"
	"github/chapool/go-hdwallet/internal/wallet/cardano"
	"github/chapool/go-hdwallet/internal/wallet/electrum"
	"github/chapool/go-hdwallet/internal/wallet/monero"
	"github/chapool/go-hdwallet/internal/wallet/seed"
	"github/chapool/go-hdwallet/internal/wallet/substrate"
)

type (
	bytesRoot  func(conf *coinconf.Config, b []byte) (wallet.Builder, error)
	stringRoot func(conf *coinconf.Config, s string) (wallet.Builder, error)
)

// roots are the root strategies of a family; nil entries are unsupported
type roots struct {
	fromSeed        bytesRoot
	fromExtendedKey stringRoot
	fromPrivateKey  bytesRoot
	fromPublicKey   bytesRoot
}

//nolint:gochecknoglobals
var familyRoots = map[coinconf.Family]roots{
	coinconf.FamilyBip: {
		fromSeed:        bip.NewFromSeed,
		fromExtendedKey: bip.NewFromExtendedKey,
		fromPrivateKey:  bip.NewFromPrivateKey,
		fromPublicKey:   bip.NewFromPublicKey,
	},
	coinconf.FamilyCardano: {
		fromSeed:        cardano.NewFromSeed,
		fromExtendedKey: cardano.NewFromExtendedKey,
		fromPrivateKey:  cardano.NewFromPrivateKey,
		fromPublicKey:   cardano.NewFromPublicKey,
	},
	coinconf.FamilyElectrumV1: {
		fromSeed:       electrum.NewV1FromSeed,
		fromPrivateKey: electrum.NewV1FromPrivateKey,
		fromPublicKey:  electrum.NewV1FromPublicKey,
	},
	coinconf.FamilyElectrumV2: {
		fromSeed:        electrum.NewV2FromSeed,
		fromExtendedKey: electrum.NewV2FromExtendedKey,
		fromPrivateKey:  electrum.NewV2FromPrivateKey,
		fromPublicKey:   electrum.NewV2FromPublicKey,
	},
	coinconf.FamilyMonero: {
		fromSeed:       monero.NewFromSeed,
		fromPrivateKey: monero.NewFromPrivateKey,
		fromPublicKey:  monero.NewFromPublicKey,
	},
	coinconf.FamilyAlgorand: {
		fromSeed:       algorand.NewFromSeed,
		fromPrivateKey: algorand.NewFromPrivateKey,
		fromPublicKey:  algorand.NewFromPublicKey,
	},
	coinconf.FamilySubstrate: {
		fromSeed:       substrate.NewFromSeed,
		fromPrivateKey: substrate.NewFromPrivateKey,
		fromPublicKey:  substrate.NewFromPublicKey,
	},
}

// Factory creates wallet shells of one coin and spec
type Factory struct {
	conf     *coinconf.Config
	roots    roots
	mnemonic seed.Provider
	log      zerolog.Logger
}

// Option configures a Factory
type Option func(*Factory)

// WithMnemonicProvider replaces the default mnemonic provider of the spec
func WithMnemonicProvider(p seed.Provider) Option {
	return func(f *Factory) {
		f.mnemonic = p
	}
}

// WithLogger sets the logger, disabled by default
func WithLogger(l zerolog.Logger) Option {
	return func(f *Factory) {
		f.log = l
	}
}

// New creates the factory of coin under spec
func New(coin coinconf.CoinID, spec coinconf.Spec, opts ...Option) (*Factory, error) {
	conf, err := coinconf.Lookup(coin, spec)
	if err != nil {
		return nil, err
	}

	r, ok := familyRoots[conf.Family]
	if !ok {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "no builder for %s", conf.Family)
	}

	f := &Factory{
		conf:     conf,
		roots:    r,
		mnemonic: DefaultMnemonicProvider(conf),
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// DefaultMnemonicProvider returns the mnemonic provider of the spec, nil when
// the spec has no built-in wordlist. Monero and Electrum V1 providers are
// built over a wordlist with seed.NewMoneroProvider and
// seed.NewElectrumV1Provider and passed with WithMnemonicProvider.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func DefaultMnemonicProvider(conf *coinconf.Config) seed.Provider {
	switch conf.Family {
	case coinconf.FamilyBip:
		return seed.NewBip39Provider()
	case coinconf.FamilyCardano:
		return seed.NewIcarusProvider()
	case coinconf.FamilyElectrumV2:
		if conf.Spec == coinconf.ElectrumV2Segwit {
			return seed.NewElectrumV2Provider(seed.ElectrumSegwit)
		}

		return seed.NewElectrumV2Provider(seed.ElectrumStandard)
	case coinconf.FamilyAlgorand:
		return seed.NewAlgorandProvider()
	case coinconf.FamilySubstrate:
		return seed.NewSubstrateProvider()
	case coinconf.FamilyElectrumV1, coinconf.FamilyMonero:
		return nil
	default:
		return nil
	}
}

// WordsNum returns the mnemonic length to use for conf when fallback is
// configured. Algorand, Monero and Electrum V1 mnemonics have a fixed length.
func WordsNum(conf *coinconf.Config, fallback int) int {
	switch conf.Family {
	case coinconf.FamilyAlgorand:
		return seed.AlgorandWordsNum
	case coinconf.FamilyMonero:
		return seed.MoneroWordsNum
	case coinconf.FamilyElectrumV1:
		return seed.ElectrumV1WordsNum
	case coinconf.FamilyBip, coinconf.FamilyCardano, coinconf.FamilyElectrumV2, coinconf.FamilySubstrate:
		return fallback
	default:
		return fallback
	}
}

// Config returns a copy of the coin configuration
func (f *Factory) Config() coinconf.Config {
	return *f.conf
}

// CreateRandom generates a new mnemonic of wordsNum words and creates the
// wallet from it with an empty passphrase
func (f *Factory) CreateRandom(name string, wordsNum int) (*wallet.Shell, error) {
	if f.mnemonic == nil {
		return nil, f.unsupported("mnemonic")
	}

	mnemonic, err := f.mnemonic.Generate(wordsNum)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate mnemonic")
	}

	return f.CreateFromMnemonic(name, mnemonic, "")
}

// CreateFromMnemonic creates the wallet of a mnemonic and its passphrase
func (f *Factory) CreateFromMnemonic(name, mnemonic, passphrase string) (*wallet.Shell, error) {
	if f.mnemonic == nil {
		return nil, f.unsupported("mnemonic")
	}

	if err := f.mnemonic.Validate(mnemonic); err != nil {
		return nil, err
	}

	seedBytes, err := f.mnemonic.ToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	builder, err := f.roots.fromSeed(f.conf, seedBytes)
	if err != nil {
		return nil, err
	}

	header := f.header(name)
	header.Mnemonic = mnemonic
	header.Passphrase = passphrase
	header.SeedBytes = seedBytes

	return f.shell("mnemonic", header, builder), nil
}

// CreateFromSeed creates the wallet of raw seed bytes
func (f *Factory) CreateFromSeed(name string, seedBytes []byte) (*wallet.Shell, error) {
	builder, err := f.roots.fromSeed(f.conf, seedBytes)
	if err != nil {
		return nil, err
	}

	header := f.header(name)
	header.SeedBytes = seedBytes

	return f.shell("seed", header, builder), nil
}

// CreateFromExtendedKey creates the wallet of an extended key
func (f *Factory) CreateFromExtendedKey(name, exKey string) (*wallet.Shell, error) {
	if f.roots.fromExtendedKey == nil {
		return nil, f.unsupported("extended key")
	}

	builder, err := f.roots.fromExtendedKey(f.conf, exKey)
	if err != nil {
		return nil, err
	}

	return f.shell("extended_key", f.header(name), builder), nil
}

// CreateFromPrivateKey creates the wallet of a raw private key
func (f *Factory) CreateFromPrivateKey(name string, priv []byte) (*wallet.Shell, error) {
	builder, err := f.roots.fromPrivateKey(f.conf, priv)
	if err != nil {
		return nil, err
	}

	return f.shell("private_key", f.header(name), builder), nil
}

// CreateFromPublicKey creates a watch-only wallet of a raw public key
func (f *Factory) CreateFromPublicKey(name string, pub []byte) (*wallet.Shell, error) {
	builder, err := f.roots.fromPublicKey(f.conf, pub)
	if err != nil {
		return nil, err
	}

	return f.shell("public_key", f.header(name), builder), nil
}

func (f *Factory) header(name string) wallet.Header {
	return wallet.Header{
		Name:     name,
		SpecName: string(f.conf.Spec),
		CoinName: f.conf.CoinName(),
	}
}

func (f *Factory) shell(root string, header wallet.Header, builder wallet.Builder) *wallet.Shell {
	f.log.Debug().
		Str("wallet_name", header.Name).
		Str("coin", string(f.conf.Coin)).
		Str("spec", string(f.conf.Spec)).
		Str("root", root).
		Bool("watch_only", builder.IsWatchOnly()).
		Msg("Created wallet")

	return wallet.NewShell(header, builder)
}

func (f *Factory) unsupported(root string) error {
	return errors.Wrapf(wallet.ErrUnsupportedParameter, "%s %s wallets cannot be created from a %s",
		f.conf.CoinName(), f.conf.Spec, root)
}
