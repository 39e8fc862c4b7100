package wallet

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Builder expands a root key into the tree of one scheme family
type Builder interface {
	// Supported returns the generation options the builder understands
	Supported() Option

	// IsWatchOnly reports whether the root cannot spend. A Monero view-only
	// root is watch-only although it holds the private view key.
	IsWatchOnly() bool

	// Build derives the tree for params. It either returns a complete tree or
	// an error, never a partial tree.
	Build(params Params) (Tree, error)
}

// Header is the identifying part of a wallet
type Header struct {
	Name       string
	SpecName   string
	CoinName   string
	Mnemonic   string
	Passphrase string
	SeedBytes  []byte
}

// Shell is a created but not yet generated wallet
type Shell struct {
	header  Header
	builder Builder
}

// NewShell binds a header to the builder that will generate its tree
func NewShell(header Header, builder Builder) *Shell {
	header.SeedBytes = clone(header.SeedBytes)

	return &Shell{
		header:  header,
		builder: builder,
	}
}

// Name returns the wallet name
func (s *Shell) Name() string {
	return s.header.Name
}

// Supported returns the generation options the wallet understands
func (s *Shell) Supported() Option {
	return s.builder.Supported()
}

// IsWatchOnly reports whether the wallet was created from public material only
func (s *Shell) IsWatchOnly() bool {
	return s.builder.IsWatchOnly()
}

// Generate derives the key tree. On error no wallet is returned.
func (s *Shell) Generate(opts ...GenerateOption) (*Wallet, error) {
	params := NewParams(opts...)
	if err := params.CheckSupported(s.builder.Supported()); err != nil {
		return nil, err
	}

	tree, err := s.builder.Build(params)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate wallet %q", s.header.Name)
	}

	return &Wallet{
		header:    s.header,
		tree:      tree,
		watchOnly: s.builder.IsWatchOnly(),
	}, nil
}

// Wallet is a generated, immutable wallet
type Wallet struct {
	header    Header
	tree      Tree
	watchOnly bool
}

// Name returns the wallet name
func (w *Wallet) Name() string {
	return w.header.Name
}

// SpecName returns the derivation spec name
func (w *Wallet) SpecName() string {
	return w.header.SpecName
}

// CoinName returns the coin name, e.g. "Bitcoin (BTC)"
func (w *Wallet) CoinName() string {
	return w.header.CoinName
}

// Mnemonic returns the mnemonic the wallet was created from, if any
func (w *Wallet) Mnemonic() string {
	return w.header.Mnemonic
}

// Passphrase returns the mnemonic passphrase
func (w *Wallet) Passphrase() string {
	return w.header.Passphrase
}

// SeedBytes returns a copy of the seed, nil when not created from a seed
func (w *Wallet) SeedBytes() []byte {
	return clone(w.header.SeedBytes)
}

// Tree returns a copy of the family specific tree
func (w *Wallet) Tree() Tree {
	return w.tree.clone()
}

// IsWatchOnly reports whether the wallet holds no spending key. Monero
// view-only wallets still render the private view key.
func (w *Wallet) IsWatchOnly() bool {
	return w.watchOnly
}

// Nodes returns a copy of every key node of the tree in rendering order
func (w *Wallet) Nodes() []Node {
	return w.tree.clone().nodes()
}

func (w *Wallet) headerDocument() Document {
	var d Document

	d.add("wallet_name", w.header.Name)
	d.add("spec_name", w.header.SpecName)
	d.add("coin_name", w.header.CoinName)
	if w.header.Mnemonic != "" {
		d.add("mnemonic", w.header.Mnemonic)
		d.add("passphrase", w.header.Passphrase)
	}
	if len(w.header.SeedBytes) > 0 {
		d.add("seed_bytes", hex.EncodeToString(w.header.SeedBytes))
	}

	return d
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	return append([]byte(nil), b...)
}
