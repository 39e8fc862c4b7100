// Package generator turns generation requests into wallets, alone or in
// parallel batches, and writes them to disk.
package generator

import (
	"context"

	"github/chapool/go-hdwallet/internal/wallet"
)

// RootKind selects the material a wallet is created from
type RootKind string

// Root kinds
const (
	RootRandom      RootKind = "random"
	RootMnemonic    RootKind = "mnemonic"
	RootSeed        RootKind = "seed"
	RootExtendedKey RootKind = "extkey"
	RootPrivateKey  RootKind = "privkey"
	RootPublicKey   RootKind = "pubkey"
)

// Request describes one wallet. Input holds the mnemonic, the extended key
// or the hex encoded seed/key depending on Root. Nil options are left to
// the defaults.
type Request struct {
	Name          string   `toml:"name"`
	Coin          string   `toml:"coin"`
	Spec          string   `toml:"spec"`
	Root          RootKind `toml:"root"`
	Input         string   `toml:"input"`
	Passphrase    string   `toml:"passphrase"`
	WordsNum      int      `toml:"words_num"`
	Account       *uint32  `toml:"account"`
	Change        *uint32  `toml:"change"`
	AddressNum    *uint32  `toml:"address_num"`
	AddressOffset *uint32  `toml:"address_offset"`
	Path          string   `toml:"path"`
}

// Result is a generated wallet and the file it was written to
type Result struct {
	Wallet *wallet.Wallet
	Path   string
}

// Service generates wallets
type Service interface {
	// Generate creates and generates the wallet of req
	Generate(ctx context.Context, req Request) (*wallet.Wallet, error)

	// Save writes w to dir as <name>.json and returns the file path. An
	// existing file fails with wallet.ErrIOFailure unless overwriting is
	// configured.
	Save(w *wallet.Wallet, dir string) (string, error)

	// GenerateBatch generates and saves reqs with at most parallel
	// generations at a time. The first failure cancels the batch.
	GenerateBatch(ctx context.Context, reqs []Request, dir string, parallel int) ([]Result, error)
}
