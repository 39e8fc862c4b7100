package generator

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet"
)

// Jobs is the content of a batch file
//
//	parallel = 4
//
//	[[wallet]]
//	name = "btc-main"
//	coin = "bitcoin"
//	spec = "BIP-0084"
//	root = "mnemonic"
//	input = "abandon abandon ..."
//	address_num = 5
type Jobs struct {
	Parallel int       `toml:"parallel"`
	Wallets  []Request `toml:"wallet"`
}

// LoadJobs parses the batch file at path
func LoadJobs(path string) (*Jobs, error) {
	var jobs Jobs

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(wallet.ErrIOFailure, "failed to read batch file %q: %v", path, err)
	}

	md, err := toml.Decode(string(b), &jobs)
	if err != nil {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "failed to parse batch file %q: %v", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "unknown batch file key %q", undecoded[0].String())
	}

	return &jobs, nil
}
