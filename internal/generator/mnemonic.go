package generator

import (
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/factory"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

// MnemonicProvider returns the mnemonic provider of conf. Monero and
// Electrum V1 mnemonics need the wordlist file configured in lists.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func MnemonicProvider(lists config.Mnemonic, conf *coinconf.Config) (seed.Provider, error) {
	switch conf.Family {
	case coinconf.FamilyMonero:
		wl, err := loadWordlist(lists.MoneroWordlist, lists.MoneroPrefixLen, conf)
		if err != nil {
			return nil, err
		}

		return seed.NewMoneroProvider(wl), nil
	case coinconf.FamilyElectrumV1:
		wl, err := loadWordlist(lists.ElectrumV1Wordlist, 0, conf)
		if err != nil {
			return nil, err
		}

		return seed.NewElectrumV1Provider(wl), nil
	case coinconf.FamilyBip, coinconf.FamilyCardano, coinconf.FamilyElectrumV2,
		coinconf.FamilyAlgorand, coinconf.FamilySubstrate:
		return factory.DefaultMnemonicProvider(conf), nil
	default:
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "no mnemonic support for %s", conf.Family)
	}
}

func loadWordlist(path string, prefixLen int, conf *coinconf.Config) (*seed.Wordlist, error) {
	if path == "" {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s %s mnemonics need a wordlist file, none is configured",
			conf.CoinName(), conf.Spec)
	}

	return seed.LoadWordlist(path, prefixLen)
}
