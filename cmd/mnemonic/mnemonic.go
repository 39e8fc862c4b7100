package mnemonic

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/generator"
	"github/chapool/go-hdwallet/internal/util/command"
	"github/chapool/go-hdwallet/internal/wallet/factory"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

const (
	coinFlag  = "coin"
	specFlag  = "spec"
	wordsFlag = "words"
)

// New returns the mnemonic command group
func New() *cobra.Command {
	return command.NewSubcommandGroup("mnemonic",
		newGenerate(),
		newValidate(),
	)
}

type flags struct {
	coin string
	spec string
}

func bindFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().StringVar(&f.coin, coinFlag, "bitcoin", "Coin, see the coins command")
	cmd.Flags().StringVar(&f.spec, specFlag, "bip44", "Derivation spec, see the coins command")
}

//nolint:ireturn
func (f *flags) provider(lists config.Mnemonic) (seed.Provider, *coinconf.Config, error) {
	coin, err := coinconf.ParseCoin(f.coin)
	if err != nil {
		return nil, nil, err
	}

	spec, err := coinconf.ParseSpec(f.spec)
	if err != nil {
		return nil, nil, err
	}

	conf, err := coinconf.Lookup(coin, spec)
	if err != nil {
		return nil, nil, err
	}

	p, err := generator.MnemonicProvider(lists, conf)
	if err != nil {
		return nil, nil, err
	}

	return p, conf, nil
}

func newGenerate() *cobra.Command {
	var (
		f        flags
		wordsNum int
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generates a new mnemonic for a coin and spec",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := config.DefaultConfigFromEnv()

			p, conf, err := f.provider(env.Mnemonic)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed(wordsFlag) {
				wordsNum = factory.WordsNum(conf, env.Generate.WordsNum)
			}

			m, err := p.Generate(wordsNum)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), m)

			return nil
		},
	}

	bindFlags(cmd, &f)
	cmd.Flags().IntVar(&wordsNum, wordsFlag, 0, "Number of words, HDWALLET_GENERATE_WORDS_NUM when not set")

	return cmd
}

func newValidate() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "validate <words...>",
		Short: "Validates a mnemonic for a coin and spec",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := f.provider(config.DefaultConfigFromEnv().Mnemonic)
			if err != nil {
				return err
			}

			if err := p.Validate(strings.Join(args, " ")); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "valid")

			return nil
		},
	}

	bindFlags(cmd, &f)

	return cmd
}
