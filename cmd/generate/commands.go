package generate

import (
	"strings"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/generator"
)

func newRandom() *cobra.Command {
	var (
		f        flags
		wordsNum int
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generates a wallet from a new random mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := f.request(cmd, generator.RootRandom, "")
			req.WordsNum = wordsNum

			return run(cmd, &f, req)
		},
	}

	bindFlags(cmd, &f)
	cmd.Flags().IntVar(&wordsNum, wordsFlag, 0, "Number of mnemonic words, HDWALLET_GENERATE_WORDS_NUM when not set")

	return cmd
}

func newMnemonic() *cobra.Command {
	var (
		f             flags
		passphrase    string
		askPassphrase bool
	)

	cmd := &cobra.Command{
		Use:   "mnemonic <words...>",
		Short: "Generates a wallet from a mnemonic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readSecret(cmd, passphrase, askPassphrase, "Passphrase")
			if err != nil {
				return err
			}

			req := f.request(cmd, generator.RootMnemonic, strings.Join(args, " "))
			req.Passphrase = pass

			return run(cmd, &f, req)
		},
	}

	bindFlags(cmd, &f)
	cmd.Flags().StringVar(&passphrase, passphraseFlag, "", "Mnemonic passphrase")
	cmd.Flags().BoolVar(&askPassphrase, askPassphraseFlag, false, "Prompt for the passphrase")
	cmd.MarkFlagsMutuallyExclusive(passphraseFlag, askPassphraseFlag)

	return cmd
}

func newSeed() *cobra.Command {
	return newRawCommand("seed <hex>", "Generates a wallet from seed bytes", generator.RootSeed)
}

func newExtendedKey() *cobra.Command {
	return newRawCommand("extkey <key>", "Generates a wallet from an extended key", generator.RootExtendedKey)
}

func newPrivateKey() *cobra.Command {
	return newRawCommand("privkey <hex>", "Generates a wallet from a private key", generator.RootPrivateKey)
}

func newPublicKey() *cobra.Command {
	return newRawCommand("pubkey <hex>", "Generates a watch-only wallet from a public key", generator.RootPublicKey)
}

func newRawCommand(use, short string, root generator.RootKind) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &f, f.request(cmd, root, args[0]))
		},
	}

	bindFlags(cmd, &f)

	return cmd
}
