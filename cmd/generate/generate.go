package generate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/generator"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/util/command"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/term"
)

const (
	coinFlag          = "coin"
	specFlag          = "spec"
	nameFlag          = "name"
	accountFlag       = "account"
	changeFlag        = "change"
	addrNumFlag       = "addr-num"
	addrOffFlag       = "addr-off"
	pathFlag          = "path"
	outFlag           = "out"
	stdoutFlag        = "stdout"
	passphraseFlag    = "passphrase"
	askPassphraseFlag = "ask-passphrase"
	wordsFlag         = "words"
)

// New returns the generate command group
func New() *cobra.Command {
	return command.NewSubcommandGroup("generate",
		newRandom(),
		newMnemonic(),
		newSeed(),
		newExtendedKey(),
		newPrivateKey(),
		newPublicKey(),
	)
}

type flags struct {
	coin    string
	spec    string
	name    string
	account uint32
	change  uint32
	addrNum uint32
	addrOff uint32
	path    string
	out     string
	stdout  bool
}

func bindFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().StringVar(&f.coin, coinFlag, "bitcoin", "Coin, see the coins command")
	cmd.Flags().StringVar(&f.spec, specFlag, "bip44", "Derivation spec, see the coins command")
	cmd.Flags().StringVar(&f.name, nameFlag, "", "Wallet name, random when empty")
	cmd.Flags().Uint32Var(&f.account, accountFlag, 0, "Account index")
	cmd.Flags().Uint32Var(&f.change, changeFlag, 0, "Change chain, 0 external and 1 internal")
	cmd.Flags().Uint32Var(&f.addrNum, addrNumFlag, 0, "Number of addresses, HDWALLET_GENERATE_ADDRESS_NUM when not set")
	cmd.Flags().Uint32Var(&f.addrOff, addrOffFlag, 0, "Index of the first address")
	cmd.Flags().StringVar(&f.path, pathFlag, "", "Substrate derivation path, e.g. //hard/soft")
	cmd.Flags().StringVar(&f.out, outFlag, "", "Output directory, HDWALLET_OUTPUT_DIR when not set")
	cmd.Flags().BoolVar(&f.stdout, stdoutFlag, false, "Print the wallet instead of writing a file")
}

// request converts the flags into a generator request, options that were
// not passed stay unset
func (f *flags) request(cmd *cobra.Command, root generator.RootKind, input string) generator.Request {
	req := generator.Request{
		Name:  f.name,
		Coin:  f.coin,
		Spec:  f.spec,
		Root:  root,
		Input: input,
		Path:  f.path,
	}

	if cmd.Flags().Changed(accountFlag) {
		req.Account = &f.account
	}
	if cmd.Flags().Changed(changeFlag) {
		req.Change = &f.change
	}
	if cmd.Flags().Changed(addrNumFlag) {
		req.AddressNum = &f.addrNum
	}
	if cmd.Flags().Changed(addrOffFlag) {
		req.AddressOffset = &f.addrOff
	}

	return req
}

func run(cmd *cobra.Command, f *flags, req generator.Request) error {
	conf := config.DefaultConfigFromEnv()
	recorder := metrics.NewRecorder()

	return command.WithConfig(cmd.Context(), conf, func(ctx context.Context, conf config.Config) error {
		log := util.LogFromContext(ctx)

		err := generate(ctx, cmd, f, conf, recorder, req)

		if conf.Metrics.TextfilePath != "" {
			if merr := recorder.WriteTextfile(conf.Metrics.TextfilePath); merr != nil {
				log.Error().Err(merr).Msg("Failed to write metrics")
			}
		}

		return err
	})
}

func generate(ctx context.Context, cmd *cobra.Command, f *flags, conf config.Config, recorder *metrics.Recorder, req generator.Request) error {
	log := util.LogFromContext(ctx)
	svc := generator.NewService(conf, recorder)

	w, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}

	if f.stdout {
		b, err := wallet.ToJSONIndent(w, strings.Repeat(" ", conf.Output.Indent))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))

		return nil
	}

	dir := f.out
	if dir == "" {
		dir = conf.Output.Dir
	}

	path, err := svc.Save(w, dir)
	if err != nil {
		return err
	}

	log.Info().Str("wallet_name", w.Name()).Str("path", path).Bool("watch_only", w.IsWatchOnly()).Msg("Wallet generated")

	return nil
}

// readSecret returns value, or prompts for it without echo when prompt is set
func readSecret(cmd *cobra.Command, value string, prompt bool, label string) (string, error) {
	if !prompt {
		return value, nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrapf(wallet.ErrIOFailure, "failed to read %s: %v", strings.ToLower(label), err)
	}

	return string(b), nil
}
