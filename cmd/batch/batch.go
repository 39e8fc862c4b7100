package batch

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/generator"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/util/command"
)

const (
	outFlag      = "out"
	parallelFlag = "parallel"
)

// New returns the command generating all wallets of a TOML batch file
func New() *cobra.Command {
	var (
		out      string
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "batch <file.toml>",
		Short: "Generates the wallets of a TOML batch file in parallel",
		Long: `Generates the wallets of a TOML batch file in parallel

Each [[wallet]] table takes the keys name, coin, spec, root, input,
passphrase, words_num, account, change, address_num, address_offset and path.
Every wallet is written to <out>/<name>.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.DefaultConfigFromEnv()
			recorder := metrics.NewRecorder()

			return command.WithConfig(cmd.Context(), conf, func(ctx context.Context, conf config.Config) error {
				log := util.LogFromContext(ctx)

				jobs, err := generator.LoadJobs(args[0])
				if err != nil {
					return err
				}

				workers := jobs.Parallel
				if cmd.Flags().Changed(parallelFlag) {
					workers = parallel
				}

				dir := out
				if dir == "" {
					dir = conf.Output.Dir
				}

				results, err := generator.NewService(conf, recorder).GenerateBatch(ctx, jobs.Wallets, dir, workers)

				if conf.Metrics.TextfilePath != "" {
					if merr := recorder.WriteTextfile(conf.Metrics.TextfilePath); merr != nil {
						log.Error().Err(merr).Msg("Failed to write metrics")
					}
				}

				if err != nil {
					return err
				}

				for _, r := range results {
					log.Info().Str("wallet_name", r.Wallet.Name()).Str("path", r.Path).Msg("Wallet generated")
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&out, outFlag, "", "Output directory, HDWALLET_OUTPUT_DIR when not set")
	cmd.Flags().IntVar(&parallel, parallelFlag, 0, "Parallel generations, overrides the batch file, number of CPUs when 0")

	return cmd
}
