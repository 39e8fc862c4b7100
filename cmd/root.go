package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/cmd/batch"
	"github/chapool/go-hdwallet/cmd/coins"
	"github/chapool/go-hdwallet/cmd/env"
	"github/chapool/go-hdwallet/cmd/generate"
	"github/chapool/go-hdwallet/cmd/mnemonic"
	"github/chapool/go-hdwallet/internal/config"
)

// rootCmd represents the base command when called without any subcommands
//
//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "hdwallet",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

An offline HD wallet generator. Derives BIP-0044/49/84/86, Cardano Shelley,
Electrum, Monero, Algorand and Substrate key trees and writes them as JSON.
Configured through HDWALLET_ prefixed ENV variables.`, config.ModuleName),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		batch.New(),
		coins.New(),
		env.New(),
		generate.New(),
		mnemonic.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
