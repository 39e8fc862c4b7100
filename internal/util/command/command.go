package command

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/util"
)

// WithConfig configures the global logger from conf and runs f with a
// context carrying that logger
func WithConfig(ctx context.Context, conf config.Config, f func(ctx context.Context, conf config.Config) error) error {
	util.ConfigureGlobalLogger(conf.Logger.Level, conf.Logger.PrettyPrintConsole)

	return f(util.WithLogger(ctx, log.Logger), conf)
}

// NewSubcommandGroup returns a command named name that only groups subCommands
func NewSubcommandGroup(name string, subCommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s related subcommands", name),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Println(err)
			}
			os.Exit(1)
		},
	}

	cmd.AddCommand(
		subCommands...,
	)

	return cmd
}
