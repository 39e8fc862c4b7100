package env

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/config"
)

// New returns the command printing the config resolved from ENV
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the env",
		Long: `Prints the currently applied env

Values are read from HDWALLET_ prefixed ENV variables and an optional .env.local`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := config.DefaultConfigFromEnv()

			c, err := json.MarshalIndent(conf, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(c))

			return nil
		},
	}
}
