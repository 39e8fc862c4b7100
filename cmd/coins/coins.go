package coins

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/coinconf"
)

// New returns the command listing the supported coins and specs
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "coins",
		Short: "Lists the supported coins and specs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd

			fmt.Fprintln(w, "COIN\tSPEC\tNAME\tCURVE\tEXTENDED KEYS")
			for _, c := range coinconf.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", c.Coin, c.Spec, c.CoinName(), c.Curve, c.HasExtendedKeys())
			}

			return w.Flush()
		},
	}
}
