package cmd

import (
	"github.com/shieldstats/shieldstats/core"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/spf13/cobra"
)

// donateCmd builds a donation payment request.
var donateCmd = &cobra.Command{
	Use:   "donate",
	Short: "Build a zcash: payment URI for a donation.",
	Long: `Validate a donation amount and memo and print the payment request.

The amount must lie within the slider range (amount-min to amount-max) and is
rounded to the slider step. Memos are limited to 512 bytes and are rejected
for transparent addresses.

Examples:
  # Let the wallet choose the amount
  shieldstats donate --address u1...

  # A fixed amount with a memo, as JSON
  shieldstats donate --address zs1... --amount 0.05 --memo "thanks" --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDonate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build donation request", err)
		}
	},
}
