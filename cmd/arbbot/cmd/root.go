package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbbot",
	Short: "A put-call parity paper-trading bot for NIFTY options",
	Long: `Arbbot watches NIFTY option quotes for put-call parity violations and
paper-trades them: no orders are ever placed.

It provides tools for:
  - Paper trading against a built-in quote simulator
  - Shadow trading against live broker quotes (read-only)
  - Replaying recorded quote snapshots from CSV
  - Querying the trade journal
  - Risk-gated position sizing with a hard kill switch`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
