package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamdhruvsharma3/arbitrage/engine"
)

var shadowCmd = &cobra.Command{
	Use:   "shadow",
	Short: "Shadow-trade live broker quotes (read-only)",
	Long: `Run the bot against live quotes from the configured broker feed.
Quotes pass a quality gate before the engine sees them, and settlement uses
the convergence model since real exit fills are not observable.

Broker credentials come from the environment (or a .env file):
  BROKER_NAME, BROKER_API_KEY, BROKER_API_SECRET, BROKER_BASE_URL

Example:
  arbbot shadow --config configs/shadow.yaml`,
	RunE: runShadow,
}

var shadowConfigPath string

func init() {
	rootCmd.AddCommand(shadowCmd)

	shadowCmd.Flags().StringVarP(&shadowConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runShadow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(shadowConfigPath)
	if err != nil {
		return err
	}
	if cfg.Feed.Type == "sim" {
		cfg.Feed.Type = "broker"
	}

	fmt.Printf("Shadow trading %s via %s feed (read-only)\n", cfg.Trading.Instrument, cfg.Feed.Type)

	return runSession(cfg, engine.SettleConvergence, true)
}
