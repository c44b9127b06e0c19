package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamdhruvsharma3/arbitrage/config"
	"github.com/iamdhruvsharma3/arbitrage/engine"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Paper-trade against the configured feed",
	Long: `Run the bot in paper mode: simulated quotes in, full signed-leg
settlement out. No orders are placed anywhere.

Example:
  arbbot run --config configs/paper.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}

	fmt.Printf("Paper trading %s (capital %.2f, %s settlement)\n",
		cfg.Trading.Instrument, cfg.Risk.StartingCapital, cfg.Trading.Settlement)

	return runSession(cfg, engine.Settlement(cfg.Trading.Settlement), false)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
