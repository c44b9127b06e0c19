package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamdhruvsharma3/arbitrage/engine"
)

var replayCmd = &cobra.Command{
	Use:   "replay <snapshots.csv>",
	Short: "Replay recorded quote snapshots",
	Long: `Replay a recorded snapshot file through the engine and report how
the strategy would have traded it. Files ending in .xz are decompressed on
the fly.

Row format: time,spot,futures,call,put,strike

Example:
  arbbot replay data/2025-12-01.csv.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var replayConfigPath string

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(replayConfigPath)
	if err != nil {
		return err
	}

	cfg.Feed.Type = "replay"
	cfg.Feed.File = args[0]
	// replays should finish quickly, not at wall-clock pace
	cfg.Trading.UpdateInterval = "1ms"

	fmt.Printf("Replaying %s\n", args[0])

	return runSession(cfg, engine.Settlement(cfg.Trading.Settlement), false)
}
