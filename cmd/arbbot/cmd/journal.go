package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamdhruvsharma3/arbitrage/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the trade journal",
	Long: `Query and display trade records from the SQLite journal.

Subcommands:
  trade  - Get details of a specific trade by ID
  today  - List trades closed today
  day    - List trades closed on a specific day

Examples:
  arbbot journal trade <trade-id>
  arbbot journal today
  arbbot journal day 2025-12-01`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./arbbot.db", "path to SQLite journal DB")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	printTrade(rec)
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(time.Now().UTC())
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	day, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("parse day %q: %w", args[0], err)
	}
	return listDay(day)
}

func listDay(day time.Time) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesClosedOn(day)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	if len(recs) == 0 {
		fmt.Printf("No trades closed on %s\n", day.Format("2006-01-02"))
		return nil
	}

	for _, rec := range recs {
		fmt.Printf("%s  strike=%d  gap %.2f -> %.2f  pl=%.2f  %s\n",
			rec.TradeID, rec.Strike, rec.EntryGap, rec.ExitGap, rec.RealizedPL, rec.ExitReason)
	}

	s := journal.Summarize(recs)
	fmt.Println()
	fmt.Printf("Trades: %d (%d wins, %d losses)\n", s.Trades, s.Wins, s.Losses)
	fmt.Printf("Net P&L: %.2f (gross profit %.2f, gross loss %.2f)\n", s.NetPL, s.GrossProfit, s.GrossLoss)
	return nil
}

func printTrade(rec journal.TradeRecord) {
	fmt.Printf("Trade %s (%s settlement)\n", rec.TradeID, rec.Mode)
	fmt.Printf("  Entered: %s  strike=%d  size=%d x %d lot\n",
		rec.EntryTime.Format(time.RFC3339), rec.Strike, rec.Size, rec.LotSize)
	fmt.Printf("  Legs:    call %+d @ %.2f, put %+d @ %.2f\n",
		rec.CallQty, rec.EntryCall, rec.PutQty, rec.EntryPut)
	fmt.Printf("  Exited:  %s  call %.2f, put %.2f\n",
		rec.ExitTime.Format(time.RFC3339), rec.ExitCall, rec.ExitPut)
	fmt.Printf("  Gap:     %.2f -> %.2f\n", rec.EntryGap, rec.ExitGap)
	fmt.Printf("  P&L:     %.2f (expected %.2f, entry cost %.2f)\n",
		rec.RealizedPL, rec.ExpectedProfit, rec.EntryCost)
	fmt.Printf("  Reason:  %s\n", rec.ExitReason)
}
