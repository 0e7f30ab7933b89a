package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/config"
	"finplan/internal/model"
	"finplan/internal/store"

	"github.com/spf13/cobra"
)

var flagHistoryFiles bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Balance and debt trend across saved snapshots",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryFiles, "files", false, "List snapshot files instead of the trend")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	if flagHistoryFiles {
		return listSnapshotFiles()
	}

	ledger, err := store.Open(ledgerPath())
	if err != nil {
		return err
	}
	defer ledger.Close()

	entries, err := ledger.History(30)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("\n  No history yet — it accumulates as you save snapshots.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SNAPSHOT HISTORY"))
	fmt.Println()

	// Oldest to newest for the sparklines.
	balances := make([]float64, 0, len(entries))
	debts := make([]float64, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		balances = append(balances, entries[i].TotalBalance.InexactFloat64())
		debts = append(debts, entries[i].TotalDebt.InexactFloat64())
	}
	fmt.Printf("  Balance  %s\n", cli.RenderSparkline(balances))
	fmt.Printf("  Debt     %s\n\n", cli.RenderSparkline(debts))

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.AsOf.String(),
			cli.FormatMoney(e.TotalBalance),
			cli.FormatMoney(e.TotalDebt),
			cli.FormatMoney(e.EmergencyFund),
			fmt.Sprintf("%d/%d/%d", e.AccountCount, e.BillCount, e.CardCount),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Balance", "Debt", "Emergency", "Acc/Bill/Card"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func listSnapshotFiles() error {
	snaps, err := config.ListSnapshots(config.Dir())
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("\n  No snapshot files found — run `finplan setup` first.")
		return nil
	}

	fmt.Print("\n  Available snapshots:\n\n")
	for i, s := range snaps {
		fmt.Printf("  %2d. %s\n", i+1, s.DisplayName)
	}
	fmt.Println()
	return nil
}

// recordHistory appends a snapshot summary to the ledger, best effort.
func recordHistory(cfg *model.Config, path string, asOf model.Date) {
	ledger, err := store.Open(ledgerPath())
	if err != nil {
		if !flagQuiet {
			fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf("history unavailable: %v", err)))
		}
		return
	}
	defer ledger.Close()

	if err := ledger.Record(cfg, path, asOf); err != nil && !flagQuiet {
		fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf("history not recorded: %v", err)))
	}
}
