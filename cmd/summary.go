package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/engine"
	"finplan/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Accounts, debts, and emergency fund at a glance",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FINANCIAL SUMMARY"))
	fmt.Println()

	accountRows := make([][]string, 0, len(cfg.Accounts)+1)
	for _, acc := range cfg.Accounts {
		note := ""
		if acc.Balance.LessThan(acc.MinimumBalance) {
			note = cli.Warn("below minimum")
		}
		accountRows = append(accountRows, []string{
			acc.Name,
			string(acc.Type),
			cli.FormatMoney(acc.Balance),
			cli.FormatMoney(acc.MinimumBalance),
			note,
		})
	}
	accountRows = append(accountRows, []string{"---"})
	accountRows = append(accountRows, []string{
		"Total", "",
		cli.FormatMoney(engine.TotalBalance(cfg.Accounts)),
		cli.FormatMoney(engine.MinimumReserve(cfg.Accounts)),
		"",
	})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Accounts",
		Headers: []string{"Account", "Type", "Balance", "Minimum", ""},
		Rows:    accountRows,
	}))
	fmt.Println()

	if len(cfg.CreditCards) > 0 {
		totalDebt := decimal.Zero
		cardRows := make([][]string, 0, len(cfg.CreditCards))
		for _, cc := range cfg.CreditCards {
			totalDebt = totalDebt.Add(cc.Balance)
			util := cc.Utilization().InexactFloat64() / 100
			cardRows = append(cardRows, []string{
				cc.Name,
				cli.FormatMoney(cc.Balance),
				cli.FormatPercent(cc.APR),
				fmt.Sprintf("day %d", cc.DueDay),
				cli.RenderMeter(util, 12),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Credit Cards — %s total debt", cli.FormatMoney(totalDebt)),
			Headers: []string{"Card", "Balance", "APR", "Due", "Utilization"},
			Rows:    cardRows,
		}))
		fmt.Println()
	}

	printEmergencyFund(cfg)

	available := engine.AvailableFunds(cfg.Accounts, cfg.Settings.Cushion)
	line := fmt.Sprintf("  Available after safety buffer: %s", cli.FormatMoney(available))
	if available.IsNegative() {
		line += "  " + cli.Warn("(no discretionary allocation possible)")
	}
	fmt.Println(line)
	fmt.Println()

	return nil
}

func printEmergencyFund(cfg *model.Config) {
	ef := engine.EmergencyFund(cfg.Accounts)
	target := cfg.Settings.EmergencyFundTarget

	pct := 1.0
	if target.IsPositive() {
		pct = ef.Div(target).InexactFloat64()
	}

	fmt.Printf("  Emergency fund  %s %s / %s\n\n",
		cli.RenderMeter(pct, 20),
		cli.FormatMoney(ef),
		cli.FormatMoney(target))
}
