package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagAffordDays int

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "What-if advisory queries",
}

var affordCmd = &cobra.Command{
	Use:   "afford <amount>",
	Short: "Can I afford a purchase?",
	Args:  cobra.ExactArgs(1),
	RunE:  runAfford,
}

var lumpsumCmd = &cobra.Command{
	Use:   "lumpsum <amount>",
	Short: "How should I allocate a lump sum?",
	Args:  cobra.ExactArgs(1),
	RunE:  runLumpsum,
}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Which card should I use for daily purchases?",
	RunE:  runCardAdvice,
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Compare payoff strategies over the horizon",
	RunE:  runStrategyAdvice,
}

func init() {
	affordCmd.Flags().IntVar(&flagAffordDays, "in", 0, "Days from now the purchase happens")
	adviseCmd.AddCommand(affordCmd, lumpsumCmd, cardCmd, strategyCmd)
	rootCmd.AddCommand(adviseCmd)
}

func runAfford(_ *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil || !amount.IsPositive() {
		return fmt.Errorf("amount must be a positive number, got %q", args[0])
	}

	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}
	start, err := planDate()
	if err != nil {
		return err
	}

	result, err := engine.CanAfford(cfg, start, amount, flagAffordDays)
	if err != nil {
		return err
	}

	fmt.Println()
	if result.Affordable {
		fmt.Printf("  %s\n", cli.Good(result.Reason))
	} else {
		fmt.Printf("  %s\n", cli.Danger(result.Reason))
	}
	fmt.Printf("  %s\n\n", result.Impact)
	return nil
}

func runLumpsum(_ *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil || !amount.IsPositive() {
		return fmt.Errorf("amount must be a positive number, got %q", args[0])
	}

	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}
	start, err := planDate()
	if err != nil {
		return err
	}

	recs, err := engine.RecommendLumpSum(cfg, start, amount)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Recommended allocation for %s:\n\n", cli.FormatMoney(amount))
	for i, rec := range recs {
		fmt.Printf("  %d. %s: %s\n", i+1, rec.Target, cli.FormatMoney(rec.Amount))
		fmt.Printf("     %s\n\n", cli.Muted(rec.Reason))
	}
	return nil
}

func runStrategyAdvice(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}
	start, err := planDate()
	if err != nil {
		return err
	}

	outcomes, err := engine.CompareStrategies(cfg, start, horizon(cfg))
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Println("\n  Nothing to compare.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("STRATEGY COMPARISON"))
	fmt.Println()

	rows := make([][]string, 0, len(outcomes))
	for _, out := range outcomes {
		rows = append(rows, []string{
			string(out.Strategy),
			cli.FormatMoney(out.ExtraPaid),
			cli.FormatMoney(out.DailyInterestSaved),
			cli.FormatMoney(out.RemainingDebt),
			cli.FormatMoney(out.EndingBalance),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Strategy", "Extra paid", "Interest saved/day", "Debt left", "End balance"},
		Rows:    rows,
	}))

	best := outcomes[0]
	fmt.Printf("\n  Recommended: %s (saves %s/day, %s in debt remaining)\n\n",
		cli.Good(string(best.Strategy)),
		cli.FormatMoney(best.DailyInterestSaved),
		cli.FormatMoney(best.RemainingDebt))
	return nil
}

func runCardAdvice(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	rec, err := engine.RecommendPrimaryCard(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	if rec.CardID == "" {
		fmt.Printf("  %s\n\n", cli.Danger(rec.Reason))
		return nil
	}

	fmt.Printf("  Recommended: %s\n\n", cli.Good(rec.CardName))
	fmt.Printf("  %s\n", rec.Reason)
	fmt.Printf("  Available credit: %s\n", cli.FormatMoney(rec.AvailableCredit))
	fmt.Printf("  Current utilization: %s%%\n\n", rec.Utilization.StringFixed(1))
	return nil
}
