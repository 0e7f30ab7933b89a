package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/engine"
	"finplan/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Today's money moves",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	target, err := planDate()
	if err != nil {
		return err
	}
	strat, err := strategy(cfg)
	if err != nil {
		return err
	}

	sim, err := engine.Simulate(cfg, target, horizon(cfg), strat)
	if err != nil {
		return err
	}
	plan, err := engine.PlanFor(sim, target)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PLAN FOR %s", cli.FormatDate(target))))
	fmt.Println()

	if plan.BelowReserve {
		fmt.Printf("  %s\n\n", cli.Danger("WARNING: projected below minimum balance today — review before any extra payment."))
	}

	printEventGroup("PAY", plan.Required, true)

	for _, ev := range plan.ExtraPayments {
		name, saved := allocationDetail(sim, ev.SourceID)
		fmt.Printf("  PAY     %s extra to %s%s\n",
			cli.FormatMoney(ev.Amount.Neg()),
			name,
			cli.Muted(fmt.Sprintf("  (saves %s/day interest)", cli.FormatMoney(saved))))
	}
	for _, ev := range plan.Save {
		fmt.Printf("  SAVE    transfer %s to emergency fund\n", cli.FormatMoney(ev.Amount.Neg()))
	}
	printEventGroup("INCOME", plan.Income, false)

	if plan.UpcomingCount > 0 {
		fmt.Printf("\n  %s\n", cli.Muted(fmt.Sprintf("UPCOMING: %s in required payments over the next 7 days (%d items)",
			cli.FormatMoney(plan.UpcomingTotal), plan.UpcomingCount)))
	}

	if len(plan.Required)+len(plan.Income)+len(plan.Save)+len(plan.ExtraPayments) == 0 {
		fmt.Println("  Nothing to do today.")
	}

	day := sim.DayAt(target)
	fmt.Printf("\n  End of day: %s", cli.FormatMoney(day.EndingBalance))
	fmt.Printf("   available: %s\n\n", cli.FormatMoney(day.AvailableFunds))

	return nil
}

func printEventGroup(label string, events []model.Event, outflow bool) {
	for _, ev := range events {
		amount := ev.Amount
		if outflow {
			amount = amount.Neg()
		}
		suffix := ""
		if ev.Autopay {
			suffix = cli.Muted("  [auto]")
		}
		fmt.Printf("  %-7s %s %s%s\n", label, cli.FormatMoney(amount), ev.Description, suffix)
	}
}

// allocationDetail looks up the card name and daily interest saved for
// an extra-payment event.
func allocationDetail(sim *model.Simulation, cardID string) (string, decimal.Decimal) {
	for _, dec := range sim.Allocations {
		if dec.CardID == cardID {
			return dec.CardName, dec.DailyInterestSaved
		}
	}
	return cardID, decimal.Zero
}
