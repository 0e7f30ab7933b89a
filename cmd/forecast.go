package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/engine"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Day-by-day cash flow projection",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	start, err := planDate()
	if err != nil {
		return err
	}
	strat, err := strategy(cfg)
	if err != nil {
		return err
	}
	days := horizon(cfg)

	sim, err := engine.Simulate(cfg, start, days, strat)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW  %dd  (%s)", days, strat)))
	fmt.Println()

	if !sim.GatingDate.IsZero() {
		fmt.Printf("  Extra payments gate on %s (nearest card due date)\n",
			cli.FormatDate(sim.GatingDate))
	}
	fmt.Printf("  Safety buffer %s (reserve %s + cushion)\n\n",
		cli.FormatMoney(sim.SafetyBuffer), cli.FormatMoney(sim.MinimumReserve))

	rows := make([][]string, 0, len(sim.Days))
	for _, day := range sim.Days {
		if len(day.Events) == 0 && !day.Overdrawn && !day.BelowReserve {
			continue
		}

		flag := ""
		switch {
		case day.Overdrawn:
			flag = cli.Danger("OVERDRAWN")
		case day.BelowReserve:
			flag = cli.Warn("below reserve")
		}

		for i, ev := range day.Events {
			dateCell := ""
			if i == 0 {
				dateCell = cli.FormatDate(day.Date)
			}
			rows = append(rows, []string{
				dateCell,
				ev.Description,
				cli.FormatSignedMoney(ev.Amount),
				"", "",
			})
		}

		balanceDate := ""
		if len(day.Events) == 0 {
			balanceDate = cli.FormatDate(day.Date)
		}
		rows = append(rows, []string{balanceDate, "", "", cli.FormatMoney(day.EndingBalance), flag})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Event", "Amount", "Balance", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
