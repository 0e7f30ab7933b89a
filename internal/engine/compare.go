package engine

import (
	"sort"

	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

// StrategyOutcome summarizes one payoff strategy's simulated horizon.
type StrategyOutcome struct {
	Strategy           model.Strategy
	ExtraPaid          decimal.Decimal
	DailyInterestSaved decimal.Decimal
	RemainingDebt      decimal.Decimal // card debt left after extras; minimums excluded since they are strategy-independent
	EndingBalance      decimal.Decimal
}

// CompareStrategies runs the simulation once per strategy and returns
// the outcomes best first: most daily interest saved, then least debt
// remaining, then name order for determinism.
func CompareStrategies(cfg *model.Config, start model.Date, horizonDays int) ([]StrategyOutcome, error) {
	totalDebt := decimal.Zero
	for _, cc := range cfg.CreditCards {
		totalDebt = totalDebt.Add(cc.Balance)
	}

	outcomes := make([]StrategyOutcome, 0, 3)
	for _, strat := range []model.Strategy{model.Avalanche, model.Snowball, model.Balanced} {
		sim, err := Simulate(cfg, start, horizonDays, strat)
		if err != nil {
			return nil, err
		}

		out := StrategyOutcome{Strategy: strat, RemainingDebt: totalDebt}
		for _, a := range sim.Allocations {
			out.ExtraPaid = out.ExtraPaid.Add(a.Amount)
			out.DailyInterestSaved = out.DailyInterestSaved.Add(a.DailyInterestSaved)
			out.RemainingDebt = out.RemainingDebt.Sub(a.Amount)
		}
		out.EndingBalance = sim.Days[len(sim.Days)-1].EndingBalance
		outcomes = append(outcomes, out)
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		if c := outcomes[i].DailyInterestSaved.Cmp(outcomes[j].DailyInterestSaved); c != 0 {
			return c > 0
		}
		if c := outcomes[i].RemainingDebt.Cmp(outcomes[j].RemainingDebt); c != 0 {
			return c < 0
		}
		return outcomes[i].Strategy < outcomes[j].Strategy
	})
	return outcomes, nil
}
