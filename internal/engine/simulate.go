package engine

import (
	"fmt"
	"sort"

	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

// Simulate walks the horizon one day at a time, applying materialized
// events to a running balance. Only on the gating date does the
// allocator run against the funds left after that day's required
// events, and the resulting extra payments plus any emergency-fund save
// are debited in the same step. Days with deficits are recorded, never
// prevented; the presentation layer decides how loudly to warn.
//
// The result covers horizonDays+1 days inclusive of start, strictly
// increasing with no gaps, and depends only on the arguments: identical
// snapshots produce identical simulations.
func Simulate(cfg *model.Config, start model.Date, horizonDays int, strategy model.Strategy) (*model.Simulation, error) {
	if err := model.Validate(cfg); err != nil {
		return nil, err
	}
	if _, err := model.ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if horizonDays < 1 || horizonDays > 30 {
		return nil, &model.ValidationError{
			Field: "horizon_days",
			Msg:   fmt.Sprintf("%d outside supported range 1-30", horizonDays),
		}
	}

	events, err := Materialize(cfg, start, horizonDays)
	if err != nil {
		return nil, err
	}

	sim := &model.Simulation{
		Start:          start,
		HorizonDays:    horizonDays,
		Strategy:       strategy,
		GatingDate:     GatingDate(cfg.CreditCards, start),
		MinimumReserve: MinimumReserve(cfg.Accounts),
		SafetyBuffer:   SafetyBuffer(cfg.Accounts, cfg.Settings.Cushion),
		Days:           make([]model.Day, 0, horizonDays+1),
	}

	byDate := make(map[model.Date][]model.Event, horizonDays+1)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	balance := TotalBalance(cfg.Accounts)
	efBalance := EmergencyFund(cfg.Accounts)

	for offset := 0; offset <= horizonDays; offset++ {
		date := start.AddDays(offset)
		day := model.Day{Date: date, StartingBalance: balance}
		day.Events = append(day.Events, byDate[date]...)

		for _, ev := range day.Events {
			balance = balance.Add(ev.Amount)
		}

		if !sim.GatingDate.IsZero() && date.Equal(sim.GatingDate) {
			availableAfterRequired := balance.Sub(sim.SafetyBuffer)

			decisions, err := Allocate(
				availableAfterRequired,
				cfg.CreditCards,
				strategy,
				date,
				sim.GatingDate,
				cfg.Settings.MinAllocation,
			)
			if err != nil {
				return nil, err
			}

			allocated := decimal.Zero
			for _, dec := range sortedDecisions(decisions) {
				day.Events = append(day.Events, model.Event{
					Date:        date,
					Amount:      dec.Amount.Neg(),
					Category:    model.CategoryExtra,
					Description: fmt.Sprintf("%s extra payment", dec.CardName),
					SourceID:    dec.CardID,
				})
				balance = balance.Sub(dec.Amount)
				allocated = allocated.Add(dec.Amount)
				sim.Allocations = append(sim.Allocations, dec)
			}

			// Whatever the debt paydown leaves goes toward the
			// emergency-fund gap, floored at zero.
			if save := saveAmount(availableAfterRequired.Sub(allocated), cfg.Settings.EmergencyFundTarget, efBalance); save.IsPositive() {
				day.Events = append(day.Events, model.Event{
					Date:        date,
					Amount:      save.Neg(),
					Category:    model.CategorySave,
					Description: "emergency fund contribution",
				})
				balance = balance.Sub(save)
				efBalance = efBalance.Add(save)
			}

			sortDayEvents(day.Events)
		}

		day.EndingBalance = balance
		day.AvailableFunds = balance.Sub(sim.SafetyBuffer)
		day.Overdrawn = balance.IsNegative()
		day.BelowReserve = balance.LessThan(sim.MinimumReserve)

		sim.Days = append(sim.Days, day)
	}

	return sim, nil
}

// saveAmount is the emergency-fund contribution: the remaining surplus
// capped at the distance to the target, floored at zero.
func saveAmount(remaining, target, current decimal.Decimal) decimal.Decimal {
	gap := target.Sub(current)
	save := decimal.Min(remaining, gap)
	if save.IsNegative() {
		return decimal.Zero
	}
	return save
}

// sortedDecisions flattens an allocation map into a deterministic order
// (largest amount first, then card ID).
func sortedDecisions(decisions map[string]model.AllocationDecision) []model.AllocationDecision {
	out := make([]model.AllocationDecision, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].CardID < out[j].CardID
	})
	return out
}

// sortDayEvents re-sorts a single day's events after appends so save and
// extra events land in their category positions.
func sortDayEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Category.Rank() != events[j].Category.Rank() {
			return events[i].Category.Rank() < events[j].Category.Rank()
		}
		return events[i].Description < events[j].Description
	})
}
