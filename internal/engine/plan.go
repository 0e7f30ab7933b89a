package engine

import (
	"fmt"

	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

// upcomingWindowDays is the lookahead window the plan summarizes.
const upcomingWindowDays = 7

// PlanFor groups a single simulated day's events into labeled buckets
// and summarizes the required payments coming due in the following week.
// The lookahead is informational only; nothing in it is counted against
// the target day's allocation.
func PlanFor(sim *model.Simulation, target model.Date) (*model.Plan, error) {
	day := sim.DayAt(target)
	if day == nil {
		return nil, &model.ValidationError{
			Field: "target_date",
			Msg:   fmt.Sprintf("%s outside simulated horizon %s..%s", target, sim.Start, sim.Start.AddDays(sim.HorizonDays)),
		}
	}

	plan := &model.Plan{
		Date:          target,
		UpcomingTotal: decimal.Zero,
		Overdrawn:     day.Overdrawn,
		BelowReserve:  day.BelowReserve,
	}

	for _, ev := range day.Events {
		switch ev.Category {
		case model.CategoryRequired:
			plan.Required = append(plan.Required, ev)
		case model.CategoryIncome:
			plan.Income = append(plan.Income, ev)
		case model.CategorySave:
			plan.Save = append(plan.Save, ev)
		case model.CategoryExtra:
			plan.ExtraPayments = append(plan.ExtraPayments, ev)
		}
	}

	// Strictly after target, through target+7, clipped to the horizon.
	for offset := 1; offset <= upcomingWindowDays; offset++ {
		future := sim.DayAt(target.AddDays(offset))
		if future == nil {
			break
		}
		for _, ev := range future.Events {
			if ev.Category == model.CategoryRequired {
				plan.UpcomingCount++
				plan.UpcomingTotal = plan.UpcomingTotal.Add(ev.Amount.Neg())
			}
		}
	}

	return plan, nil
}
