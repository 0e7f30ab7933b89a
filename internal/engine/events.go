// Package engine is the planning core: it materializes recurring
// obligations into dated events, allocates surplus across debts, and
// simulates the cash-flow horizon. Every function is a pure computation
// over an immutable snapshot.
package engine

import (
	"fmt"
	"sort"

	"finplan/internal/model"
	"finplan/internal/recur"

	"github.com/shopspring/decimal"
)

// Materialize expands every bill, credit-card due date, and income in
// the snapshot into a chronological event list covering
// [start, start+horizonDays]. No allocation logic runs here.
func Materialize(cfg *model.Config, start model.Date, horizonDays int) ([]model.Event, error) {
	var events []model.Event

	for _, bill := range cfg.Bills {
		dates, err := recur.Within(recur.FromBill(bill), start, horizonDays)
		if err != nil {
			return nil, fmt.Errorf("bill %s: %w", bill.Name, err)
		}
		for _, d := range dates {
			if billPaidFor(bill, d) {
				// A covered occurrence contributes nothing to the
				// projection, it is not merely flagged.
				continue
			}
			events = append(events, model.Event{
				Date:        d,
				Amount:      bill.Amount.Neg(),
				Category:    model.CategoryRequired,
				Description: bill.Name,
				SourceID:    bill.ID,
				AccountID:   bill.PaymentAccount,
				Autopay:     bill.Autopay,
			})
		}
	}

	for _, cc := range cfg.CreditCards {
		if !cc.Balance.IsPositive() {
			continue
		}
		dates, err := recur.Within(recur.FromCard(cc), start, horizonDays)
		if err != nil {
			return nil, fmt.Errorf("credit card %s: %w", cc.Name, err)
		}
		for _, d := range dates {
			events = append(events, model.Event{
				Date:        d,
				Amount:      cc.MinimumPayment.Neg(),
				Category:    model.CategoryRequired,
				Description: fmt.Sprintf("%s minimum payment", cc.Name),
				SourceID:    cc.ID,
				AccountID:   cc.PaymentAccount,
			})
		}
	}

	for _, inc := range cfg.Incomes {
		dates, err := recur.Within(recur.FromIncome(inc), start, horizonDays)
		if err != nil {
			return nil, fmt.Errorf("income %s: %w", inc.Source, err)
		}
		for _, d := range dates {
			split, err := splitIncome(inc, d)
			if err != nil {
				return nil, err
			}
			events = append(events, split...)
		}
	}

	sortEvents(events)
	return events, nil
}

// splitIncome emits one inflow event per split entry, or a single event
// for unsplit income. The remainder entry absorbs total minus the fixed
// splits; model.Validate has already rejected negative remainders, but
// the check stays here so standalone callers get the same error.
func splitIncome(inc model.Income, on model.Date) ([]model.Event, error) {
	if len(inc.Splits) == 0 {
		return []model.Event{{
			Date:        on,
			Amount:      inc.Amount,
			Category:    model.CategoryIncome,
			Description: inc.Source,
			SourceID:    inc.ID,
			AccountID:   inc.DepositAccount,
		}}, nil
	}

	fixed := decimal.Zero
	for _, s := range inc.Splits {
		if s.Amount != nil {
			fixed = fixed.Add(*s.Amount)
		}
	}
	remainder := inc.Amount.Sub(fixed)
	if remainder.IsNegative() {
		return nil, &model.ValidationError{
			Field: fmt.Sprintf("income[%s].splits", inc.ID),
			Msg:   fmt.Sprintf("fixed splits exceed income amount by %s", remainder.Neg().StringFixed(2)),
		}
	}

	events := make([]model.Event, 0, len(inc.Splits))
	for _, s := range inc.Splits {
		amount := remainder
		if s.Amount != nil {
			amount = *s.Amount
		}
		events = append(events, model.Event{
			Date:        on,
			Amount:      amount,
			Category:    model.CategoryIncome,
			Description: inc.Source,
			SourceID:    inc.ID,
			AccountID:   s.AccountID,
		})
	}
	return events, nil
}

// billPaidFor reports whether the bill's last payment covers the given
// occurrence. Bill cadences are all month-anchored, so a payment in the
// occurrence's calendar month covers it.
func billPaidFor(bill model.Bill, occurrence model.Date) bool {
	return bill.LastPaid != nil && bill.LastPaid.SameMonth(occurrence)
}

// sortEvents orders by date, then the stable category rank (income
// before required before discretionary), then description and source so
// identical inputs always produce identical output.
func sortEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if a.Category.Rank() != b.Category.Rank() {
			return a.Category.Rank() < b.Category.Rank()
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		return a.SourceID < b.SourceID
	})
}
