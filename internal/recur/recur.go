// Package recur expands recurring rules into occurrence dates.
package recur

import (
	"fmt"
	"time"

	"finplan/internal/model"
)

// Rule is the shared recurring-rule shape. Weekly and biweekly rules
// step from Anchor; month-anchored rules (semi-monthly, monthly,
// quarterly, annual) expand from DueDay, clamped to the last day of
// short months. When both are set the anchor date wins for the fixed-step
// frequencies and DueDay for the rest.
type Rule struct {
	Frequency model.Frequency
	Anchor    model.Date
	DueDay    int
}

// FromBill builds the rule for a bill's due dates.
func FromBill(b model.Bill) Rule {
	return Rule{Frequency: b.Frequency, DueDay: b.DueDay}
}

// FromCard builds the monthly due-date rule for a credit card.
func FromCard(c model.CreditCard) Rule {
	return Rule{Frequency: model.Monthly, DueDay: c.DueDay}
}

// FromIncome builds the rule for an income's deposit dates.
func FromIncome(inc model.Income) Rule {
	r := Rule{Frequency: inc.Frequency, Anchor: inc.NextDate}
	if inc.Frequency.MonthAnchored() {
		r.DueDay = inc.NextDate.Day()
	}
	return r
}

func (r Rule) validate() error {
	switch r.Frequency {
	case model.Weekly, model.Biweekly:
		if r.Anchor.IsZero() {
			return &model.ValidationError{Field: "rule.anchor", Msg: fmt.Sprintf("%s rule needs an anchor date", r.Frequency)}
		}
	case model.SemiMonthly, model.Monthly, model.Quarterly, model.Annual:
		if r.DueDay < 1 || r.DueDay > 31 {
			return &model.ValidationError{Field: "rule.due_day", Msg: fmt.Sprintf("day %d out of range 1-31", r.DueDay)}
		}
	default:
		return &model.ValidationError{Field: "rule.frequency", Msg: fmt.Sprintf("unrecognized frequency %q", r.Frequency)}
	}
	return nil
}

// Next returns the first occurrence on or after the given date.
func Next(r Rule, onOrAfter model.Date) (model.Date, error) {
	if err := r.validate(); err != nil {
		return model.Date{}, err
	}

	// The anchor, when set, is the first occurrence; nothing recurs
	// before it. Month-anchored income rules carry one too.
	if !r.Anchor.IsZero() && onOrAfter.Before(r.Anchor) {
		onOrAfter = r.Anchor
	}

	switch r.Frequency {
	case model.Weekly, model.Biweekly:
		step := 7
		if r.Frequency == model.Biweekly {
			step = 14
		}
		d := r.Anchor
		for d.Before(onOrAfter) {
			d = d.AddDays(step)
		}
		return d, nil

	case model.SemiMonthly:
		d1, d2 := semiMonthlyDays(r.DueDay)
		// Check this month's pair, then roll forward.
		for m := onOrAfter.AddDays(-31); ; m = firstOfNextMonth(m) {
			for _, day := range []int{d1, d2} {
				occ := clampedDate(m.Year(), m.Month(), day)
				if occ.Compare(onOrAfter) >= 0 {
					return occ, nil
				}
			}
		}

	case model.Monthly, model.Quarterly, model.Annual:
		occ := clampedDate(onOrAfter.Year(), onOrAfter.Month(), r.DueDay)
		for occ.Before(onOrAfter) {
			occ = addMonthsClamped(occ, 1, r.DueDay)
		}
		return occ, nil
	}

	// validate covers every recognized frequency.
	return model.Date{}, &model.ValidationError{Field: "rule.frequency", Msg: string(r.Frequency)}
}

// Within returns every occurrence in [start, start+horizonDays],
// strictly increasing.
func Within(r Rule, start model.Date, horizonDays int) ([]model.Date, error) {
	end := start.AddDays(horizonDays)

	occ, err := Next(r, start)
	if err != nil {
		return nil, err
	}

	var dates []model.Date
	for !occ.After(end) {
		dates = append(dates, occ)
		occ = advance(r, occ)
	}
	return dates, nil
}

// advance moves from a known occurrence to the next one.
func advance(r Rule, from model.Date) model.Date {
	switch r.Frequency {
	case model.Weekly:
		return from.AddDays(7)
	case model.Biweekly:
		return from.AddDays(14)
	case model.SemiMonthly:
		d1, d2 := semiMonthlyDays(r.DueDay)
		if from.Day() < d2 {
			if occ := clampedDate(from.Year(), from.Month(), d2); occ.After(from) {
				return occ
			}
		}
		next := firstOfNextMonth(from)
		return clampedDate(next.Year(), next.Month(), d1)
	case model.Quarterly:
		return addMonthsClamped(from, 3, r.DueDay)
	case model.Annual:
		return addMonthsClamped(from, 12, r.DueDay)
	default: // monthly
		return addMonthsClamped(from, 1, r.DueDay)
	}
}

// semiMonthlyDays returns the two due days of a semi-monthly rule,
// ascending: the anchor day and its companion fifteen days apart.
func semiMonthlyDays(dueDay int) (int, int) {
	if dueDay <= 15 {
		return dueDay, dueDay + 15
	}
	return dueDay - 15, dueDay
}

// clampedDate builds a date in the given month, clamping day to the
// month's length (e.g. the 31st in February lands on the 28th/29th).
func clampedDate(year int, month time.Month, day int) model.Date {
	if last := model.DaysInMonth(year, month); day > last {
		day = last
	}
	return model.NewDate(year, month, day)
}

func addMonthsClamped(from model.Date, months int, dueDay int) model.Date {
	// Normalize through the first of the month so a clamped short-month
	// occurrence springs back to the due day afterwards.
	first := model.NewDate(from.Year(), from.Month(), 1)
	target := firstPlusMonths(first, months)
	return clampedDate(target.Year(), target.Month(), dueDay)
}

func firstOfNextMonth(d model.Date) model.Date {
	return firstPlusMonths(model.NewDate(d.Year(), d.Month(), 1), 1)
}

func firstPlusMonths(firstOfMonth model.Date, months int) model.Date {
	y := firstOfMonth.Year()
	m := int(firstOfMonth.Month()) + months
	for m > 12 {
		m -= 12
		y++
	}
	return model.NewDate(y, time.Month(m), 1)
}
