package engine

import (
	"errors"
	"fmt"
	"sort"

	"finplan/internal/model"
	"finplan/internal/recur"

	"github.com/shopspring/decimal"
)

// ErrGatingDate marks a programming-contract violation: the allocator
// was asked to allocate on a date other than the designated gating date,
// which means the caller bypassed the simulator's sequencing.
var ErrGatingDate = errors.New("allocation requested outside the gating date")

// GatingDate returns the single nearest upcoming due date across all
// cards carrying a balance, at or after from. This is the only date on
// which any extra allocation may occur for the whole horizon; it keeps
// one pool of funds from being promised to several future due dates.
// Zero when no card carries a balance.
func GatingDate(cards []model.CreditCard, from model.Date) model.Date {
	var nearest model.Date
	for _, cc := range cards {
		if !cc.Balance.IsPositive() {
			continue
		}
		due := nextDueDate(cc, from)
		if nearest.IsZero() || due.Before(nearest) {
			nearest = due
		}
	}
	return nearest
}

// Allocate distributes available surplus across cards ranked by the
// strategy. The caller threads the precomputed gating date through so
// every call site agrees on it; targetDate differing from it is fatal to
// the call. Only cards whose own due date is targetDate receive extras;
// a card due later keeps nothing promised to it ahead of time. Negative
// or zero available funds yield an empty map, never an error. Per-card
// allocations below minAllocation are skipped rather than dribbled out.
func Allocate(
	available decimal.Decimal,
	cards []model.CreditCard,
	strategy model.Strategy,
	targetDate, gatingDate model.Date,
	minAllocation decimal.Decimal,
) (map[string]model.AllocationDecision, error) {
	ranked, err := Rank(cards, strategy)
	if err != nil {
		return nil, err
	}
	if !targetDate.Equal(gatingDate) {
		return nil, fmt.Errorf("%w: target %s, gating date %s", ErrGatingDate, targetDate, gatingDate)
	}

	decisions := make(map[string]model.AllocationDecision)
	remaining := available

	for _, cc := range ranked {
		if remaining.LessThan(minAllocation) {
			break
		}
		if !nextDueDate(cc, targetDate).Equal(targetDate) {
			continue
		}
		amount := decimal.Min(remaining, cc.Balance)
		if amount.LessThan(minAllocation) {
			continue
		}
		decisions[cc.ID] = model.AllocationDecision{
			CardID:             cc.ID,
			CardName:           cc.Name,
			Date:               targetDate,
			Amount:             amount,
			DailyInterestSaved: amount.Mul(cc.APR).Div(decimal.NewFromInt(365)),
		}
		remaining = remaining.Sub(amount)
	}

	return decisions, nil
}

// Rank orders the cards that carry a balance by the payoff strategy.
// An unrecognized strategy is a validation failure, never a silent
// default.
func Rank(cards []model.CreditCard, strategy model.Strategy) ([]model.CreditCard, error) {
	ranked := make([]model.CreditCard, 0, len(cards))
	for _, cc := range cards {
		if cc.Balance.IsPositive() {
			ranked = append(ranked, cc)
		}
	}

	switch strategy {
	case model.Avalanche:
		sort.SliceStable(ranked, func(i, j int) bool {
			if c := ranked[i].APR.Cmp(ranked[j].APR); c != 0 {
				return c > 0
			}
			if c := ranked[i].Balance.Cmp(ranked[j].Balance); c != 0 {
				return c > 0
			}
			return ranked[i].ID < ranked[j].ID
		})
	case model.Snowball:
		sort.SliceStable(ranked, func(i, j int) bool {
			if c := ranked[i].Balance.Cmp(ranked[j].Balance); c != 0 {
				return c < 0
			}
			if c := ranked[i].APR.Cmp(ranked[j].APR); c != 0 {
				return c > 0
			}
			return ranked[i].ID < ranked[j].ID
		})
	case model.Balanced:
		scores := balancedScores(ranked)
		sort.SliceStable(ranked, func(i, j int) bool {
			if scores[ranked[i].ID] != scores[ranked[j].ID] {
				return scores[ranked[i].ID] < scores[ranked[j].ID]
			}
			return ranked[i].ID < ranked[j].ID
		})
	default:
		return nil, &model.ValidationError{Field: "strategy", Msg: fmt.Sprintf("unrecognized strategy %q", strategy)}
	}

	return ranked, nil
}

// balancedScores blends the avalanche and snowball orderings with equal
// weight: each card's normalized rank by descending APR plus its
// normalized rank by ascending balance, lower being better.
func balancedScores(cards []model.CreditCard) map[string]float64 {
	byAPR := make([]model.CreditCard, len(cards))
	copy(byAPR, cards)
	sort.SliceStable(byAPR, func(i, j int) bool { return byAPR[i].APR.Cmp(byAPR[j].APR) > 0 })

	byBalance := make([]model.CreditCard, len(cards))
	copy(byBalance, cards)
	sort.SliceStable(byBalance, func(i, j int) bool { return byBalance[i].Balance.Cmp(byBalance[j].Balance) < 0 })

	norm := float64(len(cards) - 1)
	if norm == 0 {
		norm = 1
	}

	scores := make(map[string]float64, len(cards))
	for i, cc := range byAPR {
		scores[cc.ID] += float64(i) / norm
	}
	for i, cc := range byBalance {
		scores[cc.ID] += float64(i) / norm
	}
	return scores
}

// nextDueDate is the card's next due date at or after from. Card due
// dates are plain monthly day-of-month rules, so expansion cannot fail.
func nextDueDate(cc model.CreditCard, from model.Date) model.Date {
	due, _ := recur.Next(recur.FromCard(cc), from)
	return due
}
