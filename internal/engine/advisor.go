package engine

import (
	"fmt"
	"sort"

	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

// AffordabilityResult is the verdict on a hypothetical purchase.
type AffordabilityResult struct {
	Affordable   bool
	Reason       string
	Impact       string
	CriticalDate model.Date // day the post-purchase balance bottoms out
}

// LumpSumRecommendation is one slice of a lump-sum allocation.
type LumpSumRecommendation struct {
	Target string
	Amount decimal.Decimal
	Reason string
}

// CardRecommendation names the card best suited for daily purchases.
type CardRecommendation struct {
	CardID          string
	CardName        string
	Reason          string
	AvailableCredit decimal.Decimal
	Utilization     decimal.Decimal
}

// CanAfford checks whether a purchase of the given amount, daysOut days
// from start, survives the projected horizon without dipping below the
// safety buffer. The projection applies required events and income only;
// discretionary allocations are exactly what a purchase would displace.
func CanAfford(cfg *model.Config, start model.Date, amount decimal.Decimal, daysOut int) (*AffordabilityResult, error) {
	if err := model.Validate(cfg); err != nil {
		return nil, err
	}

	horizon := cfg.Settings.PlanningHorizonDays
	if daysOut < 0 || daysOut > horizon {
		return nil, &model.ValidationError{
			Field: "days_out",
			Msg:   fmt.Sprintf("%d outside the planning horizon 0-%d", daysOut, horizon),
		}
	}
	reserve := MinimumReserve(cfg.Accounts)
	buffer := SafetyBuffer(cfg.Accounts, cfg.Settings.Cushion)
	currentAvailable := TotalBalance(cfg.Accounts).Sub(reserve)

	if amount.GreaterThan(currentAvailable) {
		return &AffordabilityResult{
			Affordable: false,
			Reason:     fmt.Sprintf("Insufficient funds: %s available, %s needed.", money(currentAvailable), money(amount)),
			Impact:     fmt.Sprintf("Short by %s", money(amount.Sub(currentAvailable))),
		}, nil
	}

	events, err := Materialize(cfg, start, horizon)
	if err != nil {
		return nil, err
	}

	purchaseDate := start.AddDays(daysOut)
	balance := TotalBalance(cfg.Accounts)

	var minBalance decimal.Decimal
	var criticalDate model.Date

	i := 0
	for offset := 0; offset <= horizon; offset++ {
		date := start.AddDays(offset)
		for i < len(events) && events[i].Date.Equal(date) {
			balance = balance.Add(events[i].Amount)
			i++
		}
		if date.Before(purchaseDate) {
			continue
		}
		adjusted := balance.Sub(amount)
		if criticalDate.IsZero() || adjusted.LessThan(minBalance) {
			minBalance = adjusted
			criticalDate = date
		}
	}

	if minBalance.LessThan(buffer) {
		return &AffordabilityResult{
			Affordable:   false,
			Reason:       fmt.Sprintf("This would create cash flow problems on %s.", criticalDate.Format("Jan 2")),
			Impact:       fmt.Sprintf("Would leave only %s (floor: %s)", money(minBalance), money(buffer)),
			CriticalDate: criticalDate,
		}, nil
	}

	cushion := minBalance.Sub(reserve)
	return &AffordabilityResult{
		Affordable:   true,
		Reason:       "Yes, you can afford this purchase.",
		Impact:       fmt.Sprintf("Lowest projected cushion above minimums is %s, on %s.", money(cushion), criticalDate.Format("Jan 2")),
		CriticalDate: criticalDate,
	}, nil
}

// RecommendLumpSum splits a windfall between the emergency-fund gap and
// debt paydown under the configured strategy, using the standalone
// allocator against the current gating date. Anything neither bucket can
// absorb becomes additional savings.
func RecommendLumpSum(cfg *model.Config, start model.Date, amount decimal.Decimal) ([]LumpSumRecommendation, error) {
	if err := model.Validate(cfg); err != nil {
		return nil, err
	}

	var recs []LumpSumRecommendation
	remaining := amount

	efBalance := EmergencyFund(cfg.Accounts)
	efTarget := cfg.Settings.EmergencyFundTarget
	if efBalance.LessThan(efTarget) {
		contribution := decimal.Min(remaining, efTarget.Sub(efBalance))
		if contribution.IsPositive() {
			recs = append(recs, LumpSumRecommendation{
				Target: "Emergency fund",
				Amount: contribution,
				Reason: fmt.Sprintf("Build emergency fund to target (currently %s / %s)", money(efBalance), money(efTarget)),
			})
			remaining = remaining.Sub(contribution)
		}
	}

	if remaining.IsPositive() {
		gating := GatingDate(cfg.CreditCards, start)
		if !gating.IsZero() {
			decisions, err := Allocate(remaining, cfg.CreditCards, cfg.Settings.Priority, gating, gating, cfg.Settings.MinAllocation)
			if err != nil {
				return nil, err
			}
			for _, dec := range sortedDecisions(decisions) {
				card := cfg.Card(dec.CardID)
				monthly := dec.Amount.Mul(card.APR).Div(decimal.NewFromInt(12))
				recs = append(recs, LumpSumRecommendation{
					Target: fmt.Sprintf("%s (credit card)", dec.CardName),
					Amount: dec.Amount,
					Reason: fmt.Sprintf("%s strategy, APR %s%%, saves %s/month in interest",
						cfg.Settings.Priority, card.APR.Mul(decimal.NewFromInt(100)).StringFixed(1), money(monthly)),
				})
				remaining = remaining.Sub(dec.Amount)
			}
		}
	}

	if remaining.IsPositive() {
		recs = append(recs, LumpSumRecommendation{
			Target: "Additional savings",
			Amount: remaining,
			Reason: "No further debt to pay down at this size. Build additional savings.",
		})
	}

	return recs, nil
}

// RecommendPrimaryCard scores cards with available credit on
// utilization (50%), APR (30%), and limit headroom (20%), lowest score
// winning. Advisory only, so float scoring is fine here.
func RecommendPrimaryCard(cfg *model.Config) (*CardRecommendation, error) {
	if err := model.Validate(cfg); err != nil {
		return nil, err
	}

	var candidates []model.CreditCard
	maxLimit := decimal.Zero
	for _, cc := range cfg.CreditCards {
		if cc.AvailableCredit().IsPositive() {
			candidates = append(candidates, cc)
			maxLimit = decimal.Max(maxLimit, cc.CreditLimit)
		}
	}
	if len(candidates) == 0 {
		return &CardRecommendation{Reason: "No cards have available credit"}, nil
	}

	score := func(cc model.CreditCard) float64 {
		util := cc.Utilization().InexactFloat64()
		apr := cc.APR.Mul(decimal.NewFromInt(100)).InexactFloat64()
		limit := 100 * (1 - cc.CreditLimit.Div(maxLimit).InexactFloat64())
		return util*0.5 + apr*0.3 + limit*0.2
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := score(candidates[i]), score(candidates[j])
		if si != sj {
			return si < sj
		}
		return candidates[i].ID < candidates[j].ID
	})

	best := candidates[0]
	var reasons []string
	if best.Utilization().LessThan(decimal.NewFromInt(30)) {
		reasons = append(reasons, fmt.Sprintf("low utilization (%s%%)", best.Utilization().StringFixed(1)))
	}
	if best.APR.LessThan(decimal.NewFromFloat(0.15)) {
		reasons = append(reasons, fmt.Sprintf("low APR (%s%%)", best.APR.Mul(decimal.NewFromInt(100)).StringFixed(1)))
	}
	if best.AvailableCredit().GreaterThan(decimal.NewFromInt(1000)) {
		reasons = append(reasons, fmt.Sprintf("high available credit (%s)", money(best.AvailableCredit())))
	}

	reason := "Has available credit"
	if len(reasons) > 0 {
		reason = "Best card for purchases: " + joinReasons(reasons)
	}

	return &CardRecommendation{
		CardID:          best.ID,
		CardName:        best.Name,
		Reason:          reason,
		AvailableCredit: best.AvailableCredit(),
		Utilization:     best.Utilization(),
	}, nil
}

func joinReasons(reasons []string) string {
	out := reasons[0]
	for _, r := range reasons[1:] {
		out += ", " + r
	}
	return out
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
