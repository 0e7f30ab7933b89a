package engine

import (
	"testing"

	"finplan/internal/model"
)

// The fixture is trimmed so only the strategies differ: no income or
// bills inside the window, two cards due the same day, and a surplus
// that cannot clear both. Avalanche sends the whole $1,090 to the 23%
// card; snowball clears the small 19% card first and saves less.
func compareConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := testConfig(t)
	cfg.Accounts[0].Balance = dec(t, "1400")
	cfg.Incomes = nil
	cfg.Bills = nil
	cfg.CreditCards[0].APR = dec(t, "0.19") // visa, $625
	cfg.CreditCards[1].APR = dec(t, "0.23") // amex, $1,850
	return cfg
}

func TestCompareStrategies(t *testing.T) {
	cfg := compareConfig(t)

	outcomes, err := CompareStrategies(cfg, model.MustDate("2026-09-01"), 14)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want one per strategy", len(outcomes))
	}

	// Balanced ties avalanche here (both rank the amex first) and loses
	// only the name tiebreak.
	want := []model.Strategy{model.Avalanche, model.Balanced, model.Snowball}
	for i, strat := range want {
		if outcomes[i].Strategy != strat {
			t.Errorf("outcomes[%d].Strategy = %q, want %q", i, outcomes[i].Strategy, strat)
		}
	}

	for _, out := range outcomes {
		if !out.ExtraPaid.Equal(dec(t, "1090")) {
			t.Errorf("%s extra paid = %s, want 1090", out.Strategy, out.ExtraPaid)
		}
		if !out.RemainingDebt.Equal(dec(t, "1385")) {
			t.Errorf("%s remaining debt = %s, want 1385", out.Strategy, out.RemainingDebt)
		}
		if !out.EndingBalance.Equal(dec(t, "700")) {
			t.Errorf("%s ending balance = %s, want 700", out.Strategy, out.EndingBalance)
		}
	}

	// 1090 * 0.23 / 365 against 625 * 0.19 / 365 + 465 * 0.23 / 365.
	if !outcomes[0].DailyInterestSaved.Round(2).Equal(dec(t, "0.69")) {
		t.Errorf("best daily interest saved = %s, want 0.69", outcomes[0].DailyInterestSaved.Round(2))
	}
	if !outcomes[0].DailyInterestSaved.GreaterThan(outcomes[2].DailyInterestSaved) {
		t.Errorf("avalanche saved %s, not more than snowball's %s",
			outcomes[0].DailyInterestSaved, outcomes[2].DailyInterestSaved)
	}
}

func TestCompareStrategies_RejectsBadHorizon(t *testing.T) {
	cfg := compareConfig(t)

	if _, err := CompareStrategies(cfg, model.MustDate("2026-09-01"), 0); err == nil {
		t.Error("zero-day horizon accepted")
	}
}
