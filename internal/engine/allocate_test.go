package engine

import (
	"errors"
	"testing"

	"finplan/internal/model"
)

func TestGatingDate_NearestDueWins(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreditCards[1].DueDay = 22

	got := GatingDate(cfg.CreditCards, model.MustDate("2026-09-01"))
	if !got.Equal(model.MustDate("2026-09-10")) {
		t.Errorf("GatingDate = %s, want 2026-09-10", got)
	}

	// From the 15th, the 10th has passed; the 22nd is now nearest.
	got = GatingDate(cfg.CreditCards, model.MustDate("2026-09-15"))
	if !got.Equal(model.MustDate("2026-09-22")) {
		t.Errorf("GatingDate from the 15th = %s, want 2026-09-22", got)
	}
}

func TestGatingDate_IgnoresZeroBalanceCards(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreditCards[0].Balance = dec(t, "0")
	cfg.CreditCards[0].DueDay = 5

	got := GatingDate(cfg.CreditCards, model.MustDate("2026-09-01"))
	if !got.Equal(model.MustDate("2026-09-10")) {
		t.Errorf("GatingDate = %s, want 2026-09-10 (paid-off card's nearer due day ignored)", got)
	}

	cfg.CreditCards[1].Balance = dec(t, "0")
	if got := GatingDate(cfg.CreditCards, model.MustDate("2026-09-01")); !got.IsZero() {
		t.Errorf("GatingDate with no balances = %s, want zero", got)
	}
}

func TestAllocate_AvalancheWorkedExample(t *testing.T) {
	cfg := testConfig(t)
	gating := model.MustDate("2026-09-10")

	decisions, err := Allocate(dec(t, "2245"), cfg.CreditCards, model.Avalanche, gating, gating, cfg.Settings.MinAllocation)
	if err != nil {
		t.Fatal(err)
	}

	visa, ok := decisions["visa"]
	if !ok {
		t.Fatal("no allocation for visa (23% APR, should rank first)")
	}
	if !visa.Amount.Equal(dec(t, "625")) {
		t.Errorf("visa allocation = %s, want 625 (paid in full)", visa.Amount)
	}

	amex, ok := decisions["amex"]
	if !ok {
		t.Fatal("no allocation for amex")
	}
	if !amex.Amount.Equal(dec(t, "1620")) {
		t.Errorf("amex allocation = %s, want 1620 (the remainder)", amex.Amount)
	}
	if got := amex.DailyInterestSaved.Round(2); !got.Equal(dec(t, "0.84")) {
		t.Errorf("amex DailyInterestSaved = %s, want 0.84 (1620 * 0.19 / 365)", got)
	}
}

func TestAllocate_OnlyCardsDueOnTargetDate(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreditCards[1].DueDay = 25 // amex no longer due on the gating date
	gating := model.MustDate("2026-09-10")

	decisions, err := Allocate(dec(t, "2245"), cfg.CreditCards, model.Avalanche, gating, gating, cfg.Settings.MinAllocation)
	if err != nil {
		t.Fatal(err)
	}

	if len(decisions) != 1 {
		t.Fatalf("got %d decisions, want only the card due on the 10th", len(decisions))
	}
	if !decisions["visa"].Amount.Equal(dec(t, "625")) {
		t.Errorf("visa allocation = %s, want 625", decisions["visa"].Amount)
	}
	if _, ok := decisions["amex"]; ok {
		t.Error("amex received an extra payment ahead of its own due date")
	}
}

func TestAllocate_Snowball(t *testing.T) {
	cfg := testConfig(t)
	gating := model.MustDate("2026-09-10")

	// Only enough for the smaller balance; snowball picks visa (625)
	// over amex (1850).
	decisions, err := Allocate(dec(t, "700"), cfg.CreditCards, model.Snowball, gating, gating, cfg.Settings.MinAllocation)
	if err != nil {
		t.Fatal(err)
	}
	if !decisions["visa"].Amount.Equal(dec(t, "625")) {
		t.Errorf("visa allocation = %s, want 625", decisions["visa"].Amount)
	}
	// The $75 left is above the threshold and spills to the next card.
	if !decisions["amex"].Amount.Equal(dec(t, "75")) {
		t.Errorf("amex allocation = %s, want 75", decisions["amex"].Amount)
	}
}

func TestAllocate_SkipsBelowMinimum(t *testing.T) {
	cfg := testConfig(t)
	gating := model.MustDate("2026-09-10")

	// 660 available: 625 to visa leaves 35, below the $50 threshold.
	decisions, err := Allocate(dec(t, "660"), cfg.CreditCards, model.Avalanche, gating, gating, cfg.Settings.MinAllocation)
	if err != nil {
		t.Fatal(err)
	}
	if len(decisions) != 1 {
		t.Fatalf("got %d decisions, want 1 (sub-minimum remainder held back)", len(decisions))
	}
	if !decisions["visa"].Amount.Equal(dec(t, "625")) {
		t.Errorf("visa allocation = %s, want 625", decisions["visa"].Amount)
	}
}

func TestAllocate_NothingAvailable(t *testing.T) {
	cfg := testConfig(t)
	gating := model.MustDate("2026-09-10")

	for _, avail := range []string{"0", "-500", "49.99"} {
		decisions, err := Allocate(dec(t, avail), cfg.CreditCards, model.Avalanche, gating, gating, cfg.Settings.MinAllocation)
		if err != nil {
			t.Fatalf("available %s: %v", avail, err)
		}
		if len(decisions) != 0 {
			t.Errorf("available %s: got %d decisions, want none", avail, len(decisions))
		}
	}
}

func TestAllocate_GatingContractViolation(t *testing.T) {
	cfg := testConfig(t)

	_, err := Allocate(dec(t, "1000"), cfg.CreditCards, model.Avalanche,
		model.MustDate("2026-09-11"), model.MustDate("2026-09-10"), cfg.Settings.MinAllocation)
	if !errors.Is(err, ErrGatingDate) {
		t.Fatalf("err = %v, want ErrGatingDate", err)
	}
}

func TestAllocate_UnknownStrategy(t *testing.T) {
	cfg := testConfig(t)
	gating := model.MustDate("2026-09-10")

	_, err := Allocate(dec(t, "1000"), cfg.CreditCards, "aggressive", gating, gating, cfg.Settings.MinAllocation)
	if err == nil {
		t.Fatal("unknown strategy accepted, want validation error")
	}
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *model.ValidationError", err)
	}
}

func TestRank_Balanced(t *testing.T) {
	cards := []model.CreditCard{
		{ID: "a", Balance: dec(t, "500"), APR: dec(t, "0.25")},  // best APR rank, best balance rank
		{ID: "b", Balance: dec(t, "2000"), APR: dec(t, "0.20")},
		{ID: "c", Balance: dec(t, "1000"), APR: dec(t, "0.10")},
	}

	ranked, err := Rank(cards, model.Balanced)
	if err != nil {
		t.Fatal(err)
	}
	if ranked[0].ID != "a" {
		t.Errorf("first ranked = %s, want a (dominates both orderings)", ranked[0].ID)
	}
}

func TestRank_ExcludesPaidOffCards(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreditCards[0].Balance = dec(t, "0")

	ranked, err := Rank(cfg.CreditCards, model.Avalanche)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 1 || ranked[0].ID != "amex" {
		t.Fatalf("ranked = %v, want only amex", ranked)
	}
}
