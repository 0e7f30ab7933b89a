package engine

import (
	"testing"

	"finplan/internal/model"
)

func TestPlanFor_GroupsByCategory(t *testing.T) {
	cfg := testConfig(t)
	sim, err := Simulate(cfg, model.MustDate("2026-09-01"), 14, model.Avalanche)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := PlanFor(sim, model.MustDate("2026-09-10"))
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Required) != 3 {
		t.Errorf("required events = %d, want 3 (streaming + two minimums)", len(plan.Required))
	}
	if len(plan.ExtraPayments) != 2 {
		t.Errorf("extra payments = %d, want 2", len(plan.ExtraPayments))
	}
	if len(plan.Save) != 1 {
		t.Errorf("save events = %d, want 1", len(plan.Save))
	}
	if len(plan.Income) != 0 {
		t.Errorf("income events = %d, want 0 on the 10th", len(plan.Income))
	}
}

func TestPlanFor_UpcomingWindow(t *testing.T) {
	cfg := testConfig(t)
	sim, err := Simulate(cfg, model.MustDate("2026-09-01"), 14, model.Avalanche)
	if err != nil {
		t.Fatal(err)
	}

	// From Sep 3, the window (Sep 4 .. Sep 10] holds streaming and both
	// card minimums. The Sep 4 paycheck is income, not counted.
	plan, err := PlanFor(sim, model.MustDate("2026-09-03"))
	if err != nil {
		t.Fatal(err)
	}

	if plan.UpcomingCount != 3 {
		t.Errorf("UpcomingCount = %d, want 3", plan.UpcomingCount)
	}
	if !plan.UpcomingTotal.Equal(dec(t, "75.99")) {
		t.Errorf("UpcomingTotal = %s, want 75.99 as a positive figure", plan.UpcomingTotal)
	}
}

func TestPlanFor_TargetDayExcludedFromUpcoming(t *testing.T) {
	cfg := testConfig(t)
	sim, err := Simulate(cfg, model.MustDate("2026-09-01"), 14, model.Avalanche)
	if err != nil {
		t.Fatal(err)
	}

	// The 10th's own required events belong to the day, not the window,
	// and nothing else comes due through the 17th.
	plan, err := PlanFor(sim, model.MustDate("2026-09-10"))
	if err != nil {
		t.Fatal(err)
	}
	if plan.UpcomingCount != 0 {
		t.Errorf("UpcomingCount = %d, want 0", plan.UpcomingCount)
	}
}

func TestPlanFor_OutsideHorizon(t *testing.T) {
	cfg := testConfig(t)
	sim, err := Simulate(cfg, model.MustDate("2026-09-01"), 14, model.Avalanche)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := PlanFor(sim, model.MustDate("2026-10-01")); err == nil {
		t.Error("date past the horizon accepted")
	}
	if _, err := PlanFor(sim, model.MustDate("2026-08-31")); err == nil {
		t.Error("date before the start accepted")
	}
}
