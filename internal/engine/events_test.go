package engine

import (
	"testing"

	"finplan/internal/model"
)

func eventsOn(events []model.Event, d model.Date) []model.Event {
	var out []model.Event
	for _, ev := range events {
		if ev.Date.Equal(d) {
			out = append(out, ev)
		}
	}
	return out
}

func TestMaterialize_CoversHorizon(t *testing.T) {
	cfg := testConfig(t)
	start := model.MustDate("2026-09-01")

	events, err := Materialize(cfg, start, 30)
	if err != nil {
		t.Fatal(err)
	}

	end := start.AddDays(30)
	for _, ev := range events {
		if ev.Date.Before(start) || ev.Date.After(end) {
			t.Errorf("event %q on %s outside [%s, %s]", ev.Description, ev.Date, start, end)
		}
	}

	// Rent on the 1st and again on Oct 1, both inside the window.
	rent := 0
	for _, ev := range events {
		if ev.SourceID == "rent" {
			rent++
			if !ev.Amount.Equal(dec(t, "-1200")) {
				t.Errorf("rent amount = %s, want -1200 (outflows are negative)", ev.Amount)
			}
		}
	}
	if rent != 2 {
		t.Errorf("rent occurrences = %d, want 2", rent)
	}
}

func TestMaterialize_CardMinimums(t *testing.T) {
	cfg := testConfig(t)
	events, err := Materialize(cfg, model.MustDate("2026-09-01"), 14)
	if err != nil {
		t.Fatal(err)
	}

	due := eventsOn(events, model.MustDate("2026-09-10"))
	var visaMin, amexMin bool
	for _, ev := range due {
		switch ev.SourceID {
		case "visa":
			visaMin = ev.Amount.Equal(dec(t, "-25"))
		case "amex":
			amexMin = ev.Amount.Equal(dec(t, "-35"))
		}
	}
	if !visaMin || !amexMin {
		t.Errorf("missing card minimums on the 10th: visa=%v amex=%v", visaMin, amexMin)
	}
}

func TestMaterialize_PaidOffCardEmitsNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreditCards[0].Balance = dec(t, "0")

	events, err := Materialize(cfg, model.MustDate("2026-09-01"), 30)
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range events {
		if ev.SourceID == "visa" {
			t.Fatalf("paid-off card produced event %+v", ev)
		}
	}
}

func TestMaterialize_PaidBillSkipsCoveredMonth(t *testing.T) {
	cfg := testConfig(t)
	paid := model.MustDate("2026-09-02")
	cfg.Bills[1].LastPaid = &paid // streaming, due the 10th

	events, err := Materialize(cfg, model.MustDate("2026-09-01"), 30)
	if err != nil {
		t.Fatal(err)
	}

	for _, ev := range events {
		if ev.SourceID == "stream" {
			// The September occurrence is covered; October is not.
			if ev.Date.SameMonth(paid) {
				t.Errorf("covered September occurrence still materialized on %s", ev.Date)
			}
		}
	}
}

func TestMaterialize_IncomeSplits(t *testing.T) {
	cfg := testConfig(t)
	cfg.Incomes[0].Splits = []model.IncomeSplit{
		{AccountID: "sav", Amount: decPtr(t, "500")},
		{AccountID: "chk"}, // remainder
	}

	events, err := Materialize(cfg, model.MustDate("2026-09-01"), 7)
	if err != nil {
		t.Fatal(err)
	}

	payday := eventsOn(events, model.MustDate("2026-09-04"))
	if len(payday) != 2 {
		t.Fatalf("payday events = %d, want 2 (one per split)", len(payday))
	}

	total := dec(t, "0")
	for _, ev := range payday {
		if ev.Category != model.CategoryIncome {
			t.Errorf("split event category = %s, want income", ev.Category)
		}
		total = total.Add(ev.Amount)
		switch ev.AccountID {
		case "sav":
			if !ev.Amount.Equal(dec(t, "500")) {
				t.Errorf("savings split = %s, want 500", ev.Amount)
			}
		case "chk":
			if !ev.Amount.Equal(dec(t, "1900")) {
				t.Errorf("remainder split = %s, want 1900", ev.Amount)
			}
		default:
			t.Errorf("unexpected split account %q", ev.AccountID)
		}
	}
	if !total.Equal(cfg.Incomes[0].Amount) {
		t.Errorf("splits total %s, want the full income amount %s", total, cfg.Incomes[0].Amount)
	}
}

func TestMaterialize_SameDayOrdering(t *testing.T) {
	cfg := testConfig(t)
	cfg.Incomes[0].NextDate = model.MustDate("2026-09-10") // land income on the due day

	events, err := Materialize(cfg, model.MustDate("2026-09-01"), 14)
	if err != nil {
		t.Fatal(err)
	}

	due := eventsOn(events, model.MustDate("2026-09-10"))
	if len(due) < 2 {
		t.Fatalf("expected several events on the 10th, got %d", len(due))
	}
	for i := 1; i < len(due); i++ {
		if due[i].Category.Rank() < due[i-1].Category.Rank() {
			t.Errorf("event %d (%s) ranked before %s", i, due[i].Category, due[i-1].Category)
		}
	}
	if due[0].Category != model.CategoryIncome {
		t.Errorf("first event on the 10th = %s, want income before outflows", due[0].Category)
	}
}

func TestMaterialize_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	start := model.MustDate("2026-09-01")

	a, err := Materialize(cfg, start, 30)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Materialize(cfg, start, 30)
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].SourceID != b[i].SourceID || !a[i].Amount.Equal(b[i].Amount) {
			t.Fatalf("event %d differs between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMaterialize_IncomeStartsAtNextDate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Incomes[0].Frequency = model.Monthly
	cfg.Incomes[0].NextDate = model.MustDate("2026-10-15")

	// The window spans both Sep 15 and Oct 15; only the anchored
	// occurrence may materialize.
	events, err := Materialize(cfg, model.MustDate("2026-09-01"), 50)
	if err != nil {
		t.Fatal(err)
	}

	var deposits []model.Date
	for _, ev := range events {
		if ev.SourceID == "pay" {
			deposits = append(deposits, ev.Date)
		}
	}
	if len(deposits) != 1 {
		t.Fatalf("deposits = %v, want exactly one", deposits)
	}
	if !deposits[0].Equal(model.MustDate("2026-10-15")) {
		t.Errorf("first deposit on %s, want 2026-10-15; nothing recurs before next_date", deposits[0])
	}
}

func TestBillPaidFor_MonthCoverage(t *testing.T) {
	paid := model.MustDate("2026-09-03")
	bill := model.Bill{Frequency: model.Quarterly, LastPaid: &paid}

	if !billPaidFor(bill, model.MustDate("2026-09-15")) {
		t.Error("payment in the occurrence's month should cover it")
	}
	if billPaidFor(bill, model.MustDate("2026-12-15")) {
		t.Error("payment in an earlier month should not cover it")
	}
	if billPaidFor(model.Bill{Frequency: model.Monthly}, model.MustDate("2026-09-15")) {
		t.Error("bill never paid should not be covered")
	}
}
