package model

import "github.com/shopspring/decimal"

// Category tags a cash-flow event for grouping and same-day ordering.
type Category string

const (
	CategoryIncome   Category = "income"
	CategoryRequired Category = "required"
	CategorySave     Category = "save"
	CategoryExtra    Category = "extra"
)

// Rank gives the stable same-day ordering: income lands before required
// payments, discretionary movements come last.
func (c Category) Rank() int {
	switch c {
	case CategoryIncome:
		return 0
	case CategoryRequired:
		return 1
	case CategorySave:
		return 2
	case CategoryExtra:
		return 3
	}
	return 4
}

// Event is one dated cash-flow movement. Amounts are signed: inflows
// positive, outflows negative. Events are derived per computation and
// never persisted.
type Event struct {
	Date        Date
	Amount      decimal.Decimal
	Category    Category
	Description string
	SourceID    string // originating bill/card/income ID
	AccountID   string // account the money moves through, if known
	Autopay     bool   // presentation hint only
}

// AllocationDecision is one card's extra payment, valid only for the
// date it was computed for.
type AllocationDecision struct {
	CardID             string
	CardName           string
	Date               Date
	Amount             decimal.Decimal
	DailyInterestSaved decimal.Decimal
}

// Day is one simulated day: the events applied to it and the balances
// after they land.
type Day struct {
	Date            Date
	Events          []Event
	StartingBalance decimal.Decimal
	EndingBalance   decimal.Decimal
	AvailableFunds  decimal.Decimal // ending balance minus safety buffer
	Overdrawn       bool            // ending balance below zero
	BelowReserve    bool            // ending balance below the minimum reserve
}

// Simulation is a full horizon walk. Days covers start through
// start+horizon inclusive with no gaps.
type Simulation struct {
	Start          Date
	HorizonDays    int
	Strategy       Strategy
	GatingDate     Date // zero when no card carries a balance
	MinimumReserve decimal.Decimal
	SafetyBuffer   decimal.Decimal
	Days           []Day
	Allocations    []AllocationDecision
}

// DayAt returns the simulated day for the given date, or nil when the
// date is outside the horizon.
func (s *Simulation) DayAt(d Date) *Day {
	offset := s.Start.DaysUntil(d)
	if offset < 0 || offset >= len(s.Days) {
		return nil
	}
	return &s.Days[offset]
}

// Plan is a single day's events grouped for presentation.
type Plan struct {
	Date          Date
	Required      []Event
	Income        []Event
	Save          []Event
	ExtraPayments []Event
	UpcomingCount int             // required payments in the next 7 days
	UpcomingTotal decimal.Decimal // their combined amount, as a positive figure
	Overdrawn     bool
	BelowReserve  bool
}
