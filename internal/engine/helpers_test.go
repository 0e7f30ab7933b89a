package engine

import (
	"testing"

	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

// testConfig is a small household snapshot: two accounts totalling
// $3,450 with $500 in minimums, a biweekly paycheck, rent plus a
// streaming bill, and two cards both due on the 10th.
func testConfig(t *testing.T) *model.Config {
	t.Helper()
	return &model.Config{
		Accounts: []model.Account{
			{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: dec(t, "3000"), MinimumBalance: dec(t, "400")},
			{ID: "sav", Name: "Savings", Type: model.AccountSavings, Balance: dec(t, "450"), MinimumBalance: dec(t, "100")},
		},
		Incomes: []model.Income{
			{
				ID: "pay", Source: "Paycheck", Amount: dec(t, "2400"),
				Frequency: model.Biweekly, NextDate: model.MustDate("2026-09-04"),
				DepositAccount: "chk",
			},
		},
		Bills: []model.Bill{
			{ID: "rent", Name: "Rent", Amount: dec(t, "1200"), DueDay: 1, Frequency: model.Monthly, PaymentAccount: "chk"},
			{ID: "stream", Name: "Streaming", Amount: dec(t, "15.99"), DueDay: 10, Frequency: model.Monthly, Autopay: true, PaymentAccount: "chk"},
		},
		CreditCards: []model.CreditCard{
			{ID: "visa", Name: "Visa", Balance: dec(t, "625"), CreditLimit: dec(t, "3000"), APR: dec(t, "0.23"), DueDay: 10, MinimumPayment: dec(t, "25"), PaymentAccount: "chk"},
			{ID: "amex", Name: "Amex", Balance: dec(t, "1850"), CreditLimit: dec(t, "5000"), APR: dec(t, "0.19"), DueDay: 10, MinimumPayment: dec(t, "35"), PaymentAccount: "chk"},
		},
		Settings: model.DefaultSettings(),
	}
}
