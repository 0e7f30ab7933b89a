// Package model defines the finplan configuration entities and the
// derived types produced by the planning engine.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCash     AccountType = "cash"
)

// Frequency is the cadence of a recurring rule.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Biweekly    Frequency = "biweekly"
	SemiMonthly Frequency = "semi-monthly"
	Monthly     Frequency = "monthly"
	Quarterly   Frequency = "quarterly"
	Annual      Frequency = "annual"
)

// MonthAnchored reports whether the frequency is expanded from a
// day-of-month anchor rather than a fixed day step.
func (f Frequency) MonthAnchored() bool {
	switch f {
	case SemiMonthly, Monthly, Quarterly, Annual:
		return true
	}
	return false
}

// Strategy selects how surplus funds are ranked across credit cards.
type Strategy string

const (
	Avalanche Strategy = "avalanche" // highest APR first
	Snowball  Strategy = "snowball"  // lowest balance first
	Balanced  Strategy = "balanced"  // blended APR/balance rank
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Avalanche, Snowball, Balanced:
		return Strategy(s), nil
	}
	return "", &ValidationError{Field: "strategy", Msg: fmt.Sprintf("unrecognized strategy %q", s)}
}

// Account is a bank account. MinimumBalance may exceed Balance; the
// engine reports that condition rather than rejecting it.
type Account struct {
	ID             string          `toml:"id" validate:"required"`
	Name           string          `toml:"name" validate:"required"`
	Type           AccountType     `toml:"type" validate:"oneof=checking savings cash"`
	Balance        decimal.Decimal `toml:"balance"`
	MinimumBalance decimal.Decimal `toml:"minimum_balance"`
}

// IncomeSplit routes part of an income deposit to an account. A nil
// Amount marks the remainder entry, which absorbs whatever the fixed
// splits leave over.
type IncomeSplit struct {
	AccountID string           `toml:"account_id" validate:"required"`
	Amount    *decimal.Decimal `toml:"amount,omitempty"`
}

// Income is a recurring income source.
type Income struct {
	ID             string          `toml:"id" validate:"required"`
	Source         string          `toml:"source" validate:"required"`
	Amount         decimal.Decimal `toml:"amount"`
	Frequency      Frequency       `toml:"frequency" validate:"oneof=weekly biweekly semi-monthly monthly quarterly annual"`
	NextDate       Date            `toml:"next_date"`
	DepositAccount string          `toml:"deposit_account,omitempty"`
	Splits         []IncomeSplit   `toml:"splits,omitempty" validate:"dive"`
}

// Bill is a recurring obligation anchored to a day of the month.
type Bill struct {
	ID             string          `toml:"id" validate:"required"`
	Name           string          `toml:"name" validate:"required"`
	Amount         decimal.Decimal `toml:"amount"`
	DueDay         int             `toml:"due_day" validate:"min=1,max=31"`
	Frequency      Frequency       `toml:"frequency" validate:"oneof=semi-monthly monthly quarterly annual"`
	Autopay        bool            `toml:"autopay"`
	PaymentAccount string          `toml:"payment_account,omitempty"`
	Category       string          `toml:"category,omitempty"`
	LastPaid       *Date           `toml:"last_paid,omitempty"`
}

// CreditCard is a revolving credit account.
type CreditCard struct {
	ID             string          `toml:"id" validate:"required"`
	Name           string          `toml:"name" validate:"required"`
	Balance        decimal.Decimal `toml:"balance"`
	CreditLimit    decimal.Decimal `toml:"credit_limit"`
	APR            decimal.Decimal `toml:"apr"` // annual rate as a fraction, e.g. 0.1899
	DueDay         int             `toml:"due_day" validate:"min=1,max=31"`
	MinimumPayment decimal.Decimal `toml:"minimum_payment"`
	StatementDay   int             `toml:"statement_day,omitempty" validate:"omitempty,min=1,max=31"`
	PaymentAccount string          `toml:"payment_account,omitempty"`
}

// Utilization returns balance/limit as a percentage, 0 when no limit.
func (c CreditCard) Utilization() decimal.Decimal {
	if !c.CreditLimit.IsPositive() {
		return decimal.Zero
	}
	return c.Balance.Div(c.CreditLimit).Mul(decimal.NewFromInt(100))
}

// AvailableCredit returns the unused portion of the credit limit,
// floored at zero for over-limit cards.
func (c CreditCard) AvailableCredit() decimal.Decimal {
	avail := c.CreditLimit.Sub(c.Balance)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// DailyInterest returns the interest accruing per day at the current
// balance.
func (c CreditCard) DailyInterest() decimal.Decimal {
	return c.Balance.Mul(c.APR).Div(decimal.NewFromInt(365))
}

// Settings holds planning parameters. Cushion and MinAllocation carry
// the documented defaults but are plain configuration, never hard-coded
// in the engine.
type Settings struct {
	EmergencyFundTarget decimal.Decimal `toml:"emergency_fund_target"`
	PlanningHorizonDays int             `toml:"planning_horizon_days" validate:"min=1,max=30"`
	Priority            Strategy        `toml:"priority" validate:"oneof=avalanche snowball balanced"`
	Cushion             decimal.Decimal `toml:"cushion"`
	MinAllocation       decimal.Decimal `toml:"min_allocation"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		EmergencyFundTarget: decimal.NewFromInt(1000),
		PlanningHorizonDays: 30,
		Priority:            Avalanche,
		Cushion:             decimal.NewFromInt(200),
		MinAllocation:       decimal.NewFromInt(50),
	}
}

// Config is a complete financial snapshot. The engine treats it as
// immutable; only the wizards and the bill tracker write to it.
type Config struct {
	Accounts    []Account    `toml:"accounts" validate:"dive"`
	Incomes     []Income     `toml:"income" validate:"dive"`
	Bills       []Bill       `toml:"bills" validate:"dive"`
	CreditCards []CreditCard `toml:"credit_cards" validate:"dive"`
	Settings    Settings     `toml:"settings"`
}

// Account returns the account with the given ID, or nil.
func (c *Config) Account(id string) *Account {
	for i := range c.Accounts {
		if c.Accounts[i].ID == id {
			return &c.Accounts[i]
		}
	}
	return nil
}

// Card returns the credit card with the given ID, or nil.
func (c *Config) Card(id string) *CreditCard {
	for i := range c.CreditCards {
		if c.CreditCards[i].ID == id {
			return &c.CreditCards[i]
		}
	}
	return nil
}
