package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationError identifies the offending field of a rejected snapshot.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

var validate = validator.New()

// Validate rejects a malformed snapshot before any computation runs.
// Structural constraints (ranges, enums, required fields) are checked
// with struct tags; decimal-valued invariants are checked by hand since
// the validator cannot compare decimals.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return &ValidationError{
				Field: f.Namespace(),
				Msg:   fmt.Sprintf("failed %q constraint", f.Tag()),
			}
		}
		return err
	}

	for _, acc := range cfg.Accounts {
		if acc.MinimumBalance.IsNegative() {
			return &ValidationError{Field: fieldOf("account", acc.ID, "minimum_balance"), Msg: "must not be negative"}
		}
	}

	for _, inc := range cfg.Incomes {
		if inc.Amount.IsNegative() {
			return &ValidationError{Field: fieldOf("income", inc.ID, "amount"), Msg: "must not be negative"}
		}
		if inc.NextDate.IsZero() {
			return &ValidationError{Field: fieldOf("income", inc.ID, "next_date"), Msg: "recurring rule needs an anchor date"}
		}
		if err := validateSplits(inc); err != nil {
			return err
		}
	}

	for _, bill := range cfg.Bills {
		if bill.Amount.IsNegative() {
			return &ValidationError{Field: fieldOf("bill", bill.ID, "amount"), Msg: "must not be negative"}
		}
	}

	for _, cc := range cfg.CreditCards {
		if cc.Balance.IsNegative() {
			return &ValidationError{Field: fieldOf("credit_card", cc.ID, "balance"), Msg: "must not be negative"}
		}
		if cc.APR.IsNegative() {
			return &ValidationError{Field: fieldOf("credit_card", cc.ID, "apr"), Msg: "must not be negative"}
		}
		if cc.MinimumPayment.IsNegative() {
			return &ValidationError{Field: fieldOf("credit_card", cc.ID, "minimum_payment"), Msg: "must not be negative"}
		}
	}

	if cfg.Settings.Cushion.IsNegative() {
		return &ValidationError{Field: "settings.cushion", Msg: "must not be negative"}
	}
	if cfg.Settings.MinAllocation.IsNegative() {
		return &ValidationError{Field: "settings.min_allocation", Msg: "must not be negative"}
	}

	return nil
}

// validateSplits enforces the split invariant: at most one remainder
// entry, fixed amounts non-negative, and fixed amounts not exceeding the
// income total (a negative remainder is an error, not a silent clamp).
func validateSplits(inc Income) error {
	if len(inc.Splits) == 0 {
		return nil
	}

	remainders := 0
	fixed := decimal.Zero
	for _, s := range inc.Splits {
		if s.Amount == nil {
			remainders++
			continue
		}
		if s.Amount.IsNegative() {
			return &ValidationError{Field: fieldOf("income", inc.ID, "splits"), Msg: "split amount must not be negative"}
		}
		fixed = fixed.Add(*s.Amount)
	}

	if remainders > 1 {
		return &ValidationError{Field: fieldOf("income", inc.ID, "splits"), Msg: "at most one remainder split allowed"}
	}
	if fixed.GreaterThan(inc.Amount) {
		return &ValidationError{
			Field: fieldOf("income", inc.ID, "splits"),
			Msg:   fmt.Sprintf("fixed splits total %s exceeds income amount %s", fixed.StringFixed(2), inc.Amount.StringFixed(2)),
		}
	}
	if remainders == 0 && !fixed.Equal(inc.Amount) {
		return &ValidationError{
			Field: fieldOf("income", inc.ID, "splits"),
			Msg:   fmt.Sprintf("splits total %s does not cover income amount %s", fixed.StringFixed(2), inc.Amount.StringFixed(2)),
		}
	}
	return nil
}

func fieldOf(kind, id, field string) string {
	return fmt.Sprintf("%s[%s].%s", kind, id, field)
}
