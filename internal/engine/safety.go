package engine

import (
	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

// TotalBalance sums every account's current balance.
func TotalBalance(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

// MinimumReserve sums the minimum-balance requirements across accounts.
func MinimumReserve(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.MinimumBalance)
	}
	return total
}

// SafetyBuffer is the reserve plus the configured cushion: the floor
// below which no discretionary allocation happens.
func SafetyBuffer(accounts []model.Account, cushion decimal.Decimal) decimal.Decimal {
	return MinimumReserve(accounts).Add(cushion)
}

// AvailableFunds is total balance minus the safety buffer. A negative
// result means no discretionary allocation is possible; it is data, not
// an error.
func AvailableFunds(accounts []model.Account, cushion decimal.Decimal) decimal.Decimal {
	return TotalBalance(accounts).Sub(SafetyBuffer(accounts, cushion))
}

// EmergencyFund is the combined balance of savings accounts, tracked
// against Settings.EmergencyFundTarget.
func EmergencyFund(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.Type == model.AccountSavings {
			total = total.Add(acc.Balance)
		}
	}
	return total
}
