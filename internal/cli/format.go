// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"strconv"
	"strings"

	"finplan/internal/model"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a decimal amount as dollars with cents and comma
// separators, e.g. 1850 -> "$1,850.00".
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	s := d.StringFixed(2)
	dot := strings.IndexByte(s, '.')
	whole, cents := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(whole))
	b.WriteString(cents)
	return b.String()
}

// FormatSignedMoney is FormatMoney with an explicit leading + on
// positive amounts, for event listings.
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

// FormatPercent renders a fractional rate as a percentage,
// e.g. 0.1899 -> "19.0%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatDate renders a date for table display, e.g. "Mon Sep 01".
func FormatDate(d model.Date) string {
	return d.Format("Mon Jan 02")
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
