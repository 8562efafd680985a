// Package money formats amounts in Indonesian Rupiah.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats d with no decimals and Indonesian digit grouping,
// e.g. "Rp 125.000".
func Rupiah(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return "-Rp " + printer.Sprintf("%d", -n)
	}
	return "Rp " + printer.Sprintf("%d", n)
}

// Amount is a decimal paired with its display string.
type Amount struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Formatted: Rupiah(d)}
}

func FromInt(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}
