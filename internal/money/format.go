// Package money formats and checks shilling amounts.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const Currency = "KSh"

var printer = message.NewPrinter(language.English)

// Format renders an amount the way kiosk receipts show it, e.g. "KSh 1,200" or "KSh 45.5".
// Only the whole part goes through the printer, so cents are never rounded through a float.
func Format(amount decimal.Decimal) string {
	r := amount.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := r.Truncate(0)
	s := printer.Sprintf("%s %s%v", Currency, sign, number.Decimal(whole.IntPart()))
	if frac := r.Sub(whole); !frac.IsZero() {
		s += strings.TrimRight(frac.StringFixed(2)[1:], "0")
	}
	return s
}
