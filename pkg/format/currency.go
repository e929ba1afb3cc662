package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(cents int64) string {
	if cents < 0 {
		return "-$" + formatPositiveCents(-cents)
	}
	return "$" + formatPositiveCents(cents)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(cents int64) string {
	if cents < 0 {
		return "-" + formatPositiveCents(-cents)
	}
	return formatPositiveCents(cents)
}

// Dollars returns a plain two-decimal dollar string without separators (e.g., "1234.56"), used for CSV.
func Dollars(cents int64) string {
	return strings.ReplaceAll(NumericCurrency(cents), ",", "")
}

// formatPositiveCents groups the whole-dollar part with the English printer.
func formatPositiveCents(value int64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d.%02d", value/100, value%100)
}
