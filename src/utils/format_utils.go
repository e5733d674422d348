package utils

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// usPrinter formats numbers with en-US grouping ("1,234,567.89").
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a value as an en-US currency string with two
// decimals, e.g. 150000 -> "$150,000.00". Reports and the UI must agree on
// this exact format.
func FormatCurrency(v float64) string {
	return usPrinter.Sprintf("$%.2f", v)
}

// FormatRatio renders a ratio with a fixed two decimals, e.g. 2.5 -> "2.50".
func FormatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
