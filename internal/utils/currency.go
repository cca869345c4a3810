package utils

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount in cents as US dollars with thousands
// grouping, e.g. 123456 -> "$1,234.56" and -500 -> "-$5.00".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, usPrinter.Sprintf("%d", cents/100), cents%100)
}
