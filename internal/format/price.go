package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ruPrinter = message.NewPrinter(language.Russian)

// Price renders an amount the way ru-RU locales do, with digit grouping and
// the rouble sign.
func Price(amount float64) string {
	return fmt.Sprintf("%s ₽", ruPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(2))))
}

// Count renders an integer with ru-RU digit grouping.
func Count(n int) string {
	return ruPrinter.Sprint(number.Decimal(n))
}
