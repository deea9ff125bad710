package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as a rupiah string with Indonesian digit
// grouping and no decimal places, e.g. 299990 -> "Rp299.990".
func FormatIDR(amount int64) string {
	return idPrinter.Sprintf("Rp%v", number.Decimal(amount))
}
