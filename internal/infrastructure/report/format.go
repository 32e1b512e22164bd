package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// BRL formatea un valor monetario en pt-BR: "R$ 1.234,56".
func BRL(d decimal.Decimal) string {
	return "R$ " + brPrinter.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// Percent formatea un porcentaje con un decimal: "40,0%".
func Percent(d decimal.Decimal) string {
	return brPrinter.Sprint(number.Decimal(d.Round(1).InexactFloat64(), number.Scale(1))) + "%"
}

// BRDate convierte YYYY-MM-DD a DD/MM/YYYY; cualquier otra cosa se devuelve igual.
func BRDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// Period describe el rango del filtro para encabezados.
func Period(start, end string) string {
	switch {
	case start == "" && end == "":
		return "Todo o período"
	case end == "":
		return "A partir de " + BRDate(start)
	case start == "":
		return "Até " + BRDate(end)
	case start == end:
		return BRDate(start)
	default:
		return BRDate(start) + " a " + BRDate(end)
	}
}
