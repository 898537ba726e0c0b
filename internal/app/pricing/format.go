package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Форматирование цен для отображения. Чисто презентационная функция:
// числовые значения сметы она не меняет и не округляет.

var dutchPrinter = message.NewPrinter(language.Dutch)

// FormatEUR возвращает сумму в локали nl-NL с символом евро,
// например "€ 1.950,00"
func FormatEUR(d decimal.Decimal) string {
	v, _ := d.Float64()
	return dutchPrinter.Sprintf("%v", currency.Symbol(currency.EUR.Amount(v)))
}
