package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// FromCents converts an integer amount of centavos into a decimal value in reais.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(cem)
}

// FormatBRL renders an amount of centavos as Brazilian currency, e.g. 123456 -> "R$ 1.234,56".
func FormatBRL(cents int64) string {
	value := FromCents(cents)

	negative := value.IsNegative()
	fixed := value.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if negative {
		b.WriteString("-")
	}
	b.WriteString(groupThousands(intPart))
	b.WriteString(",")
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
