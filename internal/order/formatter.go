package order

import (
	"fmt"
	"strings"

	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/cart"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/money"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/types"
)

// Greeting picks the salutation for the local wall-clock hour.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Bom dia"
	case hour >= 12 && hour < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}

// ComposeInput carries everything the message renders from. Compose is a pure
// function of it; dispatching the message is a separate step.
type ComposeInput struct {
	Lines       []cart.Line
	Ledger      cart.Ledger
	AddonPrices map[string]int64
	Location    types.Location
	Hour        int
}

// Compose renders the order message and returns it with the grand total in
// cents. The total printed in the header section and in the footer are the
// same figure the cart view reports.
func Compose(in ComposeInput) (string, int64) {
	total := cart.GrandTotal(in.Lines, in.Ledger, in.AddonPrices)
	totalBRL := money.FormatBRL(total)

	var b strings.Builder
	fmt.Fprintf(&b, "*%s! Gostaria de fazer o seguinte pedido:*\n\n", Greeting(in.Hour))

	for _, unit := range cart.ExpandAll(in.Lines) {
		fmt.Fprintf(&b, "%dx --- %s - %s\n", unit.Quantity, unit.ItemName, money.FormatBRL(unit.UnitPriceCents))
		for _, entry := range in.Ledger.Entries(unit.Key) {
			subtotal := in.AddonPrices[entry.Name] * int64(entry.Count)
			fmt.Fprintf(&b, "  + %dx -- %s - %s\n", entry.Count, entry.Name, money.FormatBRL(subtotal))
		}
	}

	fmt.Fprintf(&b, "\n*Total do pedido:* %s\n\n", totalBRL)

	b.WriteString("*Local de Entrega*\n")
	fmt.Fprintf(&b, "Região: %s\n", in.Location.Region)
	fmt.Fprintf(&b, "Bairro: %s\n", in.Location.Neighborhood)
	fmt.Fprintf(&b, "Rua: %s\n", in.Location.Street)
	fmt.Fprintf(&b, "Número: %s\n", in.Location.Number)
	fmt.Fprintf(&b, "Complemento: %s\n", in.Location.Complement)
	fmt.Fprintf(&b, "Observação: %s\n", in.Location.Note)
	b.WriteString("*Valor da entrega:* (A negociar)\n\n")

	fmt.Fprintf(&b, "*Valor Total:* %s + Entrega", totalBRL)

	return b.String(), total
}
