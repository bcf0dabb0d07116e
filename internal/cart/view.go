package cart

import (
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/money"
)

// AddonView is one attached addon priced for display.
type AddonView struct {
	Name           string `json:"name"`
	Count          int    `json:"count"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
	Subtotal       string `json:"subtotal"`
}

// LineView is one expanded unit priced for display.
type LineView struct {
	Key            LineKey     `json:"key"`
	ItemName       string      `json:"item_name"`
	Quantity       int         `json:"quantity"`
	UnitPriceCents int64       `json:"unit_price_cents"`
	UnitPrice      string      `json:"unit_price"`
	Incrementable  bool        `json:"incrementable"`
	Options        []string    `json:"options,omitempty"`
	Addons         []AddonView `json:"addons,omitempty"`
	TotalCents     int64       `json:"total_cents"`
	Total          string      `json:"total"`
}

// View is the cart as the client renders it: expanded units, per-unit totals
// and the grand total.
type View struct {
	Lines      []LineView `json:"lines"`
	ItemCount  int        `json:"item_count"`
	TotalCents int64      `json:"total_cents"`
	Total      string     `json:"total"`
}

// BuildView expands the snapshot and prices every unit against the addon
// catalog index.
func BuildView(snap *Snapshot, addonPrices map[string]int64) *View {
	view := &View{Lines: []LineView{}, ItemCount: snap.ItemCount()}

	for _, expanded := range ExpandAll(snap.Lines) {
		entries := snap.Addons.Entries(expanded.Key)
		lineTotal := LineTotal(expanded, entries, addonPrices)

		addons := make([]AddonView, 0, len(entries))
		for _, entry := range entries {
			price := addonPrices[entry.Name]
			subtotal := price * int64(entry.Count)
			addons = append(addons, AddonView{
				Name:           entry.Name,
				Count:          entry.Count,
				UnitPriceCents: price,
				SubtotalCents:  subtotal,
				Subtotal:       money.FormatBRL(subtotal),
			})
		}

		view.Lines = append(view.Lines, LineView{
			Key:            expanded.Key,
			ItemName:       expanded.ItemName,
			Quantity:       expanded.Quantity,
			UnitPriceCents: expanded.UnitPriceCents,
			UnitPrice:      money.FormatBRL(expanded.UnitPriceCents),
			Incrementable:  expanded.Incrementable,
			Options:        expanded.Options,
			Addons:         addons,
			TotalCents:     lineTotal,
			Total:          money.FormatBRL(lineTotal),
		})
		view.TotalCents += lineTotal
	}

	view.Total = money.FormatBRL(view.TotalCents)
	return view
}
