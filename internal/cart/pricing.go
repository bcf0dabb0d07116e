package cart

// LineTotal prices one expanded unit in cents: the item's unit price plus the
// addon attachments under the unit's key, the whole thing multiplied by the
// unit's quantity. Attachments whose addon name no longer resolves in the
// catalog price as zero; a stale reference is not an error.
func LineTotal(line ExpandedLine, entries []AddonEntry, addonPrices map[string]int64) int64 {
	addonSum := int64(0)
	for _, entry := range entries {
		if price, ok := addonPrices[entry.Name]; ok {
			addonSum += price * int64(entry.Count)
		}
	}
	return (line.UnitPriceCents + addonSum) * int64(line.Quantity)
}

// GrandTotal prices the whole cart: the sum of LineTotal over every expanded
// unit of every line.
func GrandTotal(lines []Line, ledger Ledger, addonPrices map[string]int64) int64 {
	total := int64(0)
	for _, expanded := range ExpandAll(lines) {
		total += LineTotal(expanded, ledger.Entries(expanded.Key), addonPrices)
	}
	return total
}
