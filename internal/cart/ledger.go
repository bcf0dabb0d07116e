package cart

// AddonEntry is one attached addon with its repetition count. Counts are
// always positive; an entry decremented to zero is pruned.
type AddonEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Ledger maps a line key to its ordered addon entries. Entry order follows
// first attachment, and no key holds two entries for the same addon name.
type Ledger map[LineKey][]AddonEntry

// Attach adds one unit of the named addon under the key, creating the entry
// at count 1 when absent. Counts are unbounded.
func (l Ledger) Attach(key LineKey, addonName string) {
	entries := l[key]
	for i := range entries {
		if entries[i].Name == addonName {
			entries[i].Count++
			return
		}
	}
	l[key] = append(entries, AddonEntry{Name: addonName, Count: 1})
}

// Detach removes one unit of the named addon, flooring at zero. The entry is
// pruned the moment it reaches zero. Unknown keys and names are a no-op.
func (l Ledger) Detach(key LineKey, addonName string) {
	entries := l[key]
	for i := range entries {
		if entries[i].Name != addonName {
			continue
		}
		entries[i].Count--
		if entries[i].Count <= 0 {
			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(l, key)
			} else {
				l[key] = entries
			}
		}
		return
	}
}

// Entries returns the attachments recorded for the key.
func (l Ledger) Entries(key LineKey) []AddonEntry {
	return l[key]
}

// RemoveItem drops every key belonging to the named item, whole-line and
// per-unit alike. Called when a cart line is deleted.
func (l Ledger) RemoveItem(itemName string) {
	for key := range l {
		if key.ItemName == itemName {
			delete(l, key)
		}
	}
}

// Reset clears all attachments. Called when the cart transitions to empty so
// stale selections never leak into a later order.
func (l *Ledger) Reset() {
	*l = Ledger{}
}
