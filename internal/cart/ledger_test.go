package cart

import "testing"

func TestLedgerAttachMergesByName(t *testing.T) {
	ledger := Ledger{}
	key := UnitKey("X-Burger", 0)

	ledger.Attach(key, "Bacon")
	ledger.Attach(key, "Bacon")
	ledger.Attach(key, "Cheddar")

	entries := ledger.Entries(key)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Bacon" || entries[0].Count != 2 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "Cheddar" || entries[1].Count != 1 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestLedgerDetachFloorsAtZero(t *testing.T) {
	ledger := Ledger{}
	key := UnitKey("X-Burger", 0)
	ledger.Attach(key, "Bacon")

	ledger.Detach(key, "Bacon")
	if got := ledger.Entries(key); len(got) != 0 {
		t.Fatalf("entry should be pruned at zero, got %v", got)
	}

	// further detaches on the same name must stay silent
	ledger.Detach(key, "Bacon")
	ledger.Detach(key, "Bacon")
	if got := ledger.Entries(key); len(got) != 0 {
		t.Fatalf("repeated detach produced entries: %v", got)
	}

	ledger.Detach(UnitKey("Coke", 0), "Gelo")
}

func TestLedgerRemoveItemDropsAllItemKeys(t *testing.T) {
	ledger := Ledger{}
	ledger.Attach(UnitKey("X-Burger", 0), "Bacon")
	ledger.Attach(UnitKey("X-Burger", 1), "Bacon")
	ledger.Attach(UnitKey("X-Salada", 0), "Ovo")

	ledger.RemoveItem("X-Burger")

	if got := ledger.Entries(UnitKey("X-Burger", 0)); len(got) != 0 {
		t.Fatalf("unit 0 keys survived removal: %v", got)
	}
	if got := ledger.Entries(UnitKey("X-Burger", 1)); len(got) != 0 {
		t.Fatalf("unit 1 keys survived removal: %v", got)
	}
	if got := ledger.Entries(UnitKey("X-Salada", 0)); len(got) != 1 {
		t.Fatalf("unrelated keys dropped: %v", got)
	}
}

func TestLedgerResetClearsEverything(t *testing.T) {
	ledger := Ledger{}
	ledger.Attach(UnitKey("X-Burger", 0), "Bacon")
	ledger.Attach(WholeLineKey("Coke"), "Gelo")

	ledger.Reset()

	if len(ledger) != 0 {
		t.Fatalf("ledger should be empty after reset, got %d keys", len(ledger))
	}
}
