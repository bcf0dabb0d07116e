package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

type memoryStore struct {
	snapshots map[string]*Snapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: map[string]*Snapshot{}}
}

func (m *memoryStore) Load(_ context.Context, establishmentID, sessionID string) (*Snapshot, error) {
	if snap, ok := m.snapshots[establishmentID+"/"+sessionID]; ok {
		return snap, nil
	}
	return NewSnapshot(), nil
}

func (m *memoryStore) Save(_ context.Context, establishmentID, sessionID string, snap *Snapshot) error {
	m.snapshots[establishmentID+"/"+sessionID] = snap
	return nil
}

func (m *memoryStore) Delete(_ context.Context, establishmentID, sessionID string) error {
	delete(m.snapshots, establishmentID+"/"+sessionID)
	return nil
}

type stubCatalog struct {
	products map[string]*models.Product
}

func (s *stubCatalog) GetActiveByName(_ context.Context, _ uuid.UUID, name string) (*models.Product, error) {
	if p, ok := s.products[name]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubAddons struct {
	addons map[string]*models.Addon
}

func (s *stubAddons) GetActiveByName(_ context.Context, _ uuid.UUID, name string) (*models.Addon, error) {
	if a, ok := s.addons[name]; ok {
		return a, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func (s *stubAddons) ActivePriceIndex(_ context.Context, _ uuid.UUID) (map[string]int64, error) {
	index := map[string]int64{}
	for name, addon := range s.addons {
		index[name] = addon.PriceCents
	}
	return index, nil
}

func newTestService(t *testing.T) (Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	products := &stubCatalog{products: map[string]*models.Product{
		"X-Burger": {Name: "X-Burger", PriceCents: 1000, Incrementable: true},
		"Coke":     {Name: "Coke", PriceCents: 500},
		"Juice":    {Name: "Juice", PriceCents: 600, Options: []string{"Laranja", "Manga"}},
	}}
	addons := &stubAddons{addons: map[string]*models.Addon{
		"Bacon": {Name: "Bacon", PriceCents: 200},
	}}

	svc, err := NewService(store, products, addons, nil)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, store
}

func TestServiceAddItemMergesByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "Coke"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	view, err := svc.AddItem(ctx, establishment, "s1", "Coke")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Lines[0].Quantity)
	}

	qty, err := svc.ItemQuantity(ctx, establishment, "s1", "Coke")
	if err != nil {
		t.Fatalf("quantity: %v", err)
	}
	if qty != 2 {
		t.Fatalf("expected quantity 2, got %d", qty)
	}
}

func TestServiceAddItemRejectsUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), "s1", "Pastel")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceAttachRequiresIncrementableLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "Coke"); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := svc.AttachAddon(ctx, establishment, "s1", WholeLineKey("Coke"), "Bacon")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestServiceAttachPerUnitPricing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	for i := 0; i < 2; i++ {
		if _, err := svc.AddItem(ctx, establishment, "s1", "X-Burger"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if _, err := svc.AttachAddon(ctx, establishment, "s1", UnitKey("X-Burger", 0), "Bacon"); err != nil {
		t.Fatalf("attach 1: %v", err)
	}
	if _, err := svc.AttachAddon(ctx, establishment, "s1", UnitKey("X-Burger", 0), "Bacon"); err != nil {
		t.Fatalf("attach 2: %v", err)
	}
	view, err := svc.AttachAddon(ctx, establishment, "s1", UnitKey("X-Burger", 1), "Bacon")
	if err != nil {
		t.Fatalf("attach 3: %v", err)
	}

	if view.TotalCents != 2600 {
		t.Fatalf("expected total 2600, got %d", view.TotalCents)
	}
	if view.Lines[0].TotalCents != 1400 || view.Lines[1].TotalCents != 1200 {
		t.Fatalf("unexpected per-unit totals: %d / %d", view.Lines[0].TotalCents, view.Lines[1].TotalCents)
	}
	if view.Total != "R$ 26,00" {
		t.Fatalf("unexpected display total %q", view.Total)
	}
}

func TestServiceAttachRejectsUnknownAddon(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "X-Burger"); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := svc.AttachAddon(ctx, establishment, "s1", UnitKey("X-Burger", 0), "Trufa")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceRemoveLastLineResetsLedger(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "X-Burger"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AttachAddon(ctx, establishment, "s1", UnitKey("X-Burger", 0), "Bacon"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	view, err := svc.RemoveItem(ctx, establishment, "s1", "X-Burger")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Lines) != 0 || view.TotalCents != 0 {
		t.Fatalf("cart should be empty, got %+v", view)
	}

	snap, err := store.Load(ctx, establishment.String(), "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Addons) != 0 {
		t.Fatalf("ledger should be reset on empty cart, got %v", snap.Addons)
	}
}

func TestServiceRemoveAbsentItemIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "Coke"); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.RemoveItem(ctx, establishment, "s1", "Pastel")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("unrelated removal changed the cart: %+v", view)
	}
}

func TestServiceClearEmptiesCartAndLedger(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "X-Burger"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AttachAddon(ctx, establishment, "s1", UnitKey("X-Burger", 0), "Bacon"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	view, err := svc.Clear(ctx, establishment, "s1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(view.Lines) != 0 || view.TotalCents != 0 {
		t.Fatalf("cart should be empty after clear, got %+v", view)
	}

	snap, err := svc.Snapshot(ctx, establishment, "s1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !snap.IsEmpty() || len(snap.Addons) != 0 {
		t.Fatalf("state survived clear: %+v", snap)
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.AddItem(ctx, establishment, "s1", "Coke"); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.View(ctx, establishment, "s2")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("session s2 should be empty, got %+v", view)
	}
}
