package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/metrics"
)

type productLoader interface {
	GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Product, error)
}

type addonLoader interface {
	GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error)
	ActivePriceIndex(ctx context.Context, establishmentID uuid.UUID) (map[string]int64, error)
}

// Service exposes the per-session cart operations.
type Service interface {
	AddItem(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (*View, error)
	RemoveItem(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (*View, error)
	ItemQuantity(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (int, error)
	Clear(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*View, error)
	AttachAddon(ctx context.Context, establishmentID uuid.UUID, sessionID string, key LineKey, addonName string) (*View, error)
	DetachAddon(ctx context.Context, establishmentID uuid.UUID, sessionID string, key LineKey, addonName string) (*View, error)
	View(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*View, error)
	Snapshot(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*Snapshot, error)
}

type service struct {
	store    SnapshotStore
	products productLoader
	addons   addonLoader
	metrics  *metrics.OrderMetrics
}

// NewService builds a cart service backed by the provided stack.
func NewService(store SnapshotStore, products productLoader, addons addonLoader, m *metrics.OrderMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if addons == nil {
		return nil, fmt.Errorf("addon loader required")
	}
	return &service{store: store, products: products, addons: addons, metrics: m}, nil
}

func (s *service) AddItem(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (*View, error) {
	if itemName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	product, err := s.products.GetActiveByName(ctx, establishmentID, itemName)
	if err != nil {
		return nil, err
	}

	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return nil, err
	}

	snap.AddItem(lineFromProduct(product))

	if err := s.store.Save(ctx, establishmentID.String(), sessionID, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("add")
	return s.buildView(ctx, establishmentID, snap)
}

func (s *service) RemoveItem(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (*View, error) {
	if itemName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return nil, err
	}

	snap.RemoveItem(itemName)

	if err := s.store.Save(ctx, establishmentID.String(), sessionID, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("remove")
	return s.buildView(ctx, establishmentID, snap)
}

func (s *service) ItemQuantity(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (int, error) {
	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return 0, err
	}
	return snap.Quantity(itemName), nil
}

func (s *service) Clear(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*View, error) {
	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return nil, err
	}

	snap.Clear()

	if err := s.store.Delete(ctx, establishmentID.String(), sessionID); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("clear")
	return s.buildView(ctx, establishmentID, snap)
}

func (s *service) AttachAddon(ctx context.Context, establishmentID uuid.UUID, sessionID string, key LineKey, addonName string) (*View, error) {
	if addonName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addon name is required")
	}

	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return nil, err
	}

	target, err := findExpandedLine(snap, key)
	if err != nil {
		return nil, err
	}
	if !target.Incrementable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item does not accept addons")
	}

	if _, err := s.addons.GetActiveByName(ctx, establishmentID, addonName); err != nil {
		return nil, err
	}

	snap.Addons.Attach(key, addonName)

	if err := s.store.Save(ctx, establishmentID.String(), sessionID, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("attach")
	return s.buildView(ctx, establishmentID, snap)
}

func (s *service) DetachAddon(ctx context.Context, establishmentID uuid.UUID, sessionID string, key LineKey, addonName string) (*View, error) {
	if addonName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addon name is required")
	}

	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return nil, err
	}

	snap.Addons.Detach(key, addonName)

	if err := s.store.Save(ctx, establishmentID.String(), sessionID, snap); err != nil {
		return nil, err
	}

	s.metrics.IncCartMutation("detach")
	return s.buildView(ctx, establishmentID, snap)
}

func (s *service) View(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*View, error) {
	snap, err := s.store.Load(ctx, establishmentID.String(), sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, establishmentID, snap)
}

func (s *service) Snapshot(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*Snapshot, error) {
	return s.store.Load(ctx, establishmentID.String(), sessionID)
}

func (s *service) buildView(ctx context.Context, establishmentID uuid.UUID, snap *Snapshot) (*View, error) {
	prices, err := s.addons.ActivePriceIndex(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	return BuildView(snap, prices), nil
}

func findExpandedLine(snap *Snapshot, key LineKey) (*ExpandedLine, error) {
	for _, expanded := range ExpandAll(snap.Lines) {
		if expanded.Key == key {
			return &expanded, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
}
