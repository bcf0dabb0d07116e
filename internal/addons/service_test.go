package addons

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
)

type stubAddonRepo struct {
	addons []*models.Addon
}

func (s *stubAddonRepo) Create(_ context.Context, addon *models.Addon) (*models.Addon, error) {
	for _, existing := range s.addons {
		if existing.EstablishmentID == addon.EstablishmentID && existing.Name == addon.Name {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an addon with this name already exists")
		}
	}
	addon.ID = uuid.New()
	s.addons = append(s.addons, addon)
	return addon, nil
}

func (s *stubAddonRepo) Update(_ context.Context, addon *models.Addon) (*models.Addon, error) {
	for i, existing := range s.addons {
		if existing.ID == addon.ID {
			s.addons[i] = addon
			return addon, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func (s *stubAddonRepo) Delete(_ context.Context, establishmentID, addonID uuid.UUID) error {
	for i, existing := range s.addons {
		if existing.EstablishmentID == establishmentID && existing.ID == addonID {
			s.addons = append(s.addons[:i], s.addons[i+1:]...)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func (s *stubAddonRepo) GetByID(_ context.Context, establishmentID, addonID uuid.UUID) (*models.Addon, error) {
	for _, existing := range s.addons {
		if existing.EstablishmentID == establishmentID && existing.ID == addonID {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func (s *stubAddonRepo) GetActiveByName(_ context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error) {
	for _, existing := range s.addons {
		if existing.EstablishmentID == establishmentID && existing.Name == name && !existing.Blocked {
			return existing, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func (s *stubAddonRepo) ListByEstablishment(_ context.Context, establishmentID uuid.UUID, includeBlocked bool) ([]models.Addon, error) {
	var out []models.Addon
	for _, existing := range s.addons {
		if existing.EstablishmentID != establishmentID {
			continue
		}
		if existing.Blocked && !includeBlocked {
			continue
		}
		out = append(out, *existing)
	}
	return out, nil
}

func (s *stubAddonRepo) SetBlocked(_ context.Context, establishmentID, addonID uuid.UUID, blocked bool) error {
	for _, existing := range s.addons {
		if existing.EstablishmentID == establishmentID && existing.ID == addonID {
			existing.Blocked = blocked
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func newAddonService(t *testing.T) (Service, *stubAddonRepo) {
	t.Helper()
	repo := &stubAddonRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, repo
}

func TestAddonCreateAndPriceIndex(t *testing.T) {
	svc, _ := newAddonService(t)
	ctx := context.Background()
	establishment := uuid.New()

	bacon, err := svc.Create(ctx, establishment, CreateAddonInput{Name: "Bacon", PriceCents: 200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bacon.Price != "R$ 2,00" {
		t.Fatalf("unexpected display price %q", bacon.Price)
	}
	if _, err := svc.Create(ctx, establishment, CreateAddonInput{Name: "Cheddar", PriceCents: 350}); err != nil {
		t.Fatalf("create cheddar: %v", err)
	}

	index, err := svc.ActivePriceIndex(ctx, establishment)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if index["Bacon"] != 200 || index["Cheddar"] != 350 {
		t.Fatalf("unexpected index %v", index)
	}
}

func TestAddonBlockedFallsOutOfIndex(t *testing.T) {
	svc, _ := newAddonService(t)
	ctx := context.Background()
	establishment := uuid.New()

	bacon, err := svc.Create(ctx, establishment, CreateAddonInput{Name: "Bacon", PriceCents: 200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SetBlocked(ctx, establishment, bacon.ID, true); err != nil {
		t.Fatalf("block: %v", err)
	}

	index, err := svc.ActivePriceIndex(ctx, establishment)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if _, ok := index["Bacon"]; ok {
		t.Fatalf("blocked addon should not price: %v", index)
	}

	if _, err := svc.GetActiveByName(ctx, establishment, "Bacon"); err == nil {
		t.Fatalf("blocked addon should not resolve for attachment")
	}
}

func TestAddonDuplicateNameConflicts(t *testing.T) {
	svc, _ := newAddonService(t)
	ctx := context.Background()
	establishment := uuid.New()

	if _, err := svc.Create(ctx, establishment, CreateAddonInput{Name: "Bacon", PriceCents: 200}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, establishment, CreateAddonInput{Name: "Bacon", PriceCents: 300})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestAddonUpdate(t *testing.T) {
	svc, _ := newAddonService(t)
	ctx := context.Background()
	establishment := uuid.New()

	bacon, err := svc.Create(ctx, establishment, CreateAddonInput{Name: "Bacon", PriceCents: 200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	price := int64(250)
	updated, err := svc.Update(ctx, establishment, bacon.ID, UpdateAddonInput{PriceCents: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 250 || updated.Name != "Bacon" {
		t.Fatalf("unexpected update result %+v", updated)
	}
}
