package order

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/cart"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/types"
)

type stubEstablishments struct {
	bySlug map[string]*models.Establishment
}

func (s *stubEstablishments) GetBySlug(_ context.Context, slug string) (*models.Establishment, error) {
	if est, ok := s.bySlug[slug]; ok {
		return est, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "establishment not found")
}

type stubSnapshots struct {
	snapshots map[string]*cart.Snapshot
}

func (s *stubSnapshots) Snapshot(_ context.Context, establishmentID uuid.UUID, sessionID string) (*cart.Snapshot, error) {
	if snap, ok := s.snapshots[establishmentID.String()+"/"+sessionID]; ok {
		return snap, nil
	}
	return cart.NewSnapshot(), nil
}

type stubPricer struct {
	prices map[string]int64
}

func (s *stubPricer) ActivePriceIndex(_ context.Context, _ uuid.UUID) (map[string]int64, error) {
	return s.prices, nil
}

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 3, 10, hour, 30, 0, 0, time.Local)
	}
}

func newTestService(t *testing.T, hour int) (Service, *models.Establishment, *stubSnapshots) {
	t.Helper()

	establishment := &models.Establishment{
		ID:            uuid.New(),
		Name:          "Lanche da Vila",
		Slug:          "lanche-da-vila",
		WhatsAppPhone: "5573999503835",
	}
	establishments := &stubEstablishments{bySlug: map[string]*models.Establishment{establishment.Slug: establishment}}
	snapshots := &stubSnapshots{snapshots: map[string]*cart.Snapshot{}}
	pricer := &stubPricer{prices: map[string]int64{"Bacon": 200}}

	svc, err := NewService(establishments, snapshots, pricer, "", fixedClock(hour), nil)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, establishment, snapshots
}

func TestSubmitComposesMessageAndLink(t *testing.T) {
	svc, establishment, snapshots := newTestService(t, 15)

	snap := cart.NewSnapshot()
	snap.Lines = []cart.Line{{ItemName: "X-Burger", UnitPriceCents: 1000, Incrementable: true, Quantity: 1}}
	snap.Addons.Attach(cart.UnitKey("X-Burger", 0), "Bacon")
	snapshots.snapshots[establishment.ID.String()+"/s1"] = snap

	submission, err := svc.Submit(context.Background(), "lanche-da-vila", "s1", types.Location{Region: "Centro"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if submission.TotalCents != 1200 {
		t.Fatalf("expected total 1200, got %d", submission.TotalCents)
	}
	if submission.Total != "R$ 12,00" {
		t.Fatalf("unexpected display total %q", submission.Total)
	}
	if !strings.HasPrefix(submission.Message, "*Boa tarde!") {
		t.Fatalf("expected afternoon greeting, got:\n%s", submission.Message)
	}
	if !strings.HasPrefix(submission.Link, "https://wa.me/5573999503835?text=") {
		t.Fatalf("unexpected link %q", submission.Link)
	}

	parsed, err := url.Parse(submission.Link)
	if err != nil {
		t.Fatalf("parsing link: %v", err)
	}
	if got := parsed.Query().Get("text"); got != submission.Message {
		t.Fatalf("link text does not round trip:\n%q\n%q", got, submission.Message)
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	svc, _, _ := newTestService(t, 10)

	_, err := svc.Submit(context.Background(), "lanche-da-vila", "s1", types.Location{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSubmitUnknownSlug(t *testing.T) {
	svc, _, _ := newTestService(t, 10)

	_, err := svc.Submit(context.Background(), "outro", "s1", types.Location{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
