package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/cart"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/metrics"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/money"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/types"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/whatsapp"
)

type establishmentLoader interface {
	GetBySlug(ctx context.Context, slug string) (*models.Establishment, error)
}

type snapshotReader interface {
	Snapshot(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*cart.Snapshot, error)
}

type addonPricer interface {
	ActivePriceIndex(ctx context.Context, establishmentID uuid.UUID) (map[string]int64, error)
}

// Submission is the composed order handed back to the client. The client
// opens the link; nothing is persisted server-side.
type Submission struct {
	Message    string `json:"message"`
	Link       string `json:"link"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

// Service composes order messages and their WhatsApp deep links.
type Service interface {
	Submit(ctx context.Context, slug, sessionID string, location types.Location) (*Submission, error)
}

type service struct {
	establishments establishmentLoader
	carts          snapshotReader
	addons         addonPricer
	linkBase       string
	now            func() time.Time
	metrics        *metrics.OrderMetrics
}

// NewService builds the order service. now defaults to time.Now and linkBase
// to the public wa.me endpoint.
func NewService(establishments establishmentLoader, carts snapshotReader, addons addonPricer, linkBase string, now func() time.Time, m *metrics.OrderMetrics) (Service, error) {
	if establishments == nil {
		return nil, fmt.Errorf("establishment loader required")
	}
	if carts == nil {
		return nil, fmt.Errorf("snapshot reader required")
	}
	if addons == nil {
		return nil, fmt.Errorf("addon pricer required")
	}
	if linkBase == "" {
		linkBase = whatsapp.DefaultLinkBase
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		establishments: establishments,
		carts:          carts,
		addons:         addons,
		linkBase:       linkBase,
		now:            now,
		metrics:        m,
	}, nil
}

func (s *service) Submit(ctx context.Context, slug, sessionID string, location types.Location) (*Submission, error) {
	started := s.now()

	submission, err := s.submit(ctx, slug, sessionID, location)
	if err != nil {
		s.metrics.IncSubmission("error")
		s.metrics.ObserveSubmitDuration("error", time.Since(started))
		return nil, err
	}

	s.metrics.IncSubmission("ok")
	s.metrics.ObserveSubmitDuration("ok", time.Since(started))
	s.metrics.AddSubmissionTotal(slug, submission.TotalCents)
	return submission, nil
}

func (s *service) submit(ctx context.Context, slug, sessionID string, location types.Location) (*Submission, error) {
	establishment, err := s.establishments.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	snap, err := s.carts.Snapshot(ctx, establishment.ID, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	prices, err := s.addons.ActivePriceIndex(ctx, establishment.ID)
	if err != nil {
		return nil, err
	}

	message, total := Compose(ComposeInput{
		Lines:       snap.Lines,
		Ledger:      snap.Addons,
		AddonPrices: prices,
		Location:    location,
		Hour:        s.now().Hour(),
	})

	link, err := whatsapp.Link(s.linkBase, establishment.WhatsAppPhone, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building whatsapp link")
	}

	return &Submission{
		Message:    message,
		Link:       link,
		TotalCents: total,
		Total:      money.FormatBRL(total),
	}, nil
}
