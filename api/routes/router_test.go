package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/addons"
	authsvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/auth"
	cartsvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/cart"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/catalog"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/establishments"
	ordersvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/order"
	pkgAuth "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/auth"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/config"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Register(ctx context.Context, input authsvc.RegisterInput) (*authsvc.Session, error) {
	return &authsvc.Session{AccessToken: "token"}, nil
}

type stubEstablishmentService struct {
	slug string
}

func (s stubEstablishmentService) GetBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	if slug != s.slug {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "establishment not found")
	}
	return &models.Establishment{ID: uuid.New(), Name: "Lanche da Vila", Slug: slug, WhatsAppPhone: "5573999503835"}, nil
}

func (s stubEstablishmentService) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Establishment, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "establishment not found")
}

func (s stubEstablishmentService) Create(ctx context.Context, ownerID uuid.UUID, input establishments.CreateInput) (*establishments.DTO, error) {
	return &establishments.DTO{ID: uuid.New(), Name: input.Name}, nil
}

func (s stubEstablishmentService) Update(ctx context.Context, ownerID uuid.UUID, input establishments.UpdateInput) (*establishments.DTO, error) {
	return &establishments.DTO{ID: uuid.New()}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) Menu(ctx context.Context, establishmentID uuid.UUID) ([]catalog.MenuSection, error) {
	return []catalog.MenuSection{}, nil
}

func (stubCatalogService) ListProducts(ctx context.Context, establishmentID uuid.UUID) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

func (stubCatalogService) CreateProduct(ctx context.Context, establishmentID uuid.UUID, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (stubCatalogService) UpdateProduct(ctx context.Context, establishmentID, productID uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: productID}, nil
}

func (stubCatalogService) DeleteProduct(ctx context.Context, establishmentID, productID uuid.UUID) error {
	return nil
}

func (stubCatalogService) SetProductBlocked(ctx context.Context, establishmentID, productID uuid.UUID, blocked bool) error {
	return nil
}

func (stubCatalogService) GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubAddonService struct{}

func (stubAddonService) ListActive(ctx context.Context, establishmentID uuid.UUID) ([]addons.AddonDTO, error) {
	return []addons.AddonDTO{}, nil
}

func (stubAddonService) List(ctx context.Context, establishmentID uuid.UUID) ([]addons.AddonDTO, error) {
	return []addons.AddonDTO{}, nil
}

func (stubAddonService) Create(ctx context.Context, establishmentID uuid.UUID, input addons.CreateAddonInput) (*addons.AddonDTO, error) {
	return &addons.AddonDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (stubAddonService) Update(ctx context.Context, establishmentID, addonID uuid.UUID, input addons.UpdateAddonInput) (*addons.AddonDTO, error) {
	return &addons.AddonDTO{ID: addonID}, nil
}

func (stubAddonService) Delete(ctx context.Context, establishmentID, addonID uuid.UUID) error {
	return nil
}

func (stubAddonService) SetBlocked(ctx context.Context, establishmentID, addonID uuid.UUID, blocked bool) error {
	return nil
}

func (stubAddonService) GetActiveByName(ctx context.Context, establishmentID uuid.UUID, name string) (*models.Addon, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
}

func (stubAddonService) ActivePriceIndex(ctx context.Context, establishmentID uuid.UUID) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) ItemQuantity(ctx context.Context, establishmentID uuid.UUID, sessionID, itemName string) (int, error) {
	return 0, nil
}

func (stubCartService) Clear(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) AttachAddon(ctx context.Context, establishmentID uuid.UUID, sessionID string, key cartsvc.LineKey, addonName string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) DetachAddon(ctx context.Context, establishmentID uuid.UUID, sessionID string, key cartsvc.LineKey, addonName string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) View(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) Snapshot(ctx context.Context, establishmentID uuid.UUID, sessionID string) (*cartsvc.Snapshot, error) {
	return cartsvc.NewSnapshot(), nil
}

type stubOrderService struct{}

func (stubOrderService) Submit(ctx context.Context, slug, sessionID string, location types.Location) (*ordersvc.Submission, error) {
	return &ordersvc.Submission{Link: "https://wa.me/5573999503835?text=pedido"}, nil
}

func testConfig(env string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: env, Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Cart: config.CartConfig{TTL: time.Hour, SessionHeader: "X-Cart-Session"},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		nil,
		stubAuthService{},
		stubEstablishmentService{slug: "lanche-da-vila"},
		stubCatalogService{},
		stubAddonService{},
		stubCartService{},
		stubOrderService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, establishmentID *uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:          uuid.New(),
		EstablishmentID: establishmentID,
		JTI:             uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig("test"))
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live probe got %d", resp.Code)
	}
}

func TestPublicMenuBySlug(t *testing.T) {
	router := newTestRouter(testConfig("test"))

	req := httptest.NewRequest(http.MethodGet, "/api/public/menu/lanche-da-vila", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for known slug got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/public/menu/nope", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug got %d", resp.Code)
	}
}

func TestCartRoutesIssueSessionHeader(t *testing.T) {
	router := newTestRouter(testConfig("test"))

	req := httptest.NewRequest(http.MethodGet, "/api/public/cart/lanche-da-vila/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart view got %d", resp.Code)
	}
	issued := resp.Header().Get("X-Cart-Session")
	if issued == "" {
		t.Fatal("expected a session header on the response")
	}
	if _, err := uuid.Parse(issued); err != nil {
		t.Fatalf("expected a uuid session id got %q", issued)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/public/cart/lanche-da-vila/", nil)
	req.Header.Set("X-Cart-Session", issued)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Cart-Session"); got != issued {
		t.Fatalf("expected session %q echoed back got %q", issued, got)
	}
}

func TestOrderSubmitReachable(t *testing.T) {
	router := newTestRouter(testConfig("test"))

	body := `{"region":"Zona Sul","neighborhood":"Centro","street":"Rua das Flores","number":"123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/public/orders/lanche-da-vila/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for order submit got %d", resp.Code)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig("test"))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminProductsRequireEstablishmentContext(t *testing.T) {
	cfg := testConfig("test")
	router := newTestRouter(cfg)

	withoutEstablishment := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	withoutEstablishment.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, withoutEstablishment)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without establishment claim got %d", resp.Code)
	}

	establishmentID := uuid.New()
	withEstablishment := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	withEstablishment.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, &establishmentID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, withEstablishment)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with establishment claim got %d", resp.Code)
	}
}

func TestRegisterRouteDisabledInProd(t *testing.T) {
	body := `{"email":"owner@example.com","password":"longenough"}`

	prod := newTestRouter(testConfig("prod"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	prod.ServeHTTP(resp, req)
	if resp.Code == http.StatusCreated {
		t.Fatalf("expected register to be unavailable in prod got %d", resp.Code)
	}

	dev := newTestRouter(testConfig("dev"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	dev.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering in dev got %d", resp.Code)
	}
}
