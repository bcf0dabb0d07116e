package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafaelmbarbosa/cardapiozap-backend/api/controllers"
	"github.com/rafaelmbarbosa/cardapiozap-backend/api/middleware"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/addons"
	authsvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/auth"
	cartsvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/cart"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/catalog"
	"github.com/rafaelmbarbosa/cardapiozap-backend/internal/establishments"
	ordersvc "github.com/rafaelmbarbosa/cardapiozap-backend/internal/order"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/config"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/logger"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	gatherer prometheus.Gatherer,
	authService authsvc.Service,
	establishmentService establishments.Service,
	catalogService catalog.Service,
	addonService addons.Service,
	cartService cartsvc.Service,
	orderService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/menu/{slug}", controllers.Menu(establishmentService, catalogService, addonService, logg))

		r.Route("/cart/{slug}", func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart.SessionHeader, logg))
			r.Get("/", controllers.CartView(establishmentService, cartService, logg))
			r.Post("/items", controllers.CartAddItem(establishmentService, cartService, logg))
			r.Delete("/items/{name}", controllers.CartRemoveItem(establishmentService, cartService, logg))
			r.Post("/clear", controllers.CartClear(establishmentService, cartService, logg))
			r.Post("/addons", controllers.CartAttachAddon(establishmentService, cartService, logg))
			r.Delete("/addons", controllers.CartDetachAddon(establishmentService, cartService, logg))
		})

		r.Route("/orders/{slug}", func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart.SessionHeader, logg))
			r.Post("/submit", controllers.OrderSubmit(orderService, logg))
		})
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AuthRegister(authService, logg))
		}
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/establishment", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateEstablishment(establishmentService, logg))
			r.Patch("/", controllers.AdminUpdateEstablishment(establishmentService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(catalogService, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Patch("/{id}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(catalogService, logg))
			r.Post("/{id}/block", controllers.AdminBlockProduct(catalogService, logg))
		})

		r.Route("/addons", func(r chi.Router) {
			r.Get("/", controllers.AdminListAddons(addonService, logg))
			r.Post("/", controllers.AdminCreateAddon(addonService, logg))
			r.Patch("/{id}", controllers.AdminUpdateAddon(addonService, logg))
			r.Delete("/{id}", controllers.AdminDeleteAddon(addonService, logg))
			r.Post("/{id}/block", controllers.AdminBlockAddon(addonService, logg))
		})
	})

	return r
}
