package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecocraftid/ecocraft-backend/api/controllers"
	"github.com/ecocraftid/ecocraft-backend/api/middleware"
	cartsvc "github.com/ecocraftid/ecocraft-backend/internal/cart"
	checkoutsvc "github.com/ecocraftid/ecocraft-backend/internal/checkout"
	factsvc "github.com/ecocraftid/ecocraft-backend/internal/facts"
	favoritesvc "github.com/ecocraftid/ecocraft-backend/internal/favorites"
	ordersvc "github.com/ecocraftid/ecocraft-backend/internal/orders"
	productsvc "github.com/ecocraftid/ecocraft-backend/internal/products"
	profilesvc "github.com/ecocraftid/ecocraft-backend/internal/profile"
	"github.com/ecocraftid/ecocraft-backend/pkg/config"
	"github.com/ecocraftid/ecocraft-backend/pkg/db"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Products  productsvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Sessions  checkoutsvc.SessionService
	Facts     *factsvc.Client
	Favorites favoritesvc.Service
	Profile   profilesvc.Service
	Orders    ordersvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	svcs Services,
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

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog and facts need no client identity.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(svcs.Products, logg))
			r.Get("/facets", controllers.ProductsFacets(svcs.Products, logg))
			r.Get("/{productId}", controllers.ProductsGet(svcs.Products, logg))
		})
		r.Get("/facts", controllers.FactsList(svcs.Facts, logg))

		// Everything below operates on per-client persisted state.
		r.Group(func(r chi.Router) {
			r.Use(middleware.ClientContext(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(svcs.Cart, logg))
				r.Delete("/", controllers.CartClear(svcs.Cart, logg))
				r.Get("/summary", controllers.CartSummary(svcs.Cart, logg))
				r.Post("/items", controllers.CartAddItem(svcs.Cart, svcs.Products, logg))
				r.Route("/items/{productId}", func(r chi.Router) {
					r.Delete("/", controllers.CartRemoveItem(svcs.Cart, logg))
					r.Patch("/", controllers.CartUpdateQuantity(svcs.Cart, logg))
					r.Post("/increment", controllers.CartIncrement(svcs.Cart, logg))
					r.Post("/decrement", controllers.CartDecrement(svcs.Cart, logg))
				})
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/begin", controllers.CheckoutBegin(svcs.Checkout, logg))
				r.Post("/advance", controllers.CheckoutAdvance(svcs.Checkout, logg))
				r.Post("/place-order", controllers.CheckoutPlaceOrder(svcs.Checkout, logg))
				r.Route("/session", func(r chi.Router) {
					r.Get("/", controllers.CheckoutSession(svcs.Sessions, logg))
					r.Post("/", controllers.CheckoutSave(svcs.Sessions, logg))
					r.Post("/resume", controllers.CheckoutResume(svcs.Sessions, logg))
					r.Delete("/", controllers.CheckoutDismiss(svcs.Sessions, logg))
				})
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesList(svcs.Favorites, logg))
				r.Post("/toggle", controllers.FavoritesToggle(svcs.Favorites, logg))
				r.Delete("/", controllers.FavoritesClear(svcs.Favorites, logg))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(svcs.Profile, logg))
				r.Put("/", controllers.ProfileUpdate(svcs.Profile, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.OrdersGet(svcs.Orders, logg))
			})
		})
	})

	return r
}
