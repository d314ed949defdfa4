package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fixnest/fixnest-backend/api/controllers"
	"github.com/fixnest/fixnest-backend/api/middleware"
	authsvc "github.com/fixnest/fixnest-backend/internal/auth"
	blogsvc "github.com/fixnest/fixnest-backend/internal/blogs"
	bookingsvc "github.com/fixnest/fixnest-backend/internal/booking"
	cartsvc "github.com/fixnest/fixnest-backend/internal/cart"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	locsvc "github.com/fixnest/fixnest-backend/internal/locationpages"
	"github.com/fixnest/fixnest-backend/internal/media"
	"github.com/fixnest/fixnest-backend/internal/notifications"
	reviewsvc "github.com/fixnest/fixnest-backend/internal/reviews"
	"github.com/fixnest/fixnest-backend/pkg/auth/session"
	"github.com/fixnest/fixnest-backend/pkg/config"
	"github.com/fixnest/fixnest-backend/pkg/db"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/metrics"
	"github.com/fixnest/fixnest-backend/pkg/redis"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	HTTPMetrics  *metrics.HTTPMetrics
	PromRegistry *prometheus.Registry

	Database db.Pinger
	Cache    redis.Pinger
	Sessions session.AccessSessionChecker

	Auth          authsvc.Service
	Catalog       catalog.Service
	Reviews       reviewsvc.Service
	Blogs         blogsvc.Service
	LocationPages locsvc.Service
	Cart          cartsvc.Service
	Booking       bookingsvc.Service
	Notifications *notifications.Service
	Media         *media.Service
}

// NewRouter assembles the public storefront API, the session-scoped cart and
// booking endpoints, and the admin surface behind bearer auth.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Database, deps.Cache, logg))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/services", controllers.ServicesList(deps.Catalog, logg))
		r.Get("/services/{slug}", controllers.ServicePage(deps.Catalog, logg))
		r.Get("/services/{serviceID}/reviews", controllers.ReviewsList(deps.Reviews, logg))
		r.Post("/reviews", controllers.ReviewCreate(deps.Reviews, logg))

		r.Get("/blogs", controllers.BlogsList(deps.Blogs, logg))
		r.Get("/blogs/{slug}", controllers.BlogBySlug(deps.Blogs, logg))
		r.Get("/location-pages", controllers.LocationPagesList(deps.LocationPages, logg))
		r.Get("/location-pages/{slug}", controllers.LocationPageBySlug(deps.LocationPages, logg))

		if deps.Notifications != nil {
			r.Post("/contact", controllers.ContactSubmit(deps.Notifications, logg))
			r.Post("/complaint", controllers.ComplaintSubmit(deps.Notifications, logg))
		}

		// Everything below is keyed by the visitor's cart session token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, logg))
				r.Post("/items", controllers.CartAdd(deps.Cart, logg))
				r.Put("/items", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Delete("/items", controllers.CartRemove(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.Route("/booking", func(r chi.Router) {
				r.Get("/", controllers.BookingState(deps.Booking, logg))
				r.Post("/advance", controllers.BookingAdvance(deps.Booking, logg))
				r.Post("/back", controllers.BookingBack(deps.Booking, logg))
				r.Post("/close", controllers.BookingClose(deps.Booking, logg))
				r.Get("/slots", controllers.BookingSlots(deps.Booking, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(deps.Auth, logg))
		r.Post("/auth/refresh", controllers.AdminRefresh(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.AdminLogout(deps.Auth, logg))

			r.Route("/services", func(r chi.Router) {
				r.Get("/", controllers.AdminServicesList(deps.Catalog, logg))
				r.Post("/", controllers.AdminServiceCreate(deps.Catalog, logg))
				r.Get("/{serviceID}", controllers.AdminServiceGet(deps.Catalog, logg))
				r.Put("/{serviceID}", controllers.AdminServiceUpdate(deps.Catalog, logg))
				r.Delete("/{serviceID}", controllers.AdminServiceDelete(deps.Catalog, logg))

				r.Post("/{serviceID}/sub-services", controllers.AdminSubServiceCreate(deps.Catalog, logg))
				r.Put("/{serviceID}/sub-services/{subServiceID}", controllers.AdminSubServiceUpdate(deps.Catalog, logg))
				r.Delete("/{serviceID}/sub-services/{subServiceID}", controllers.AdminSubServiceDelete(deps.Catalog, logg))
			})

			r.Route("/blogs", func(r chi.Router) {
				r.Get("/", controllers.AdminBlogsList(deps.Blogs, logg))
				r.Post("/", controllers.AdminBlogCreate(deps.Blogs, logg))
				r.Get("/{blogID}", controllers.AdminBlogGet(deps.Blogs, logg))
				r.Put("/{blogID}", controllers.AdminBlogUpdate(deps.Blogs, logg))
				r.Delete("/{blogID}", controllers.AdminBlogDelete(deps.Blogs, logg))
			})

			r.Route("/location-pages", func(r chi.Router) {
				r.Get("/", controllers.AdminLocationPagesList(deps.LocationPages, logg))
				r.Post("/", controllers.AdminLocationPageCreate(deps.LocationPages, logg))
				r.Get("/{pageID}", controllers.AdminLocationPageGet(deps.LocationPages, logg))
				r.Put("/{pageID}", controllers.AdminLocationPageUpdate(deps.LocationPages, logg))
				r.Delete("/{pageID}", controllers.AdminLocationPageDelete(deps.LocationPages, logg))
			})

			r.Get("/reviews", controllers.AdminReviewsList(deps.Reviews, logg))
			r.Delete("/reviews/{reviewID}", controllers.ReviewDelete(deps.Reviews, logg))
			r.Get("/bookings", controllers.AdminBookingsList(deps.Booking, logg))

			if deps.Media != nil {
				r.Post("/media", controllers.MediaUpload(deps.Media, cfg.Media.MaxUploadBytes, logg))
			}
		})
	})

	return r
}
