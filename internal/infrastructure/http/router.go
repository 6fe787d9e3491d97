package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/infrastructure/http/handlers"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	HealthHandler      *handlers.HealthHandler
	UsersHandler       *handlers.UsersHandler
	CompaniesHandler   *handlers.CompaniesHandler
	ItemsHandler       *handlers.ItemsHandler
	SupplyLinksHandler *handlers.SupplyLinksHandler
	MembershipsHandler *handlers.MembershipsHandler
	OrdersHandler      *handlers.OrdersHandler
	RequireJWT         func(http.Handler) http.Handler
	Log                zerolog.Logger
	Secure             func(http.Handler) http.Handler
	CORS               func(http.Handler) http.Handler
	IPRateLimit        func(http.Handler) http.Handler
	UserRateLimit      func(http.Handler) http.Handler
	Metrics            bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// Everything below requires a signed-in user.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		if cfg.UserRateLimit != nil {
			r.Use(cfg.UserRateLimit)
		}

		if cfg.UsersHandler != nil {
			r.Route("/users", func(r chi.Router) {
				r.Get("/me", cfg.UsersHandler.Me)
				r.Patch("/me", cfg.UsersHandler.UpdateMe)
			})
		}

		r.Post("/companies", cfg.CompaniesHandler.Create)
		r.Route("/companies/{companyID}", func(r chi.Router) {
			r.Get("/", cfg.CompaniesHandler.Show)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", cfg.ItemsHandler.List)
				r.Post("/", cfg.ItemsHandler.Create)
				r.Get("/{itemID}", cfg.ItemsHandler.Show)
				r.Patch("/{itemID}", cfg.ItemsHandler.Update)
				r.Delete("/{itemID}", cfg.ItemsHandler.Delete)
			})

			r.Route("/supply-links", func(r chi.Router) {
				r.Post("/", cfg.SupplyLinksHandler.Create)
				r.Patch("/{linkID}", cfg.SupplyLinksHandler.Update)
				r.Delete("/{linkID}", cfg.SupplyLinksHandler.Delete)
			})

			r.Route("/memberships", func(r chi.Router) {
				r.Post("/", cfg.MembershipsHandler.Create)
				r.Patch("/{membershipID}", cfg.MembershipsHandler.Update)
				r.Delete("/{membershipID}", cfg.MembershipsHandler.Delete)
			})

			if cfg.OrdersHandler != nil {
				r.Route("/orders", func(r chi.Router) {
					r.Get("/", cfg.OrdersHandler.List)
					r.Post("/", cfg.OrdersHandler.Place)
					r.Post("/{orderID}/accept", cfg.OrdersHandler.Accept)
				})
			}
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
