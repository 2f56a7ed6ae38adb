package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
	RequestTimeout time.Duration
	Gatherer       prometheus.Gatherer
	// HealthCheck reports whether dependencies are reachable. Nil means always healthy.
	HealthCheck func(ctx context.Context) error

	Registration *controllers.RegistrationController
	Payment      *controllers.PaymentController
	Approval     *controllers.ApprovalController
	Capacity     *controllers.CapacityController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", healthHandler(cfg.HealthCheck))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		r.Use(middleware.RequireAuth(cfg.Verifier, cfg.Logger))

		// Registrant
		r.Post("/events/{eventID}/register", cfg.Registration.Register)
		r.Get("/events/{eventID}/registration-status", cfg.Registration.GetRegistrationStatus)
		r.Post("/registrations/{registrationID}/payment-claims", cfg.Registration.ClaimScanPayment)
		r.Post("/payments/verify", cfg.Payment.VerifyPayment)

		// Capacity
		r.Get("/events/{eventID}/capacity", cfg.Capacity.GetCapacity)

		// Organizer
		r.Patch("/registrations/{registrationID}", cfg.Approval.UpdateRegistrationStatus)
		r.Post("/registrations/{registrationID}/payment-confirmations", cfg.Payment.ConfirmManualPayment)
		r.Patch("/events/{eventID}/registration-window", cfg.Capacity.SetRegistrationWindow)
		r.Get("/events/{eventID}/registrations", cfg.Capacity.ListRegistrations)
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, "unavailable", "dependency check failed")
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
