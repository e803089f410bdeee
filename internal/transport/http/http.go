package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	getpayload "github.com/corray333/backend-labs/marketing/internal/transport/http/get_payload"
	listpayloads "github.com/corray333/backend-labs/marketing/internal/transport/http/list_payloads"
	sendevent "github.com/corray333/backend-labs/marketing/internal/transport/http/send_event"
	validatesettings "github.com/corray333/backend-labs/marketing/internal/transport/http/validate_settings"
	"github.com/corray333/backend-labs/marketing/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/marketing/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	BuildPayload(ctx context.Context, incrementID string) (event.OrderEventPayload, error)
	SendPurchaseEvent(ctx context.Context, incrementID string) (string, error)
	SendPurchaseEvents(ctx context.Context, incrementIDs []string) ([]string, error)
	ValidateSettings(ctx context.Context) (bool, string)
}

type HTTPTransport struct {
	server         *http.Server
	router         *chi.Mux
	service        service
	metricsHandler http.Handler
}

type option func(*HTTPTransport)

// WithMetricsHandler exposes h under /metrics.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetricsHandler(h http.Handler) option {
	return func(t *HTTPTransport) {
		t.metricsHandler = h
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewHTTPTransport(service service, opts ...option) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	h := &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/payloads", h.listPayloads)
			r.Post("/purchase-events", h.sendPurchaseEvents)
			r.Get("/{incrementId}/payload", h.getPayload)
			r.Post("/{incrementId}/purchase-event", h.sendPurchaseEvent)
		})
		r.Get("/settings/validate", h.validateSettings)
	})

	if h.metricsHandler != nil {
		h.router.Method(http.MethodGet, "/metrics", h.metricsHandler)
	}
}

func (h *HTTPTransport) getPayload(w http.ResponseWriter, r *http.Request) {
	getpayload.GetPayload(w, r, h.service)
}

func (h *HTTPTransport) listPayloads(w http.ResponseWriter, r *http.Request) {
	listpayloads.ListPayloads(w, r, h.service)
}

func (h *HTTPTransport) sendPurchaseEvent(w http.ResponseWriter, r *http.Request) {
	sendevent.SendPurchaseEvent(w, r, h.service)
}

func (h *HTTPTransport) sendPurchaseEvents(w http.ResponseWriter, r *http.Request) {
	sendevent.SendPurchaseEvents(w, r, h.service)
}

func (h *HTTPTransport) validateSettings(w http.ResponseWriter, r *http.Request) {
	validatesettings.ValidateSettings(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
