package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/catalog"
	"github.com/corray333/backend-labs/marketing/internal/config"
	"github.com/corray333/backend-labs/marketing/internal/dal/kafka"
	"github.com/corray333/backend-labs/marketing/internal/dal/postgres"
	"github.com/corray333/backend-labs/marketing/internal/dal/publisher"
	"github.com/corray333/backend-labs/marketing/internal/dal/rabbitmq"
	orderrepo "github.com/corray333/backend-labs/marketing/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/corray333/backend-labs/marketing/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/backend-labs/marketing/internal/metrics"
	"github.com/corray333/backend-labs/marketing/internal/otel"
	"github.com/corray333/backend-labs/marketing/internal/service/serializer"
	"github.com/corray333/backend-labs/marketing/internal/service/services/ordereventsvc"
	"github.com/corray333/backend-labs/marketing/internal/service/services/settingsvc"
	grpctransport "github.com/corray333/backend-labs/marketing/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/marketing/internal/transport/http"
	"github.com/corray333/backend-labs/marketing/internal/worker/outbox"
	"github.com/spf13/viper"
)

const (
	brokerRabbitMQ = "rabbitmq"
	brokerKafka    = "kafka"
)

// broker delivers outbox messages and owns a connection.
type broker interface {
	Publish(ctx context.Context, exchange, routingKey, contentType string, body []byte) error
	Close() error
}

// App represents the application.
type App struct {
	eventSvc       *ordereventsvc.OrderEventService
	httpTransport  *httptransport.HTTPTransport
	grpcTransport  *grpctransport.GRPCTransport
	outboxWorker   *outbox.Worker
	broker         broker
	postgresClient *postgres.Client
	otel           *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	registry := metrics.NewRegistry()

	postgresClient := postgres.MustNewClient(context.Background())
	orderRepo := orderrepo.NewOrderRepository(postgresClient)
	outboxRepo := outboxrepo.NewOutboxRepository(postgresClient)

	b := mustNewBroker(viper.GetString("publisher.broker"))

	ser := serializer.NewSerializer(
		serializer.WithProductMedia(catalog.NewMediaResolver(viper.GetString("catalog.media_base_url"))),
		serializer.WithProductTags(catalog.NewTagResolver()),
		serializer.WithCountryResolver(catalog.NewCountryResolver()),
	)

	gateway := settingsvc.MustNewGateway(
		settingsvc.WithSettings(config.NewSettings(nil)),
	)

	eventPublisher := publisher.NewOutboxPublisher(outboxRepo,
		publisher.WithExchange(viper.GetString("publisher.exchange")),
		publisher.WithRoutingKey(viper.GetString("publisher.routing_key")),
		publisher.WithMaxRetries(viper.GetInt("publisher.max_retries")),
	)

	eventSvc := ordereventsvc.MustNewOrderEventService(
		ordereventsvc.WithOrderRepository(orderRepo),
		ordereventsvc.WithSerializer(ser),
		ordereventsvc.WithPublisher(eventPublisher),
		ordereventsvc.WithSettingsGateway(gateway),
		ordereventsvc.WithMetrics(registry),
	)

	httpTransport := httptransport.NewHTTPTransport(eventSvc,
		httptransport.WithMetricsHandler(registry.Handler()),
	)
	httpTransport.RegisterRoutes()

	return &App{
		eventSvc:       eventSvc,
		httpTransport:  httpTransport,
		grpcTransport:  grpctransport.NewGRPCTransport(eventSvc),
		outboxWorker:   outbox.NewWorker(outboxRepo, b, outbox.WithMetrics(registry)),
		broker:         b,
		postgresClient: postgresClient,
		otel:           otelController,
	}
}

func mustNewBroker(kind string) broker {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", brokerRabbitMQ:
		return rabbitmq.MustNewClient()
	case brokerKafka:
		return kafka.NewClient(viper.GetString("kafka.brokers"))
	default:
		panic(fmt.Sprintf("unknown publisher.broker %q", kind))
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.httpTransport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		if err := a.grpcTransport.Run(); err != nil {
			slog.Error("gRPC server error", "error", err)
		}
	}()

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	go a.outboxWorker.Start(workerCtx)

	<-ctx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpTransport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.grpcTransport.Shutdown(shutdownCtx); err != nil {
		slog.Error("gRPC server shutdown error", "error", err)
	} else {
		slog.Info("gRPC server stopped gracefully")
	}

	a.outboxWorker.Stop()
	cancelWorker()

	if err := a.broker.Close(); err != nil {
		slog.Error("Broker connection close error", "error", err)
	} else {
		slog.Info("Broker connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otel.Shutdown(shutdownCtx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
