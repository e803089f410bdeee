package grpctransport

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// HealthServiceName is the service name reported alongside the overall status.
const HealthServiceName = "marketing.v1.PurchaseEvents"

// service is an interface for the service layer.
type service interface {
	ValidateSettings(ctx context.Context) (bool, string)
}

// GRPCTransport serves the standard health protocol. The status follows
// the outcome of the platform settings check.
type GRPCTransport struct {
	server         *grpc.Server
	listener       net.Listener
	service        service
	health         *health.Server
	healthInterval time.Duration
	stopCh         chan struct{}
	stopOnce       sync.Once
}

// NewGRPCTransport creates a new GRPCTransport.
func NewGRPCTransport(service service) *GRPCTransport {
	listener, err := net.Listen("tcp", ":"+viper.GetString("server.grpc.port"))
	if err != nil {
		panic(err)
	}

	return newTransport(service, listener)
}

func newTransport(service service, listener net.Listener) *GRPCTransport {
	interval := time.Duration(viper.GetInt("server.grpc.health_interval_seconds")) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	return &GRPCTransport{
		server:         newGRPCServer(),
		listener:       listener,
		service:        service,
		health:         health.NewServer(),
		healthInterval: interval,
		stopCh:         make(chan struct{}),
	}
}

// Run starts the gRPC server.
func (g *GRPCTransport) Run() error {
	g.RegisterServices()
	g.RefreshHealth(context.Background())
	go g.watchHealth()

	slog.Info("Starting gRPC server", "address", g.listener.Addr().String())

	return g.server.Serve(g.listener)
}

// Shutdown gracefully shuts down the gRPC server.
func (g *GRPCTransport) Shutdown(ctx context.Context) error {
	g.stopOnce.Do(func() { close(g.stopCh) })
	g.health.Shutdown()

	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		g.server.Stop()

		return ctx.Err()
	}
}

// RegisterServices registers the gRPC services.
func (g *GRPCTransport) RegisterServices() {
	healthpb.RegisterHealthServer(g.server, g.health)
}

// RefreshHealth validates the settings and publishes the resulting status.
func (g *GRPCTransport) RefreshHealth(ctx context.Context) {
	ok, msg := g.service.ValidateSettings(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if !ok {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		slog.Warn("Settings validation failed, reporting NOT_SERVING", "message", msg)
	}
	g.health.SetServingStatus("", status)
	g.health.SetServingStatus(HealthServiceName, status)
}

func (g *GRPCTransport) watchHealth() {
	ticker := time.NewTicker(g.healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), g.healthInterval)
			g.RefreshHealth(ctx)
			cancel()
		}
	}
}

// newGRPCServer creates a new gRPC server with keepalive settings.
func newGRPCServer() *grpc.Server {
	keepaliveParams := keepalive.ServerParameters{
		MaxConnectionIdle: time.Duration(
			viper.GetInt("server.grpc.keepalive.max_connection_idle"),
		) * time.Minute,
		MaxConnectionAge: time.Duration(
			viper.GetInt("server.grpc.keepalive.max_connection_age"),
		) * time.Minute,
		MaxConnectionAgeGrace: time.Duration(
			viper.GetInt("server.grpc.keepalive.max_connection_age_grace"),
		) * time.Second,
		Time: time.Duration(
			viper.GetInt("server.grpc.keepalive.time"),
		) * time.Second,
		Timeout: time.Duration(
			viper.GetInt("server.grpc.keepalive.timeout"),
		) * time.Second,
	}

	keepalivePolicy := keepalive.EnforcementPolicy{
		MinTime: time.Duration(
			viper.GetInt("server.grpc.keepalive.min_time"),
		) * time.Second,
		PermitWithoutStream: viper.GetBool("server.grpc.keepalive.permit_without_stream"),
	}

	opts := []grpc.ServerOption{
		grpc.KeepaliveParams(keepaliveParams),
		grpc.KeepaliveEnforcementPolicy(keepalivePolicy),
	}

	return grpc.NewServer(opts...)
}
