package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/marketing/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}
	SetDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/marketing-svc")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

// SetDefaults registers fallback values for every tunable the service reads.
func SetDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("server.grpc.port", "9090")
	viper.SetDefault("postgres.migrations_path", "./migrations")
	viper.SetDefault("catalog.media_base_url", "http://localhost/media")
	viper.SetDefault("publisher.broker", "rabbitmq")
	viper.SetDefault("publisher.exchange", "marketing.events")
	viper.SetDefault("publisher.routing_key", "order.purchase")
	viper.SetDefault("publisher.max_retries", 5)
	viper.SetDefault("publisher.outbox.poll_interval_seconds", 10)
	viper.SetDefault("publisher.outbox.batch_size", 100)
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("jaeger.endpoint", "http://jaeger:14268/api/traces")
	viper.SetDefault("marketing.service.api_url", "https://api.sailthru.com")
}

func SetupLogger() {
	handler := logger.NewHandler(&slog.HandlerOptions{
		Level: ParseLevel(viper.GetString("log.level")),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}

// ParseLevel maps a textual level to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}

	return level
}
