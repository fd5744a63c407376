package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, name := range []string{"APP_ENV", "PORT", "REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_TOPIC", "IDEMPOTENCY_TTL", "LOKI_URL", "OTEL_EXPORTER_OTLP_ENDPOINT", "SERVICE_NAME", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Env != "local" || cfg.ServiceName != "items" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTP.Addr() != ":3000" || cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Redis.IdempotencyTTL != 24*time.Hour || cfg.Kafka.Topic != "items" {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Redis, cfg.Kafka)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("IDEMPOTENCY_TTL", "1h")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Env != "prod" || cfg.HTTP.Port != 8080 || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, []string{"kafka-1:9092", "kafka-2:9092"}) {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.IdempotencyTTL != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", cfg.Redis.IdempotencyTTL)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for out of range port")
	}
}
