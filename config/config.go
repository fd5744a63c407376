package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string `env:"APP_ENV" env-default:"local" env-description:"local, dev or prod"`
	ServiceName  string `env:"SERVICE_NAME" env-default:"items"`
	HTTP         HTTPConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	LokiURL      string `env:"LOKI_URL"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type HTTPConfig struct {
	Port            int           `env:"PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `env:"KAFKA_TOPIC" env-default:"items"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func LoadConfig() (*Config, error) {
	const op = "config.LoadConfig"

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("%s: invalid PORT %d", op, cfg.HTTP.Port)
	}
	return &cfg, nil
}

// MustLoad is LoadConfig for process startup, where a bad environment is fatal.
func MustLoad() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
