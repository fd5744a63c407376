package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/giovaniif/items-api/config"
	"github.com/giovaniif/items-api/domain/item"
	"github.com/giovaniif/items-api/infra/gateways"
	"github.com/giovaniif/items-api/infra/logger"
	"github.com/giovaniif/items-api/infra/loki"
	"github.com/giovaniif/items-api/infra/metrics"
	"github.com/giovaniif/items-api/infra/repositories"
	"github.com/giovaniif/items-api/infra/requestid"
	"github.com/giovaniif/items-api/infra/tracing"
	"github.com/giovaniif/items-api/protocols"
	"github.com/giovaniif/items-api/use_cases/create"
	"github.com/giovaniif/items-api/use_cases/get"
	"github.com/giovaniif/items-api/use_cases/list"
	"github.com/giovaniif/items-api/use_cases/remove"
)

type Dependencies struct {
	ServiceName        string
	Log                *slog.Logger
	ItemRepository     item.Repository
	IdempotencyGateway protocols.IdempotencyGateway
	EventPublisher     protocols.EventPublisher
	// Redis is only used by the health check and may be nil.
	Redis *redis.Client
}

func NewRouter(deps Dependencies) *gin.Engine {
	handlers := &itemHandlers{
		listUseCase:   list.NewList(deps.ItemRepository, deps.Log),
		createUseCase: create.NewCreate(deps.ItemRepository, deps.IdempotencyGateway, deps.EventPublisher, deps.Log),
		getUseCase:    get.NewGet(deps.ItemRepository, deps.Log),
		removeUseCase: remove.NewRemove(deps.ItemRepository, deps.EventPublisher, deps.Log),
		log:           deps.Log,
	}

	r := gin.New()
	r.Use(
		requestid.Middleware(),
		logger.Middleware(deps.Log),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			deps.Log.ErrorContext(c.Request.Context(), "unhandled panic", slog.Any("panic", recovered))
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalServerError})
		}),
		metrics.Middleware,
		tracing.Middleware(deps.ServiceName),
	)

	r.GET("/health", healthHandler(deps.Redis))
	metrics.Register(r)

	r.GET("/items", handlers.listItems)
	r.POST("/items", handlers.createItem)
	r.GET("/items/:id", handlers.getItem)
	r.DELETE("/items/:id", handlers.deleteItem)

	return r
}

func healthHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		redisCheck := "n/a"
		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				status = "degraded"
				redisCheck = "down"
			} else {
				redisCheck = "up"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "checks": gin.H{"redis": redisCheck}})
	}
}

// StartServer wires the configured backends, serves HTTP until SIGINT/SIGTERM and then
// drains in-flight requests before closing the backends.
func StartServer(cfg *config.Config) error {
	var logOutput io.Writer = os.Stdout
	lokiWriter := loki.NewWriter(cfg.LokiURL, cfg.ServiceName, cfg.Env)
	if lokiWriter != nil {
		defer lokiWriter.Close()
		logOutput = io.MultiWriter(os.Stdout, lokiWriter)
	}
	log := logger.New(cfg.Env, logOutput).With(slog.String("service", cfg.ServiceName))
	if cfg.Env == logger.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing disabled", slog.Any("error", err))
	}
	defer shutdownTracing(context.Background())

	var rdb *redis.Client
	var idempotencyGateway protocols.IdempotencyGateway
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis ping failed, using in-memory idempotency", slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
			idempotencyGateway = gateways.NewIdempotencyGatewayMemory(cfg.Redis.IdempotencyTTL)
		} else {
			log.Info("create idempotency: redis", slog.Duration("ttl", cfg.Redis.IdempotencyTTL))
			idempotencyGateway = gateways.NewIdempotencyGatewayRedis(rdb, cfg.Redis.IdempotencyTTL)
		}
	} else {
		log.Info("create idempotency: in-memory (set REDIS_ADDR for redis)")
		idempotencyGateway = gateways.NewIdempotencyGatewayMemory(cfg.Redis.IdempotencyTTL)
	}

	var eventPublisher protocols.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := gateways.NewEventPublisherKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		log.Info("item events: kafka", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	} else {
		eventPublisher = gateways.NewEventPublisherLog(log)
		log.Info("item events: log only (set KAFKA_BROKERS for kafka)")
	}

	router := NewRouter(Dependencies{
		ServiceName:        cfg.ServiceName,
		Log:                log,
		ItemRepository:     repositories.NewItemRepositoryMemory(),
		IdempotencyGateway: idempotencyGateway,
		EventPublisher:     eventPublisher,
		Redis:              rdb,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr(), Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()
	log.Info("items API running", slog.Int("port", cfg.HTTP.Port))
	log.Info(`try: POST /items with {"name": "Test", "price": 10}`)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("items API stopped")
	return nil
}
