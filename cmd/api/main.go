package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/codequest/streak-engine/internal/adapters/cache"
	"github.com/codequest/streak-engine/internal/adapters/events"
	adapterHTTP "github.com/codequest/streak-engine/internal/adapters/handler/http"
	"github.com/codequest/streak-engine/internal/adapters/repository"
	"github.com/codequest/streak-engine/internal/config"
	"github.com/codequest/streak-engine/internal/core/domain"
	"github.com/codequest/streak-engine/internal/core/services"
	"github.com/codequest/streak-engine/internal/core/workers"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	router, cleanup, err := buildApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Streak Engine running on http://localhost:%s (backend=%s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
		return
	}

	log.Println("Server stopped gracefully.")
}

type backend struct {
	kv      domain.KeyValueStore
	players domain.PlayerRepository
	checks  map[string]adapterHTTP.HealthCheck
}

// buildApp wires the configured backends into a router. cleanup releases
// every connection opened along the way.
func buildApp(ctx context.Context, cfg config.Config) (*gin.Engine, func(), error) {
	startTime := time.Now()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var rdb *redis.Client
	if cfg.RedisEnabled {
		log.Println("Connecting to Redis...")

		client, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			URL:      cfg.Redis.URL,
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to redis: %w", err)
		}
		rdb = client
		closers = append(closers, func() { _ = rdb.Close() })

		log.Println("Redis connected successfully.")
	}

	be, closeBackend, err := openBackend(ctx, cfg, rdb)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	if closeBackend != nil {
		closers = append(closers, closeBackend)
	}

	players := be.players
	if rdb != nil {
		players = repository.NewCachedPlayerRepository(players, rdb)
		be.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var publisher domain.StreakEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		closers = append(closers, func() {
			if err := kafka.Close(); err != nil {
				log.Printf("[EVENTS] Failed to close kafka writer: %v", err)
			}
		})

		dispatcher := workers.NewEventDispatcher(kafka, cfg.EventQueueSize)
		dispatchCtx, stopDispatch := context.WithCancel(ctx)
		dispatcher.Start(dispatchCtx)
		closers = append(closers, func() {
			stopDispatch()
			<-dispatcher.Done()
		})

		publisher = dispatcher
		log.Printf("Publishing streak events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, players)
	authService := services.NewAuthService(players, tokenService)
	streakService := services.NewStreakService(func(playerID string) domain.KeyValueStore {
		return repository.NewNamespacedKeyValueStore(be.kv, repository.PlayerStreakPrefix(playerID))
	}, publisher, nil)
	answerService := services.NewAnswerService(streakService)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService.TokenDuration()),
		StreakHandler:   adapterHTTP.NewStreakHandler(streakService, cfg.Timezone),
		AnswerHandler:   adapterHTTP.NewAnswerHandler(answerService, cfg.Timezone),
		Tokens:          tokenService,
		Redis:           rdb,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
		HealthChecks:    be.checks,
		StartTime:       startTime,
	})

	return router, cleanup, nil
}

func openBackend(ctx context.Context, cfg config.Config, rdb *redis.Client) (backend, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		// Redis holds streaks only; accounts do not survive a restart.
		log.Println("Warning: redis backend keeps player accounts in memory")

		kv := repository.NewRedisKeyValueStore(rdb)
		return backend{
			kv:      kv,
			players: repository.NewInMemoryPlayerRepository(),
			checks:  map[string]adapterHTTP.HealthCheck{"store": kv.Ping},
		}, nil, nil

	case config.BackendPostgres:
		log.Println("Connecting to database...")

		db, err := sqlx.Connect(cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			return backend{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := repository.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return backend{}, nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		log.Println("Database connected successfully.")

		kv := repository.NewPostgresKeyValueStore(db)
		return backend{
			kv:      kv,
			players: repository.NewPostgresPlayerRepository(db),
			checks:  map[string]adapterHTTP.HealthCheck{"database": kv.Ping},
		}, func() { _ = db.Close() }, nil

	default:
		kv := repository.NewInMemoryKeyValueStore()
		return backend{
			kv:      kv,
			players: repository.NewInMemoryPlayerRepository(),
			checks:  map[string]adapterHTTP.HealthCheck{"store": kv.Ping},
		}, nil, nil
	}
}
