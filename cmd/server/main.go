package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/willowbank/ledger/internal/adapter/http"
	"github.com/willowbank/ledger/internal/adapter/http/handler"
	postgresRepo "github.com/willowbank/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/willowbank/ledger/internal/adapter/repository/redis"
	"github.com/willowbank/ledger/internal/infrastructure/config"
	"github.com/willowbank/ledger/internal/infrastructure/logger"
	"github.com/willowbank/ledger/internal/infrastructure/metrics"
	"github.com/willowbank/ledger/internal/infrastructure/notifier"
	"github.com/willowbank/ledger/internal/infrastructure/postgres"
	"github.com/willowbank/ledger/internal/infrastructure/redis"
	"github.com/willowbank/ledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	retrier := postgresRepo.NewRetrier()

	balanceNotifier := notifier.NewRedisNotifier(redisClient, cfg.NotifyChannel)

	accountUC := usecase.NewAccountUseCase(accountRepo)
	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, balanceNotifier)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, movementRepo, balanceNotifier).
		WithRetrier(retrier)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	m := metrics.New()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC, m),
		MovementHandler:  handler.NewMovementHandler(movementUC, m),
		TransferHandler:  handler.NewTransferHandler(transferUC, m),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           log.Logger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimit:        cfg.RateLimit,
		RateBurst:        cfg.RateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
