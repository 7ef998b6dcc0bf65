// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"payroll-assistant/internal/api"
	"payroll-assistant/internal/assistant/chat"
	"payroll-assistant/internal/assistant/query"
	"payroll-assistant/internal/common/auth"
	"payroll-assistant/internal/common/camunda"
	"payroll-assistant/internal/common/config"
	"payroll-assistant/internal/common/database"
	"payroll-assistant/internal/common/logger"
	"payroll-assistant/internal/common/observability"
	"payroll-assistant/internal/storage/cache"
	"payroll-assistant/internal/storage/postgres"
	hcm "payroll-assistant/internal/workers/chat/handle-chat-message"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}
		if i == maxRetries-1 {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
			zap.Error(err),
			zap.Int("attempt", i+1),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("nextRetryIn", delay),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assistant-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting assistant server",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := retryWithBackoff(ctx, func() error { return pg.Ping(ctx) }, 15, 2*time.Second, zapLog, "PostgreSQL connection"); err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, pg.GetDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	zapLog.Info("PostgreSQL connected successfully")

	store := postgres.NewStore(pg.GetDB())
	var payroll query.PayrollReader = store

	loc, err := cfg.Chat.Location()
	if err != nil {
		return err
	}
	clock := func() time.Time { return time.Now().In(loc) }

	// --- Redis (optional) ---
	if rc := database.NewRedis(cfg.Database.Redis); rc != nil {
		defer rc.Close()
		ttl := time.Duration(cfg.Chat.CacheTTL) * time.Second
		switch {
		case ttl == 0:
			zapLog.Info("payroll cache disabled: chat.cache_ttl is 0")
		default:
			if err := rc.Ping(ctx); err != nil {
				zapLog.Warn("redis unreachable, payroll cache will fall through to postgres", zap.Error(err))
			}
			payroll = cache.NewPayrollCache(store, rc.GetClient(), ttl, log, cache.WithClock(clock))
			zapLog.Info("payroll cache enabled", zap.Duration("ttl", ttl))
		}
	}

	// --- Observability ---
	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	// --- Assistant core ---
	assistant := chat.New(payroll, store, store, chat.Config{
		QueryTimeout:   config.GetDuration(cfg.Chat.QueryTimeout),
		HistoryTimeout: config.GetDuration(cfg.Chat.HistoryTimeout),
		OrderLimit:     cfg.Chat.OrderLimit,
	}, log,
		chat.WithClock(clock),
		chat.WithRecorder(obs),
	)

	jwtMgr, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, time.Duration(cfg.Auth.TokenLifetime)*time.Minute)
	if err != nil {
		return err
	}

	server := api.New(cfg.Server, api.Deps{
		Chat:         assistant,
		History:      store,
		JWT:          jwtMgr,
		DB:           pg,
		Logger:       log,
		HistoryLimit: cfg.Chat.HistoryLimit,
	})

	// --- Zeebe workers (optional) ---
	var workers *camunda.Manager
	if cfg.Camunda.Enabled {
		zc, err := camunda.NewClient(ctx, camunda.ConfigFromApp(cfg.Camunda))
		if err != nil {
			return err
		}
		defer zc.Close()

		handler, err := hcm.NewHandler(hcm.HandlerOptions{
			AppConfig: cfg,
			Assistant: assistant,
			Logger:    log,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s handler: %w", hcm.TaskType, err)
		}

		workers = camunda.NewManager(zc.GetClient(), log)
		workers.Add(handler)
		workers.Start()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("shutting down")

		if workers != nil {
			workers.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	zapLog.Info("assistant server stopped")
	return nil
}
