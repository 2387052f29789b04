// Command notifier evaluates new listings against saved filters and delivers
// matches over the chat transport, on its own internal schedule, exposing
// the shared ops HTTP surface for the lifetime of the process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oricho123/rentifier/internal/adapter/chat/telegram"
	"github.com/oricho123/rentifier/internal/adapter/events"
	httpserver "github.com/oricho123/rentifier/internal/adapter/httpserver"
	"github.com/oricho123/rentifier/internal/adapter/lock"
	"github.com/oricho123/rentifier/internal/adapter/observability"
	"github.com/oricho123/rentifier/internal/adapter/repo/postgres"
	"github.com/oricho123/rentifier/internal/app"
	"github.com/oricho123/rentifier/internal/config"
	"github.com/oricho123/rentifier/internal/domain"
	"github.com/oricho123/rentifier/internal/usecase"
)

const jobName = "notifier"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg, jobName)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = observability.ContextWithLogger(ctx, logger)

	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.ApplyEmbeddedSchema(ctx, pool); err != nil {
		slog.Error("schema apply failed", slog.Any("error", err))
		os.Exit(1)
	}

	listings := postgres.NewListingRepo(pool)
	filters := postgres.NewFilterRepo(pool)
	notifications := postgres.NewNotificationRepo(pool)
	workerStates := postgres.NewWorkerStateRepo(pool)

	var transport domain.ChatTransport
	if cfg.TelegramBotToken != "" {
		tgClient, err := telegram.New(cfg.TelegramBotToken)
		if err != nil {
			slog.Error("telegram client init failed", slog.Any("error", err))
			os.Exit(1)
		}
		transport = tgClient
	} else {
		slog.Warn("TELEGRAM_BOT_TOKEN not set; notifier will run with no chat transport")
		transport = noopTransport{}
	}

	locker := buildLocker(cfg)
	publisher := buildPublisher(cfg)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	svc := usecase.NewNotifierService(listings, filters, notifications, workerStates, transport, cfg.TelegramParseMode, cfg.NotifierDefaultWindow)
	svc.Publisher = publisher

	var lastRun atomic.Pointer[usecase.NotifierSummary]

	runOnce := func(ctx context.Context) (any, error) {
		runCtx, cancel := context.WithTimeout(ctx, cfg.RunDeadline)
		defer cancel()

		release, ok, lockErr := locker.TryAcquire(runCtx, jobName, cfg.RunDeadline)
		if lockErr != nil {
			slog.Warn("lock acquire error, proceeding lock-free", slog.Any("error", lockErr))
		}
		if !ok {
			slog.Info("notifier run skipped: previous run still in flight")
			return usecase.NotifierSummary{}, nil
		}
		defer release(context.Background())

		start := time.Now()
		summary, runErr := svc.Run(runCtx)
		status := "ok"
		if runErr != nil {
			status = "error"
		}
		observability.RecordJobRun(jobName, status, time.Since(start).Seconds())
		lastRun.Store(&summary)
		publisher.Publish(ctx, "notifier.run_complete", map[string]any{
			"sent": summary.Sent, "failed": summary.Failed,
		})
		return summary, runErr
	}

	var adminUser, adminPassHash string
	if cfg.AdminEnabled() {
		adminUser, adminPassHash = cfg.AdminUsername, cfg.AdminPassword
	}

	srv := &httpserver.Server{
		JobName: jobName,
		DBCheck: func(ctx context.Context) error {
			return pool.Ping(ctx)
		},
		Status: func(context.Context) (any, error) {
			if s := lastRun.Load(); s != nil {
				return s, nil
			}
			return usecase.NotifierSummary{}, nil
		},
		Trigger:           runOnce,
		AdminUsername:     adminUser,
		AdminPasswordHash: adminPassHash,
	}

	router := app.BuildOpsRouter(cfg, srv)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("ops http server starting", slog.Int("port", cfg.Port))
		errCh <- httpSrv.ListenAndServe()
	}()

	ticker := time.NewTicker(cfg.NotifierInterval)
	defer ticker.Stop()

	if _, err := runOnce(ctx); err != nil {
		slog.Error("notifier run failed", slog.Any("error", err))
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("ops http server error", slog.Any("error", err))
			}
			break loop
		case <-ticker.C:
			if _, err := runOnce(ctx); err != nil {
				slog.Error("notifier run failed", slog.Any("error", err))
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}

// noopTransport lets the notifier start (and serve its ops surface) without
// a configured bot token, e.g. in local development; every send fails
// non-retryably so notifications simply accumulate undelivered.
type noopTransport struct{}

func (noopTransport) SendMessage(domain.Context, string, string, string) domain.DeliveryResult {
	return domain.DeliveryResult{Success: false, Err: errors.New("no chat transport configured"), Retryable: false}
}

func (noopTransport) SendPhoto(domain.Context, string, string, string, string) domain.DeliveryResult {
	return domain.DeliveryResult{Success: false, Err: errors.New("no chat transport configured"), Retryable: false}
}

func buildLocker(cfg config.Config) lock.Locker {
	if !cfg.LockEnabled() {
		return lock.NoopLocker{}
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL, falling back to no-op lock", slog.Any("error", err))
		return lock.NoopLocker{}
	}
	return lock.NewRedisLocker(redis.NewClient(opts))
}

func buildPublisher(cfg config.Config) usecase.EventPublisher {
	if !cfg.EventsEnabled() {
		return usecase.NoopPublisher{}
	}
	pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
	if err != nil {
		slog.Error("kafka publisher init failed, falling back to no-op", slog.Any("error", err))
		return usecase.NoopPublisher{}
	}
	return pub
}
