// Package observability provides logging, metrics, and tracing shared by the
// collector, processor, and notifier binaries.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/oricho123/rentifier/internal/config"
)

type loggerContextKey struct{}

// SetupLogger configures a JSON slog logger tagged with the service name and
// environment, matching every job's structured-log convention.
func SetupLogger(cfg config.Config, job string) *slog.Logger {
	opts := &slog.HandlerOptions{}
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("job", job),
		slog.String("env", cfg.AppEnv),
	)
}

// ContextWithLogger attaches a non-nil logger to the context.
func ContextWithLogger(ctx context.Context, lg *slog.Logger) context.Context {
	if ctx == nil || lg == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, lg)
}

// LoggerFromContext returns the logger stored in the context or the default
// slog logger when none is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if v := ctx.Value(loggerContextKey{}); v != nil {
			if lg, ok := v.(*slog.Logger); ok && lg != nil {
				return lg
			}
		}
	}
	return slog.Default()
}
