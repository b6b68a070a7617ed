package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// dualHandler writes every record to core and additionally tees errors to
// errs. A failure to write errs never fails the core write.
type dualHandler struct {
	core slog.Handler
	errs slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.core.Enabled(ctx, lvl) || h.errs.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.core.Enabled(ctx, r.Level) {
		err = h.core.Handle(ctx, r)
	}

	if r.Level >= slog.LevelError && h.errs.Enabled(ctx, r.Level) {
		_ = h.errs.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{core: h.core.WithAttrs(attrs), errs: h.errs.WithAttrs(attrs)}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{core: h.core.WithGroup(name), errs: h.errs.WithGroup(name)}
}

func coreHandler(env string, out io.Writer) slog.Handler {
	switch env {
	case envLocal:
		return tint.NewHandler(out, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	case envDev:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
}

// setupLogger builds the process logger. Errors are also appended to
// errorLogPath when it can be opened; the returned func closes that file.
func setupLogger(env, errorLogPath string) (*slog.Logger, func()) {
	core := coreHandler(env, os.Stdout)

	if errorLogPath == "" {
		return slog.New(core), func() {}
	}

	errorFile, err := os.OpenFile(errorLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(core)
		logger.Warn("cannot open error log file", slog.String("path", errorLogPath), slog.String("error", err.Error()))
		return logger, func() {}
	}

	handler := &dualHandler{
		core: core,
		errs: slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError}),
	}

	return slog.New(handler), func() { _ = errorFile.Close() }
}
