package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualHandler_TeesErrorsOnly(t *testing.T) {
	var core, errs bytes.Buffer
	log := slog.New(&dualHandler{
		core: slog.NewTextHandler(&core, &slog.HandlerOptions{Level: slog.LevelDebug}),
		errs: slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	})

	log.Info("summary computed")
	log.With(slog.String("op", "handlers.summary.GetSummary")).Error("failed to compute monthly summary")

	assert.Contains(t, core.String(), "summary computed")
	assert.Contains(t, core.String(), "failed to compute monthly summary")
	assert.NotContains(t, errs.String(), "summary computed")
	assert.Contains(t, errs.String(), "op=handlers.summary.GetSummary")
}

func TestSetupLogger_WritesErrorFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")

	log, closeLog := setupLogger(envProd, path)
	log.Warn("not an error")
	log.Error("storage unreachable")
	closeLog()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "storage unreachable")
	assert.NotContains(t, string(raw), "not an error")
}

func TestCoreHandler_PerEnv(t *testing.T) {
	var buf bytes.Buffer

	slog.New(coreHandler(envDev, &buf)).Debug("debug line")
	assert.Contains(t, buf.String(), `"msg":"debug line"`)

	buf.Reset()
	slog.New(coreHandler(envProd, &buf)).Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	slog.New(coreHandler(envLocal, &buf)).Info("colored")
	assert.Contains(t, buf.String(), "colored")
}
