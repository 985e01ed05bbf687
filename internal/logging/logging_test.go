package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/lcanalyzer/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, ParseLevel("debug"), slog.LevelDebug)
	assert.Equal(t, ParseLevel("INFO"), slog.LevelInfo)
	assert.Equal(t, ParseLevel("warn"), slog.LevelWarn)
	assert.Equal(t, ParseLevel("error"), slog.LevelError)
	assert.Equal(t, ParseLevel("bogus"), slog.LevelInfo)
}

func TestSetupLoggerConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := setupLogger(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "band", "g")

	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "hidden"))
	assert.Assert(t, is.Contains(out, "band=g"))
}

func TestSetupLoggerJSONConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := setupLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)
	defer closeFn()

	logger.Info("stats computed", "column", "psfMag")

	var entry map[string]interface{}
	assert.NilError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, entry["column"], "psfMag")
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcanalyzer.log")
	var buf bytes.Buffer
	logger, closeFn := setupLogger(config.LogConfig{Level: "debug", Format: "text", File: path}, &buf)

	logger.Debug("to both", "run_id", "abc")
	closeFn()

	content, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(content), `"run_id":"abc"`))
	assert.Assert(t, is.Contains(buf.String(), "run_id=abc"))
}

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerRespectsPerHandlerLevels(t *testing.T) {
	debug := &recordingHandler{level: slog.LevelDebug}
	errorsOnly := &recordingHandler{level: slog.LevelError}
	logger := slog.New(&multiHandler{handlers: []slog.Handler{debug, errorsOnly}})

	logger.Debug("d")
	logger.Error("e")

	assert.Equal(t, len(debug.records), 2)
	assert.Equal(t, len(errorsOnly.records), 1)
}
