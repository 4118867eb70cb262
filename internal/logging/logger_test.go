package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photosorter/internal/config"
	"photosorter/internal/failure"
	"photosorter/internal/logging"
)

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(string(content), "INFO - message without caller") {
		t.Fatalf("unexpected header: %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller", logging.String("target_path", "/t/2023/3/5/a.jpg"))

	out := buf.String()
	if !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", out)
	}
	if !strings.Contains(out, "    target_path: /t/2023/3/5/a.jpg") {
		t.Fatalf("expected raw debug field, got %q", out)
	}
}

func TestConsoleInfoFieldsAreHumanized(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "pipeline").With(
		logging.String(logging.FieldRunID, "0123456789abcdef"),
		logging.String(logging.FieldStage, "place"),
	)
	logger.Info("run finished",
		logging.Int64("copied_bytes", 2048),
		logging.Bool("dry_run", false),
		logging.String(logging.FieldEventType, "run_complete"),
	)

	out := buf.String()
	for _, want := range []string{
		"INFO [pipeline] run 01234567 (place) - run finished",
		"    - Event: run_complete",
		"    - Copied Bytes: 2.0 kB",
		"    - Dry Run: no",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Run Id") {
		t.Fatalf("run id should only appear in the header:\n%s", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json record %q: %v", buf.String(), err)
	}
	if record["msg"] != "json message" || record["level"] != "info" || record["k"] != "v" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "invalid", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected info threshold, got %q", buf.String())
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = failure.WithRunID(ctx, "run-xyz")
	ctx = failure.WithStage(ctx, "date")
	ctx = failure.WithSource(ctx, "/src/a.jpg")

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json record: %v", err)
	}
	want := map[string]string{
		logging.FieldRunID:      "run-xyz",
		logging.FieldStage:      "date",
		logging.FieldSourcePath: "/src/a.jpg",
	}
	for key, value := range want {
		if record[key] != value {
			t.Fatalf("field %s = %v, want %q", key, record[key], value)
		}
	}
}

func TestNewFromConfigTeesDebugToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "photosorter.log")

	var stderr bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &stderr)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("per-file decision")
	logger.Info("run started")

	if strings.Contains(stderr.String(), "per-file decision") {
		t.Fatalf("debug record leaked to stderr at info level: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "run started") {
		t.Fatalf("expected info record on stderr, got %q", stderr.String())
	}
	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"msg":"per-file decision"`) {
		t.Fatalf("expected both records in JSON file, got %q", content)
	}
}

func TestTeeHandler(t *testing.T) {
	if _, ok := logging.TeeHandler(nil, nil).(logging.NoopHandler); !ok {
		t.Fatal("expected NoopHandler for all nil handlers")
	}
	var a, b bytes.Buffer
	only := slog.NewJSONHandler(&a, nil)
	if logging.TeeHandler(nil, only) != only {
		t.Fatal("expected single handler to be returned unwrapped")
	}

	warnOnly := slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(logging.TeeHandler(only, warnOnly)).With("k", "v")
	logger.Info("info record")
	logger.Warn("warn record")
	if strings.Count(a.String(), "\n") != 2 {
		t.Fatalf("expected two records in first handler, got %q", a.String())
	}
	if strings.Contains(b.String(), "info record") || !strings.Contains(b.String(), `"k":"v"`) {
		t.Fatalf("unexpected second handler output: %q", b.String())
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "copy failed", "place_failed", logging.Error(errors.New("disk full")))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json record: %v", err)
	}
	if record[logging.FieldEventType] != "place_failed" || record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected injected fields: %v", record)
	}
	if record["error"] != "disk full" {
		t.Fatalf("unexpected error field: %v", record["error"])
	}
}
