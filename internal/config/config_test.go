package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"photosorter/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("PHOTOSORTER_SOURCE", "")
	t.Setenv("PHOTOSORTER_TARGET", "")
	t.Setenv("PHOTOSORTER_TIMEZONE", "")
	return home
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(home, ".config", "photosorter", "config.toml")
	if resolved != want {
		t.Fatalf("resolved path = %q, want %q", resolved, want)
	}
	if cfg.Run.OnError != config.OnErrorAbort {
		t.Fatalf("expected abort policy by default, got %q", cfg.Run.OnError)
	}
	if cfg.Run.Timezone != "local" || !cfg.Run.Lock || cfg.Run.DryRun {
		t.Fatalf("unexpected run defaults: %+v", cfg.Run)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Report.Color != config.ColorAuto {
		t.Fatalf("unexpected color default: %q", cfg.Report.Color)
	}
	if err := cfg.RequirePaths(); err == nil {
		t.Fatal("expected RequirePaths to fail without source and target")
	}
}

func TestLoadCustomPath(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(t.TempDir(), "photosorter.toml")
	content := `
[paths]
source = "~/inbox"
target = "/srv/library/"

[run]
on_error = "Continue"
timezone = " UTC "
strict_collisions = true

[logging]
format = "JSON"
level = "DEBUG"
file = "~/logs/photosorter.log"

[report]
summary = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Paths.Source != filepath.Join(home, "inbox") {
		t.Fatalf("source not expanded: %q", cfg.Paths.Source)
	}
	if cfg.Paths.Target != "/srv/library" {
		t.Fatalf("target not cleaned: %q", cfg.Paths.Target)
	}
	if !cfg.ContinueOnError() {
		t.Fatalf("expected continue policy, got %q", cfg.Run.OnError)
	}
	if cfg.Run.Timezone != "UTC" || !cfg.Run.StrictCollisions {
		t.Fatalf("unexpected run section: %+v", cfg.Run)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging values not normalized: %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(home, "logs", "photosorter.log") {
		t.Fatalf("log file not expanded: %q", cfg.Logging.File)
	}
	if !cfg.Report.Summary {
		t.Fatal("expected summary enabled")
	}
	lockPath := cfg.LockPath()
	if strings.HasPrefix(lockPath, "/srv/library") || filepath.Ext(lockPath) != ".lock" {
		t.Fatalf("lock must live outside the target, got %q", lockPath)
	}
	other := *cfg
	other.Paths.Target = "/srv/other"
	if other.LockPath() == lockPath {
		t.Fatal("different targets must not share a lock")
	}
	if err := cfg.RequirePaths(); err != nil {
		t.Fatalf("RequirePaths: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nsorce = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error for unknown key")
	}
}

func TestEnvFallbackFillsEmptyPaths(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv("PHOTOSORTER_SOURCE", filepath.Join(dir, "in"))
	t.Setenv("PHOTOSORTER_TARGET", filepath.Join(dir, "out"))
	t.Setenv("PHOTOSORTER_TIMEZONE", "UTC")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Source != filepath.Join(dir, "in") || cfg.Paths.Target != filepath.Join(dir, "out") {
		t.Fatalf("env fallback not applied: %+v", cfg.Paths)
	}
	if cfg.Run.Timezone != "UTC" {
		t.Fatalf("timezone env fallback not applied: %q", cfg.Run.Timezone)
	}
}

func TestFileValuesWinOverEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PHOTOSORTER_SOURCE", "/from/env")
	t.Setenv("PHOTOSORTER_TIMEZONE", "Asia/Tokyo")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nsource = \"/from/file\"\n\n[run]\ntimezone = \"UTC\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Source != "/from/file" {
		t.Fatalf("expected file value, got %q", cfg.Paths.Source)
	}
	if cfg.Run.Timezone != "UTC" {
		t.Fatalf("expected file timezone, got %q", cfg.Run.Timezone)
	}
}

func TestDefaultTimezoneIsLocalWithoutEnv(t *testing.T) {
	isolateEnv(t)
	cfg := config.Default()
	if cfg.Run.Timezone != "" {
		t.Fatalf("Default must leave timezone for the env fallback, got %q", cfg.Run.Timezone)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Run.Timezone != "local" {
		t.Fatalf("expected local timezone, got %q", cfg.Run.Timezone)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(contents) != config.SampleConfig() {
		t.Fatal("sample file differs from embedded sample")
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.Source, "Pictures") {
		t.Fatalf("expected sample source path, got %q", cfg.Paths.Source)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"on_error": func(c *config.Config) { c.Run.OnError = "retry" },
		"timezone": func(c *config.Config) { c.Run.Timezone = "Mars/Olympus_Mons" },
		"format":   func(c *config.Config) { c.Logging.Format = "xml" },
		"level":    func(c *config.Config) { c.Logging.Level = "trace" },
		"color":    func(c *config.Config) { c.Report.Color = "sometimes" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
