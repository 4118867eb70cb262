package testsupport

import (
	"path/filepath"
	"testing"

	"photosorter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose source and target roots are fresh temp
// directories. Times resolve in UTC so date buckets do not depend on the
// machine running the tests, and run locks go to a private cache directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	cfgVal := config.Default()
	cfgVal.Paths.Source = filepath.Join(base, "source")
	cfgVal.Paths.Target = filepath.Join(base, "target")
	cfgVal.Run.Timezone = "UTC"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Finalize(); err != nil {
		t.Fatalf("finalize test config: %v", err)
	}
	return builder.cfg
}

// WithContinueOnError switches the error policy to continue.
func WithContinueOnError() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.OnError = config.OnErrorContinue
	}
}

// WithDryRun enables dry-run mode.
func WithDryRun() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.DryRun = true
	}
}

// WithoutLock disables the target lock file.
func WithoutLock() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.Lock = false
	}
}

// WithTimezone overrides the zone used for date buckets.
func WithTimezone(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.Timezone = name
	}
}
