package config

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"photosorter/internal/calendar"
)

//go:embed sample_config.toml
var sampleConfig string

// lockDirName holds per-target run locks under the user cache directory.
const lockDirName = "photosorter/locks"

const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Paths holds the two roots of a run.
type Paths struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Run tunes how files are placed.
type Run struct {
	// OnError is "abort" (stop at the first failing file) or "continue"
	// (report the file and move on).
	OnError          string `toml:"on_error"`
	DryRun           bool   `toml:"dry_run"`
	StrictCollisions bool   `toml:"strict_collisions"`
	VerifyCopies     bool   `toml:"verify_copies"`
	// Timezone names the zone used to bucket modification times: "local",
	// "utc" or an IANA name such as "Europe/Berlin".
	Timezone string `toml:"timezone"`
	Lock     bool   `toml:"lock"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Report controls what is printed on stdout.
type Report struct {
	Color    string `toml:"color"`
	Summary  bool   `toml:"summary"`
	Progress bool   `toml:"progress"`
}

// Config encapsulates all configuration values for photosorter.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Run     Run     `toml:"run"`
	Logging Logging `toml:"logging"`
	Report  Report  `toml:"report"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are used and exists is false. Source and target may
// still be empty afterwards; see RequirePaths.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates the configuration. The CLI calls it again
// after applying flag overrides; running it twice is harmless.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Location resolves Run.Timezone.
func (c *Config) Location() (*time.Location, error) {
	return calendar.LoadLocation(c.Run.Timezone)
}

// LockPath is the advisory lock file guarding the target root. It lives in
// the user cache directory, keyed by a hash of the target, so the library
// itself only ever holds sorted media.
func (c *Config) LockPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	sum := sha256.Sum256([]byte(filepath.Clean(c.Paths.Target)))
	return filepath.Join(base, lockDirName, hex.EncodeToString(sum[:8])+".lock")
}

// ContinueOnError reports whether per-file failures are tolerated.
func (c *Config) ContinueOnError() bool {
	return c.Run.OnError == OnErrorContinue
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
