package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Missing source or target are
// not reported here so that `config validate` works on a partial file.
func (c *Config) Validate() error {
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateReport()
}

// RequirePaths reports a missing source or target root.
func (c *Config) RequirePaths() error {
	if c.Paths.Source == "" {
		return errors.New("source directory is required (--source or paths.source)")
	}
	if c.Paths.Target == "" {
		return errors.New("target directory is required (--target or paths.target)")
	}
	return nil
}

func (c *Config) validateRun() error {
	switch c.Run.OnError {
	case OnErrorAbort, OnErrorContinue:
	default:
		return fmt.Errorf("run.on_error must be %q or %q, got %q", OnErrorAbort, OnErrorContinue, c.Run.OnError)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("run.timezone: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("report.color must be auto, always or never, got %q", c.Report.Color)
	}
}
