package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRun()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeReport()
	return nil
}

func (c *Config) normalizePaths() error {
	c.Paths.Source = strings.TrimSpace(c.Paths.Source)
	if c.Paths.Source == "" {
		if value, ok := os.LookupEnv(envSource); ok {
			c.Paths.Source = strings.TrimSpace(value)
		}
	}
	c.Paths.Target = strings.TrimSpace(c.Paths.Target)
	if c.Paths.Target == "" {
		if value, ok := os.LookupEnv(envTarget); ok {
			c.Paths.Target = strings.TrimSpace(value)
		}
	}

	var err error
	if c.Paths.Source, err = expandPath(c.Paths.Source); err != nil {
		return fmt.Errorf("paths.source: %w", err)
	}
	if c.Paths.Target, err = expandPath(c.Paths.Target); err != nil {
		return fmt.Errorf("paths.target: %w", err)
	}
	return nil
}

func (c *Config) normalizeRun() {
	c.Run.OnError = strings.ToLower(strings.TrimSpace(c.Run.OnError))
	if c.Run.OnError == "" {
		c.Run.OnError = defaultOnError
	}
	c.Run.Timezone = strings.TrimSpace(c.Run.Timezone)
	if c.Run.Timezone == "" {
		if value, ok := os.LookupEnv(envTimezone); ok {
			c.Run.Timezone = strings.TrimSpace(value)
		}
	}
	if c.Run.Timezone == "" {
		c.Run.Timezone = defaultTimezone
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeReport() {
	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
	if c.Report.Color == "" {
		c.Report.Color = defaultColor
	}
}
