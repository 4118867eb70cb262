package config

const (
	defaultConfigPath = "~/.config/photosorter/config.toml"
	projectConfigName = "photosorter.toml"

	defaultOnError   = OnErrorAbort
	defaultTimezone  = "local"
	defaultLock      = true
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultColor     = ColorAuto

	envSource   = "PHOTOSORTER_SOURCE"
	envTarget   = "PHOTOSORTER_TARGET"
	envTimezone = "PHOTOSORTER_TIMEZONE"
)

// Default returns a Config populated with repository defaults. The timezone
// is left empty so normalize can apply PHOTOSORTER_TIMEZONE before falling
// back to local time.
func Default() Config {
	return Config{
		Run: Run{
			OnError: defaultOnError,
			Lock:    defaultLock,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Report: Report{
			Color: defaultColor,
		},
	}
}
