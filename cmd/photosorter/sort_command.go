package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"photosorter/internal/config"
	"photosorter/internal/failure"
	"photosorter/internal/logging"
	"photosorter/internal/pipeline"
	"photosorter/internal/preflight"
	"photosorter/internal/report"
)

// sortFlags hold the command-line overrides for a run. Only flags the user
// set replace configuration values.
type sortFlags struct {
	source           string
	target           string
	onError          string
	timezone         string
	logLevel         string
	logFormat        string
	dryRun           bool
	strictCollisions bool
	verifyCopies     bool
	progress         bool
	noColor          bool
	summary          bool
}

func (f *sortFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.source, "source", "", "Directory tree to scan for media files")
	flags.StringVar(&f.target, "target", "", "Root of the date-structured library")
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, "Print the actions without copying anything (decided against the target as it is now)")
	flags.StringVar(&f.onError, "on-error", "", "Error policy: abort or continue")
	flags.BoolVar(&f.strictCollisions, "strict-collisions", false, "Fail instead of writing a _RESOLVE file when suffixes run out")
	flags.BoolVar(&f.verifyCopies, "verify-copies", false, "Hash every copy and fail on mismatch")
	flags.StringVar(&f.timezone, "timezone", "", "Zone used for date folders: local, utc or an IANA name")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&f.logFormat, "log-format", "", "Log format: console or json")
	flags.BoolVar(&f.progress, "progress", false, "Show a progress spinner on stderr")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable coloured output")
	flags.BoolVar(&f.summary, "summary", false, "Print a totals table after the run")
}

func (f *sortFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Paths.Source = f.source
	}
	if changed("target") {
		cfg.Paths.Target = f.target
	}
	if changed("dry-run") {
		cfg.Run.DryRun = f.dryRun
	}
	if changed("on-error") {
		cfg.Run.OnError = f.onError
	}
	if changed("strict-collisions") {
		cfg.Run.StrictCollisions = f.strictCollisions
	}
	if changed("verify-copies") {
		cfg.Run.VerifyCopies = f.verifyCopies
	}
	if changed("timezone") {
		cfg.Run.Timezone = f.timezone
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if changed("progress") {
		cfg.Report.Progress = f.progress
	}
	if changed("no-color") && f.noColor {
		cfg.Report.Color = config.ColorNever
	}
	if changed("summary") {
		cfg.Report.Summary = f.summary
	}
}

func runSort(cmd *cobra.Command, ctx *commandContext, flags *sortFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	flags.apply(cmd, cfg)
	if err := cfg.Finalize(); err != nil {
		return failure.Wrap(failure.ErrConfiguration, "config", "validate", "", err)
	}
	if err := cfg.RequirePaths(); err != nil {
		return failure.Wrap(failure.ErrConfiguration, "config", "validate", "", err)
	}

	stderr := cmd.ErrOrStderr()
	logger, err := logging.NewFromConfig(cfg, stderr)
	if err != nil {
		return failure.Wrap(failure.ErrConfiguration, "config", "logging", "", err)
	}

	if err := preflight.Failed(preflight.RunAll(cfg)); err != nil {
		return err
	}

	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return failure.Wrap(failure.ErrConfiguration, "config", "timezone", "", err)
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	progress := report.NewProgress(stderr, cfg.Report.Progress)
	console := report.NewConsole(out, report.ShouldColorize(out, cfg.Report.Color), progress)

	runner := pipeline.NewRunner(afero.NewOsFs(), opts, console, logger)
	stats, runErr := runner.Run(runCtx)
	progress.Finish()

	if cfg.Report.Summary {
		fmt.Fprintln(out)
		report.WriteSummary(out, stats, cfg.Run.DryRun)
	}
	return runErr
}
