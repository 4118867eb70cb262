package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"photosorter/internal/calendar"
	"photosorter/internal/config"
	"photosorter/internal/failure"
	"photosorter/internal/library"
	"photosorter/internal/logging"
	"photosorter/internal/media"
	"photosorter/internal/placement"
	"photosorter/internal/walker"
)

// ErrIncomplete is returned in continue mode when at least one file failed.
var ErrIncomplete = errors.New("some files could not be sorted")

// Reporter receives the outcome of every file in walk order.
type Reporter interface {
	Action(placement.Action)
	Failure(source string, err error)
}

// Options configure a Runner.
type Options struct {
	Source           string
	Target           string
	Location         *time.Location
	ContinueOnError  bool
	DryRun           bool
	StrictCollisions bool
	VerifyCopies     bool
	// LockPath names the advisory lock held for the run. Empty disables it.
	LockPath string
}

// OptionsFromConfig maps the run configuration onto runner options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Source:           cfg.Paths.Source,
		Target:           cfg.Paths.Target,
		Location:         loc,
		ContinueOnError:  cfg.ContinueOnError(),
		DryRun:           cfg.Run.DryRun,
		StrictCollisions: cfg.Run.StrictCollisions,
		VerifyCopies:     cfg.Run.VerifyCopies,
	}
	if cfg.Run.Lock && !cfg.Run.DryRun {
		opts.LockPath = cfg.LockPath()
	}
	return opts, nil
}

// Runner executes sorting passes.
type Runner struct {
	fs       afero.Fs
	opts     Options
	reporter Reporter
	logger   *slog.Logger
	engine   *placement.Engine
}

// NewRunner wires a runner. A nil reporter discards actions and a nil logger
// discards logs.
func NewRunner(fsys afero.Fs, opts Options, reporter Reporter, logger *slog.Logger) *Runner {
	if reporter == nil {
		reporter = discardReporter{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Runner{
		fs:       fsys,
		opts:     opts,
		reporter: reporter,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		engine: placement.NewEngine(fsys, placement.Options{
			DryRun:           opts.DryRun,
			StrictCollisions: opts.StrictCollisions,
			VerifyCopies:     opts.VerifyCopies,
		}, logger),
	}
}

// Run sorts every file under the source root. Files already placed stay in
// place when the run stops early.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	stats := Stats{RunID: uuid.NewString()}
	ctx = failure.WithRunID(ctx, stats.RunID)
	logger := logging.WithContext(ctx, r.logger)

	release, err := r.acquireLock()
	if err != nil {
		return stats, err
	}
	defer release()

	logger.Info("sort started",
		logging.String("source", r.opts.Source),
		logging.String("target", r.opts.Target),
		logging.String("timezone", r.opts.Location.String()),
		logging.Bool("dry_run", r.opts.DryRun),
		logging.Bool("continue_on_error", r.opts.ContinueOnError),
	)

	walkErr := walker.Walk(r.fs, r.opts.Source, func(c walker.Candidate) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Seen++
		fileCtx := failure.WithSource(ctx, c.Path)
		action, err := r.sortFile(fileCtx, c)
		if err != nil {
			return r.handleFailure(fileCtx, &stats, c, err)
		}
		stats.record(action)
		r.reporter.Action(action)
		return nil
	})
	stats.Elapsed = time.Since(start)

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			logging.WarnWithContext(logger, "sort interrupted", "run_interrupted",
				logging.Int("files_seen", stats.Seen),
				logging.String(logging.FieldImpact, "remaining files were not sorted"),
				logging.String(logging.FieldErrorHint, "run again to finish; placed files will be skipped"),
			)
		} else {
			logging.ErrorWithContext(logger, "sort failed", "run_failed",
				logging.Error(walkErr),
				logging.String(logging.FieldErrorKind, failure.Kind(walkErr)),
			)
		}
		return stats, walkErr
	}

	logger.Info("sort finished",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("files_seen", stats.Seen),
		logging.Int("copied", stats.Copied),
		logging.Int("renamed", stats.Renamed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("ignored", stats.Ignored),
		logging.Int("failed", stats.Failed),
		logging.Int64("copied_bytes", stats.BytesCopied),
		logging.Duration("elapsed", stats.Elapsed),
	)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d files failed", ErrIncomplete, stats.Failed, stats.Seen)
	}
	return stats, nil
}

func (r *Runner) sortFile(ctx context.Context, c walker.Candidate) (placement.Action, error) {
	logger := logging.WithContext(failure.WithStage(ctx, "classify"), r.logger)
	if !media.IsMedia(c.Name) {
		logger.Debug("not a media file", logging.String("extension", c.Ext))
		return placement.Ignore(c.Path), nil
	}

	date, err := calendar.Resolve(c.ModTime, r.opts.Location)
	if err != nil {
		return placement.Action{}, fmt.Errorf("%s: %w", c.Path, err)
	}
	target := library.TargetPath(r.opts.Target, date, c.Name)

	logger = logging.WithContext(failure.WithStage(ctx, "place"), r.logger)
	logger.Debug("resolved target",
		logging.String("date", date.String()),
		logging.String(logging.FieldTargetPath, target),
	)
	action, err := r.engine.Place(c, target)
	if err != nil {
		return placement.Action{}, err
	}
	logger.Debug("file placed",
		logging.String(logging.FieldAction, string(action.Kind)),
		logging.String(logging.FieldDestination, action.Destination),
		logging.Int64("bytes", action.Bytes),
	)
	return action, nil
}

func (r *Runner) handleFailure(ctx context.Context, stats *Stats, c walker.Candidate, err error) error {
	if !r.opts.ContinueOnError {
		return err
	}
	logger := logging.WithContext(ctx, r.logger)
	stats.Failed++
	stats.Errors = append(stats.Errors, FileError{Source: c.Path, Err: err})
	logging.WarnWithContext(logger, "file not sorted", "file_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorKind, failure.Kind(err)),
		logging.String(logging.FieldImpact, "file left in source only"),
	)
	r.reporter.Failure(c.Path, err)
	return nil
}

func (s *Stats) record(action placement.Action) {
	switch action.Kind {
	case placement.KindCopy:
		s.Copied++
		s.BytesCopied += action.Bytes
	case placement.KindCopyRename:
		s.Renamed++
		s.BytesCopied += action.Bytes
	case placement.KindSkip:
		s.Skipped++
	case placement.KindIgnore:
		s.Ignored++
	}
}

// acquireLock takes the advisory lock guarding the target root. The returned
// release func is always safe to call.
func (r *Runner) acquireLock() (func(), error) {
	if r.opts.LockPath == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.opts.LockPath), 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrFilesystem, "lock", "create lock directory", filepath.Dir(r.opts.LockPath), err)
	}
	lock := flock.New(r.opts.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrFilesystem, "lock", "acquire", r.opts.LockPath, err)
	}
	if !ok {
		return nil, failure.Wrap(failure.ErrFilesystem, "lock", "acquire", "another photosorter run holds "+r.opts.LockPath, nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release target lock",
				logging.String("lock", r.opts.LockPath),
				logging.Error(err),
			)
		}
	}, nil
}

type discardReporter struct{}

func (discardReporter) Action(placement.Action) {}

func (discardReporter) Failure(string, error) {}
