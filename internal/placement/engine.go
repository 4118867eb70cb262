package placement

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"photosorter/internal/failure"
	"photosorter/internal/fileutil"
	"photosorter/internal/library"
	"photosorter/internal/logging"
	"photosorter/internal/walker"
)

// Options tune the engine.
type Options struct {
	DryRun           bool
	StrictCollisions bool // fail instead of using the _RESOLVE sentinel
	VerifyCopies     bool // hash source and destination while copying
	DirMode          os.FileMode
}

// Engine performs placements against a filesystem.
type Engine struct {
	fs     afero.Fs
	opts   Options
	logger *slog.Logger
}

// NewEngine constructs an engine. A nil logger discards output.
func NewEngine(fsys afero.Fs, opts Options, logger *slog.Logger) *Engine {
	if opts.DirMode == 0 {
		opts.DirMode = 0o755
	}
	return &Engine{
		fs:     fsys,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "placement"),
	}
}

// Place decides and performs the action for src against target.
func (e *Engine) Place(src walker.Candidate, target string) (Action, error) {
	targetInfo, err := e.fs.Stat(target)
	switch {
	case err != nil && !os.IsNotExist(err):
		return Action{}, failure.Wrap(failure.ErrFilesystem, "place", "stat target", target, err)
	case err != nil:
		return e.copyNew(src, target)
	}

	srcInfo, err := e.fs.Stat(src.Path)
	if err != nil {
		return Action{}, failure.Wrap(failure.ErrFilesystem, "place", "stat source", src.Path, err)
	}
	if library.Equal(srcInfo, targetInfo) {
		e.logger.Debug("target matches source",
			logging.String(logging.FieldSourcePath, src.Path),
			logging.String(logging.FieldTargetPath, target),
			logging.Int64("size", srcInfo.Size()),
		)
		return Action{Kind: KindSkip, Source: src.Path, Target: target, DryRun: e.opts.DryRun}, nil
	}

	dest, err := library.UniquePath(e.fs, target, e.opts.StrictCollisions)
	if err != nil {
		return Action{}, err
	}
	e.logger.Debug("target occupied by a different file",
		logging.String(logging.FieldSourcePath, src.Path),
		logging.String(logging.FieldTargetPath, target),
		logging.String(logging.FieldDestination, dest),
		logging.Int64("source_size", srcInfo.Size()),
		logging.Int64("target_size", targetInfo.Size()),
	)
	action := Action{Kind: KindCopyRename, Source: src.Path, Target: target, Destination: dest, DryRun: e.opts.DryRun}
	if e.opts.DryRun {
		action.Bytes = srcInfo.Size()
		return action, nil
	}
	n, err := e.copy(src.Path, dest)
	if err != nil {
		return Action{}, err
	}
	action.Bytes = n
	return action, nil
}

func (e *Engine) copyNew(src walker.Candidate, target string) (Action, error) {
	action := Action{Kind: KindCopy, Source: src.Path, Target: target, Destination: target, DryRun: e.opts.DryRun}
	if e.opts.DryRun {
		action.Bytes = src.Size
		return action, nil
	}
	dir := filepath.Dir(target)
	if err := e.fs.MkdirAll(dir, e.opts.DirMode); err != nil {
		return Action{}, failure.Wrap(failure.ErrFilesystem, "place", "create directories", dir, err)
	}
	n, err := e.copy(src.Path, target)
	if err != nil {
		return Action{}, err
	}
	action.Bytes = n
	return action, nil
}

func (e *Engine) copy(src, dst string) (int64, error) {
	var (
		n   int64
		err error
	)
	if e.opts.VerifyCopies {
		n, err = fileutil.CopyFileVerified(e.fs, src, dst)
	} else {
		n, err = fileutil.CopyFile(e.fs, src, dst)
	}
	if err != nil {
		return n, failure.Wrap(failure.ErrFilesystem, "place", "copy", fmt.Sprintf("%s -> %s", src, dst), err)
	}
	return n, nil
}
