package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"photosorter/internal/failure"
	"photosorter/internal/fileutil"
)

// MaxCollisionProbes is the highest numeric suffix tried before falling back
// to the sentinel name.
const MaxCollisionProbes = 255

// SentinelToken is appended to the stem once every numeric suffix is taken.
const SentinelToken = "_RESOLVE"

// ErrCollisionsExhausted is returned in strict mode when all numeric suffixes
// are occupied.
var ErrCollisionsExhausted = errors.New("collision suffixes exhausted")

// UniquePath returns a sibling of path that does not exist yet, probing
// <stem>_<n><ext> for n = 1..MaxCollisionProbes in order. When all are taken
// it returns <stem>_RESOLVE<ext> without checking it, so a file already there
// gets overwritten. With strict set it fails instead.
func UniquePath(fsys afero.Fs, path string, strict bool) (string, error) {
	dir, stem, ext := splitPath(path)
	for n := 1; n <= MaxCollisionProbes; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		exists, err := fileutil.Exists(fsys, candidate)
		if err != nil {
			return "", failure.Wrap(failure.ErrFilesystem, "place", "probe collision", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	if strict {
		return "", failure.Wrap(
			failure.ErrFilesystem,
			"place",
			"resolve collision",
			fmt.Sprintf("%s: all %d suffixes in use", path, MaxCollisionProbes),
			ErrCollisionsExhausted,
		)
	}
	return SentinelPath(path), nil
}

// SentinelPath returns the fixed fallback name for path.
func SentinelPath(path string) string {
	dir, stem, ext := splitPath(path)
	return filepath.Join(dir, stem+SentinelToken+ext)
}

func splitPath(path string) (dir, stem, ext string) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	return dir, stem, ext
}
