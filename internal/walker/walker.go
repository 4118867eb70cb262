// Package walker enumerates the regular files below a source root.
//
// The walk is depth-first and lexical within each directory. Entries are
// handed to the callback one at a time as they are found, so a run can stop
// part way through without having listed the whole tree. Directory symlinks
// below the root are not followed; a symlink to a regular file is forwarded
// with the target's size and modification time. A root that is itself a
// symlink is resolved and entered.
package walker

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"photosorter/internal/failure"
	"photosorter/internal/media"
)

// Candidate is one regular file discovered under the source root.
type Candidate struct {
	Path    string
	Name    string
	Ext     string // case-folded, with leading dot; empty when absent
	Size    int64
	ModTime time.Time
}

// FromInfo builds a Candidate for path using info for size and time.
func FromInfo(path string, info os.FileInfo) Candidate {
	name := filepath.Base(path)
	return Candidate{
		Path:    path,
		Name:    name,
		Ext:     media.Extension(name),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// Walk calls fn for every regular file under root. A missing or unreadable
// root, or any error while listing the tree, stops the walk with an
// ErrFilesystem failure. An error returned by fn stops the walk and is
// returned as-is.
func Walk(fsys afero.Fs, root string, fn func(Candidate) error) error {
	info, err := fsys.Stat(root)
	if err != nil {
		return failure.Wrap(failure.ErrFilesystem, "walk", "open source", root, err)
	}
	if !info.IsDir() {
		return failure.Wrap(failure.ErrFilesystem, "walk", "open source", root+" is not a directory", nil)
	}

	walkRoot, err := resolveRoot(fsys, root)
	if err != nil {
		return failure.Wrap(failure.ErrFilesystem, "walk", "resolve source", root, err)
	}

	var callbackErr error
	err = afero.Walk(fsys, walkRoot, func(path string, info os.FileInfo, err error) error {
		path = underRoot(root, walkRoot, path)
		if err != nil {
			return failure.Wrap(failure.ErrFilesystem, "walk", "read entry", path, err)
		}
		mode := info.Mode()
		switch {
		case mode.IsDir():
			return nil
		case mode&os.ModeSymlink != 0:
			target, statErr := fsys.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				return nil
			}
			info = target
		case !mode.IsRegular():
			return nil
		}
		if err := fn(FromInfo(path, info)); err != nil {
			callbackErr = err
			return err
		}
		return nil
	})
	if callbackErr != nil {
		return callbackErr
	}
	return err
}

// maxRootLinks bounds the symlink chain followed for the root.
const maxRootLinks = 40

// resolveRoot follows symlinks on the root itself so that a linked source
// directory is entered. Links below the root are not touched.
func resolveRoot(fsys afero.Fs, root string) (string, error) {
	lstater, ok := fsys.(afero.Lstater)
	if !ok {
		return root, nil
	}
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return root, nil
	}
	current := root
	for range maxRootLinks {
		info, _, err := lstater.LstatIfPossible(current)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}
		dest, err := reader.ReadlinkIfPossible(current)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(current), dest)
		}
		current = dest
	}
	return "", errors.New("too many levels of symbolic links")
}

// underRoot reports path relative to the root the caller asked for.
func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}
