// Package fileutil holds the byte-copy primitives used by the placement engine.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// DefaultMode is applied to files created by CopyFile.
const DefaultMode os.FileMode = 0o644

// CopyFile streams src to dst with DefaultMode, truncating any existing dst,
// and stamps dst with the source modification time. It returns the number of
// bytes written.
func CopyFile(fsys afero.Fs, src, dst string) (int64, error) {
	return CopyFileMode(fsys, src, dst, DefaultMode)
}

// CopyFileMode is CopyFile with an explicit mode for newly created files.
func CopyFileMode(fsys afero.Fs, src, dst string, mode os.FileMode) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}

	// Close exactly once: some filesystems stamp the mtime on close.
	written, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, err
	}
	if err := fsys.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return written, fmt.Errorf("preserve modification time: %w", err)
	}
	return written, nil
}

// CopyFileVerified behaves like CopyFile but hashes both streams with SHA256
// and checks the byte count. Removes dst on mismatch.
func CopyFileVerified(fsys afero.Fs, src, dst string) (int64, error) {
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := fsys.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultMode)
	if err != nil {
		return 0, err
	}

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, err
	}

	if written != srcSize {
		_ = fsys.Remove(dst)
		return written, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = fsys.Remove(dst)
		return written, fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	if err := fsys.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return written, fmt.Errorf("preserve modification time: %w", err)
	}
	return written, nil
}

// Exists reports whether path names an existing entry. Errors other than
// "not exist" are returned so callers never mistake an unreadable target for
// a free one.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
