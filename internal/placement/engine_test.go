package placement_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/afero"

	"photosorter/internal/failure"
	"photosorter/internal/library"
	"photosorter/internal/placement"
	"photosorter/internal/walker"
)

var stamp = time.Date(2023, time.March, 5, 14, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, fsys afero.Fs, path, content string, mtime time.Time) walker.Candidate {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := fsys.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
	info, err := fsys.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return walker.FromInfo(path, info)
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestPlaceCopiesIntoEmptyTarget(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "hello", stamp)
	target := "/dst/2023/3/5/a.jpg"

	engine := placement.NewEngine(fsys, placement.Options{}, nil)
	action, err := engine.Place(src, target)
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if action.Kind != placement.KindCopy {
		t.Fatalf("expected copy, got %s", action.Kind)
	}
	if action.Destination != target || action.Bytes != 5 {
		t.Fatalf("unexpected action: %+v", action)
	}
	if got := readFile(t, fsys, target); got != "hello" {
		t.Fatalf("target content = %q", got)
	}
	info, err := fsys.Stat(target)
	if err != nil {
		t.Fatalf("stat target: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("expected mtime %v, got %v", stamp, info.ModTime())
	}
}

func TestPlaceSkipsEqualFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "hello", stamp)
	writeFile(t, fsys, "/dst/2023/3/5/a.jpg", "HELLO", stamp)

	engine := placement.NewEngine(fsys, placement.Options{}, nil)
	action, err := engine.Place(src, "/dst/2023/3/5/a.jpg")
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if action.Kind != placement.KindSkip {
		t.Fatalf("expected skip, got %s", action.Kind)
	}
	if got := readFile(t, fsys, "/dst/2023/3/5/a.jpg"); got != "HELLO" {
		t.Fatalf("skip must not touch target, got %q", got)
	}
}

func TestPlaceRenamesOnConflict(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "newer content", stamp)
	writeFile(t, fsys, "/dst/2023/3/5/a.jpg", "old", stamp)
	writeFile(t, fsys, "/dst/2023/3/5/a_1.jpg", "older", stamp)

	engine := placement.NewEngine(fsys, placement.Options{}, nil)
	action, err := engine.Place(src, "/dst/2023/3/5/a.jpg")
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if action.Kind != placement.KindCopyRename {
		t.Fatalf("expected copy-and-rename, got %s", action.Kind)
	}
	if action.Destination != "/dst/2023/3/5/a_2.jpg" {
		t.Fatalf("unexpected destination %q", action.Destination)
	}
	if got := readFile(t, fsys, "/dst/2023/3/5/a.jpg"); got != "old" {
		t.Fatalf("original target overwritten: %q", got)
	}
	if got := readFile(t, fsys, "/dst/2023/3/5/a_2.jpg"); got != "newer content" {
		t.Fatalf("renamed copy content = %q", got)
	}
}

func TestPlaceSameSizeDifferentTimeIsConflict(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "abc", stamp)
	writeFile(t, fsys, "/dst/a.jpg", "abc", stamp.Add(time.Second))

	engine := placement.NewEngine(fsys, placement.Options{}, nil)
	action, err := engine.Place(src, "/dst/a.jpg")
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if action.Kind != placement.KindCopyRename || action.Destination != "/dst/a_1.jpg" {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestPlaceIsIdempotent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "hello", stamp)
	engine := placement.NewEngine(fsys, placement.Options{VerifyCopies: true}, nil)

	first, err := engine.Place(src, "/dst/a.jpg")
	if err != nil {
		t.Fatalf("first Place: %v", err)
	}
	if first.Kind != placement.KindCopy {
		t.Fatalf("first run expected copy, got %s", first.Kind)
	}
	second, err := engine.Place(src, "/dst/a.jpg")
	if err != nil {
		t.Fatalf("second Place: %v", err)
	}
	if second.Kind != placement.KindSkip {
		t.Fatalf("second run expected skip, got %s", second.Kind)
	}
}

func TestPlaceDryRunLeavesFilesystemUntouched(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "hello", stamp)
	writeFile(t, fsys, "/dst/old/a.jpg", "old", stamp)

	engine := placement.NewEngine(fsys, placement.Options{DryRun: true}, nil)
	action, err := engine.Place(src, "/dst/2023/3/5/a.jpg")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if action.Kind != placement.KindCopy || !action.DryRun || action.Bytes != 5 {
		t.Fatalf("unexpected action: %+v", action)
	}
	if _, err := fsys.Stat("/dst/2023"); !os.IsNotExist(err) {
		t.Fatalf("dry run created directories: %v", err)
	}

	action, err = engine.Place(src, "/dst/old/a.jpg")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if action.Kind != placement.KindCopyRename || action.Destination != "/dst/old/a_1.jpg" {
		t.Fatalf("unexpected action: %+v", action)
	}
	if _, err := fsys.Stat("/dst/old/a_1.jpg"); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote renamed copy: %v", err)
	}
}

func TestPlaceStrictCollisionsFailsWhenExhausted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := writeFile(t, fsys, "/src/a.jpg", "new", stamp)
	writeFile(t, fsys, "/dst/a.jpg", "x", stamp)
	for n := 1; n <= library.MaxCollisionProbes; n++ {
		writeFile(t, fsys, filepath.Join("/dst", "a_"+strconv.Itoa(n)+".jpg"), "x", stamp)
	}

	strict := placement.NewEngine(fsys, placement.Options{StrictCollisions: true}, nil)
	if _, err := strict.Place(src, "/dst/a.jpg"); !errors.Is(err, library.ErrCollisionsExhausted) {
		t.Fatalf("expected ErrCollisionsExhausted, got %v", err)
	} else if !errors.Is(err, failure.ErrFilesystem) {
		t.Fatalf("expected filesystem marker, got %v", err)
	}

	lenient := placement.NewEngine(fsys, placement.Options{}, nil)
	action, err := lenient.Place(src, "/dst/a.jpg")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if action.Destination != "/dst/a_RESOLVE.jpg" {
		t.Fatalf("expected sentinel destination, got %q", action.Destination)
	}
}

func TestPlaceMissingSourceIsFilesystemError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := walker.Candidate{Path: "/src/gone.jpg", Name: "gone.jpg", Ext: ".jpg"}

	engine := placement.NewEngine(fsys, placement.Options{}, nil)
	_, err := engine.Place(src, "/dst/gone.jpg")
	if !errors.Is(err, failure.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestActionString(t *testing.T) {
	cases := []struct {
		action placement.Action
		want   string
	}{
		{placement.Action{Kind: placement.KindCopy, Source: "s/a.jpg", Destination: "t/a.jpg"}, "COPY s/a.jpg -> t/a.jpg"},
		{placement.Action{Kind: placement.KindCopyRename, Source: "s/a.jpg", Destination: "t/a_1.jpg"}, "COPY and RENAME s/a.jpg -> t/a_1.jpg"},
		{placement.Action{Kind: placement.KindSkip, Source: "s/a.jpg"}, "SKIP s/a.jpg"},
		{placement.Ignore("s/notes.txt"), "IGNORE s/notes.txt"},
		{placement.Action{Kind: placement.KindSkip, Source: "s/a.jpg", DryRun: true}, "[dry-run] SKIP s/a.jpg"},
	}
	for _, tc := range cases {
		if got := tc.action.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestPlaceDryRunDoesNotSeeEarlierPreviews(t *testing.T) {
	fsys := afero.NewMemMapFs()
	first := writeFile(t, fsys, "/src/a/IMG.jpg", "first", stamp)
	second := writeFile(t, fsys, "/src/b/IMG.jpg", "second!", stamp)

	engine := placement.NewEngine(fsys, placement.Options{DryRun: true}, nil)
	for _, src := range []walker.Candidate{first, second} {
		action, err := engine.Place(src, "/dst/2023/3/5/IMG.jpg")
		if err != nil {
			t.Fatalf("Place(%s): %v", src.Path, err)
		}
		if action.Kind != placement.KindCopy {
			t.Fatalf("dry run for %s = %s, want copy", src.Path, action.Kind)
		}
	}
}
