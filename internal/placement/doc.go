// Package placement reconciles one source file against its computed target
// path and performs the resulting copy.
//
// For each file exactly one action is chosen:
//   - copy: nothing exists at the target; parent directories are created and
//     the bytes are copied.
//   - copy-and-rename: a different file already occupies the target; a free
//     sibling name is picked and the file is copied there.
//   - skip: the file at the target has the same size and modification time.
//
// The engine never overwrites the file at the computed target. Dry-run
// engines decide against the target tree as it is on disk and touch
// nothing, so files the preview would have placed earlier in the same run
// are not seen: two same-named sources for the same day both preview as
// copy, where a real run copies the first and renames the second.
package placement
