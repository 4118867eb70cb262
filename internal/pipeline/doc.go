// Package pipeline runs one sorting pass: walk the source tree, classify each
// file, resolve its date, build the target path and place it.
//
// Files are processed one at a time in walk order. The context is checked
// between files, so cancellation stops the run after the current copy. The
// error policy decides whether a failing file ends the run (abort) or is
// recorded and skipped (continue); a failure of the walk itself always ends
// the run.
package pipeline
