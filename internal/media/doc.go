// Package media decides which files the sorter treats as photos or videos.
//
// Classification is a pure function of the file name: the extension after the
// last dot is case-folded without consulting the process locale and matched
// exactly against a fixed allow-list. Anything else is reported as ignored by
// the caller; it is never an error.
package media
