package placement

import "fmt"

// Kind identifies the decision taken for a file.
type Kind string

const (
	KindCopy       Kind = "copy"
	KindCopyRename Kind = "copy-and-rename"
	KindSkip       Kind = "skip"
	KindIgnore     Kind = "ignore"
)

// Action reports what happened to one source file.
type Action struct {
	Kind        Kind
	Source      string
	Target      string // computed target path; empty for ignore
	Destination string // where the bytes went; empty for skip and ignore
	Bytes       int64
	DryRun      bool
}

// Ignore builds the action reported for files outside the allow-list.
func Ignore(source string) Action {
	return Action{Kind: KindIgnore, Source: source}
}

// String renders the console line for the action.
func (a Action) String() string {
	var line string
	switch a.Kind {
	case KindCopy:
		line = fmt.Sprintf("COPY %s -> %s", a.Source, a.Destination)
	case KindCopyRename:
		line = fmt.Sprintf("COPY and RENAME %s -> %s", a.Source, a.Destination)
	case KindSkip:
		line = "SKIP " + a.Source
	case KindIgnore:
		line = "IGNORE " + a.Source
	default:
		line = fmt.Sprintf("%s %s", a.Kind, a.Source)
	}
	if a.DryRun && a.Kind != KindIgnore {
		return "[dry-run] " + line
	}
	return line
}
