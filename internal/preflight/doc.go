// Package preflight checks that the source and target roots are usable
// before a run touches anything.
//
// A failed check is reported with a human-readable detail. The run command
// refuses to start when any check fails; `config validate` prints the
// results as a checklist.
package preflight
