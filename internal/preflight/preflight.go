package preflight

import (
	"strings"

	"photosorter/internal/config"
	"photosorter/internal/failure"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the roots named in cfg. Empty paths are skipped; RequirePaths
// reports those. A dry run only needs to read the target.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if cfg.Paths.Source != "" {
		results = append(results, CheckDirectoryAccess("Source directory", cfg.Paths.Source, ReadOnly))
	}
	if cfg.Paths.Target != "" {
		access := ReadWrite
		if cfg.Run.DryRun {
			access = ReadOnly
		}
		results = append(results, CheckTargetAccess("Target directory", cfg.Paths.Target, access))
	}
	return results
}

// Failed folds the failing results into one filesystem error, or nil.
func Failed(results []Result) error {
	var details []string
	for _, r := range results {
		if !r.Passed {
			details = append(details, r.Name+": "+r.Detail)
		}
	}
	if len(details) == 0 {
		return nil
	}
	return failure.Wrap(failure.ErrFilesystem, "preflight", "", strings.Join(details, "; "), nil)
}
