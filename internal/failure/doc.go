// Package failure defines the error taxonomy shared by the sorting pipeline
// and the context helpers that carry run metadata into logs.
//
// Key responsibilities:
//   - Sentinel markers (configuration, time conversion, filesystem) plus the
//     Wrap helper that tags a failure with the stage and operation it came
//     from, so the run loop can classify it with errors.Is.
//   - Context helpers that stamp the run identifier, the pipeline stage and
//     the file being processed for structured logging.
//
// Return wrapped errors from every stage so the run policy (abort vs
// continue) can be applied in one place.
package failure
