package logging

import (
	"context"
	"log/slog"

	"photosorter/internal/failure"
)

const (
	// FieldComponent names the package emitting the record.
	FieldComponent = "component"
	// FieldRunID correlates every record of one sorting run.
	FieldRunID = "run_id"
	// FieldStage names the pipeline step (walk, classify, date, place).
	FieldStage = "stage"
	// FieldSourcePath is the file currently being sorted.
	FieldSourcePath = "source_path"
	// FieldTargetPath is the computed date-bucket path.
	FieldTargetPath = "target_path"
	// FieldDestination is where the bytes were written.
	FieldDestination = "destination"
	FieldAction      = "action"
	FieldEventType   = "event_type"
	FieldErrorHint   = "error_hint"
	FieldErrorKind   = "error_kind"
	FieldImpact      = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := failure.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if stage, ok := failure.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if source, ok := failure.SourceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSourcePath, source))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
