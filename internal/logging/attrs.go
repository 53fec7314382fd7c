package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBatch is the structured logging key for the leader's batch identifier.
	FieldBatch = "batch"
	// FieldPath is the structured logging key for the filesystem path being handled.
	FieldPath = "path"
	// FieldMode is the structured logging key for a job's queue mode.
	FieldMode = "mode"
	// FieldKind is the structured logging key for the entry kind (FILE or DIR).
	FieldKind = "kind"
	// FieldPID is the structured logging key for the invoking process id.
	FieldPID = "pid"
)

type Attr = slog.Attr

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards every record.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool {
	return false
}

func (NoopHandler) Handle(context.Context, slog.Record) error {
	return nil
}

func (h NoopHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h NoopHandler) WithGroup(string) slog.Handler {
	return h
}
