package linker

import "log/slog"

// Reporter is a passive sink for informational messages emitted during
// linking. Message text is not part of the contract and must not be
// parsed by consumers.
type Reporter interface {
	Heading(level int, text string)
	Message(text string, fields ...any)
}

// SlogReporter forwards headings and messages to a structured logger,
// the way the rest of this module reports progress.
type SlogReporter struct {
	Logger *slog.Logger
}

// NewSlogReporter returns a Reporter backed by logger. If logger is nil,
// slog.Default() is used.
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{Logger: logger}
}

func (r *SlogReporter) Heading(level int, text string) {
	r.Logger.Info(text, "heading", level)
}

func (r *SlogReporter) Message(text string, fields ...any) {
	r.Logger.Debug(text, fields...)
}

// NopReporter discards every heading and message.
type NopReporter struct{}

func (NopReporter) Heading(int, string)    {}
func (NopReporter) Message(string, ...any) {}
