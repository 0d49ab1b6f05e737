package alerts

import (
	"context"
	"log/slog"
)

// LogNotifier writes alerts to a structured logger. It is the fallback
// channel when no external integration is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Name() string { return "log" }

func (l *LogNotifier) Send(ctx context.Context, message string) error {
	l.logger.WarnContext(ctx, "patient alert", "message", message)
	return nil
}
