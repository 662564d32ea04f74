package logger

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Module provides the process logger and routes fx container events through it.
var Module = fx.Options(
	fx.Provide(New),
	fx.WithLogger(newEventLogger),
)

// Container events are only interesting when debugging wiring.
func newEventLogger(l *slog.Logger) fxevent.Logger {
	events := &fxevent.SlogLogger{Logger: l.With(slog.String("component", "fx"))}
	events.UseLogLevel(slog.LevelDebug)
	return events
}
