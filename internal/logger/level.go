package logger

import "log/slog"

// Level is the process-wide minimum level. Warnings and errors are shown
// by default.
var Level = newLevel(slog.LevelWarn)

type level struct {
	lvl *slog.LevelVar
}

func newLevel(l slog.Level) *level {
	v := &slog.LevelVar{}
	v.Set(l)
	return &level{lvl: v}
}

func (l *level) Enabled(level slog.Level) bool {
	return level >= l.lvl.Level()
}

func (l *level) Set(level slog.Level) {
	l.lvl.Set(level)
}
