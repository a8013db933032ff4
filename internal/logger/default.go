package logger

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"
)

func newDefaultLogger() *Logger {
	return &Logger{sl: slog.New(stderrHandler())}
}

func stderrHandler() slog.Handler {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return newTerminalHandler(os.Stderr)
	}
	return newTextHandler(os.Stderr)
}

var defaultLogger = newDefaultLogger()

func Error(a ...any)                   { defaultLogger.log(slog.LevelError, fmt.Sprint(a...)) }
func Warning(a ...any)                 { defaultLogger.log(slog.LevelWarn, fmt.Sprint(a...)) }
func Info(a ...any)                    { defaultLogger.log(slog.LevelInfo, fmt.Sprint(a...)) }
func Debug(a ...any)                   { defaultLogger.log(slog.LevelDebug, fmt.Sprint(a...)) }
func Errorf(format string, a ...any)   { defaultLogger.log(slog.LevelError, fmt.Sprintf(format, a...)) }
func Warningf(format string, a ...any) { defaultLogger.log(slog.LevelWarn, fmt.Sprintf(format, a...)) }
func Infof(format string, a ...any)    { defaultLogger.log(slog.LevelInfo, fmt.Sprintf(format, a...)) }
func Debugf(format string, a ...any)   { defaultLogger.log(slog.LevelDebug, fmt.Sprintf(format, a...)) }
func With(args ...any) *Logger         { return defaultLogger.With(args...) }
